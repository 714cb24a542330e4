package sso

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"
)

// SecurityToken is an opaque credential scoped to one service domain,
// as extracted from a RST response by the identity exchange
// collaborator.
type SecurityToken struct {
	// ServiceAddress identifies the domain the token authorizes,
	// matched against LiveService.Address
	ServiceAddress string
	// Token is the opaque credential string
	Token string
	// BinarySecret is the base64 encoded key material used to derive
	// nonce proofs
	BinarySecret string
	// Expires is the token expiry, if the response carried one
	Expires time.Time
}

// wincrypt PROV_RSA_FULL parameter blob constants
const (
	cryptModeCBC = 1
	calg3DES     = 0x6603
	calgSHA1     = 0x8004
)

const (
	magicHash       = "WS-SecureConversationSESSION KEY HASH"
	magicEncryption = "WS-SecureConversationSESSION KEY ENCRYPTION"
)

// DeriveResponse produces the base64 encoded proof blob binding the
// token to a server issued challenge nonce: a wincrypt parameter
// header, a random 3DES-CBC IV, the HMAC-SHA1 of the nonce under the
// derived hash key, and the 3DES encryption of the padded nonce under
// the derived encryption key.
func (t SecurityToken) DeriveResponse(nonce string) (string, error) {
	return t.deriveResponse(nonce, rand.Reader)
}

func (t SecurityToken) deriveResponse(nonce string, ivSource io.Reader) (string, error) {
	secret, err := base64.StdEncoding.DecodeString(t.BinarySecret)
	if err != nil {
		return "", errors.Wrap(err, "decoding binary secret")
	}
	hashKey := deriveKey(secret, magicHash)
	encKey := deriveKey(secret, magicEncryption)

	mac := hmac.New(sha1.New, hashKey)
	mac.Write([]byte(nonce))
	hash := mac.Sum(nil)

	iv := make([]byte, des.BlockSize)
	if _, err := io.ReadFull(ivSource, iv); err != nil {
		return "", errors.Wrap(err, "generating IV")
	}
	block, err := des.NewTripleDESCipher(encKey)
	if err != nil {
		return "", errors.Wrap(err, "initializing 3DES")
	}
	// wincrypt pads the input with a full block of 0x08 bytes
	padded := append([]byte(nonce), bytes.Repeat([]byte{8}, des.BlockSize)...)
	if len(padded)%des.BlockSize != 0 {
		return "", errors.Errorf("nonce length %d not a cipher block multiple", len(nonce))
	}
	ciph := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciph, padded)

	blob := &bytes.Buffer{}
	for _, v := range []uint32{
		28, cryptModeCBC, calg3DES, calgSHA1,
		uint32(len(iv)), uint32(len(hash)), uint32(len(ciph)),
	} {
		binary.Write(blob, binary.LittleEndian, v)
	}
	blob.Write(iv)
	blob.Write(hash)
	blob.Write(ciph)
	return base64.StdEncoding.EncodeToString(blob.Bytes()), nil
}

// deriveKey expands the shared secret into a 24 byte 3DES key using
// the chained HMAC-SHA1 construction from the wincrypt key derivation
func deriveKey(key []byte, magic string) []byte {
	sum := func(data ...[]byte) []byte {
		mac := hmac.New(sha1.New, key)
		for _, d := range data {
			mac.Write(d)
		}
		return mac.Sum(nil)
	}
	hash1 := sum([]byte(magic))
	hash2 := sum(hash1, []byte(magic))
	hash3 := sum(hash1)
	hash4 := sum(hash3, []byte(magic))
	return append(hash2, hash4[:4]...)
}

// FindToken returns the first token matching the service domain
func FindToken(tokens []SecurityToken, service LiveService) (SecurityToken, bool) {
	for _, token := range tokens {
		if token.ServiceAddress == service.Address {
			return token, true
		}
	}
	return SecurityToken{}, false
}
