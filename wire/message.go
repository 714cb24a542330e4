package wire

// Message is an inbound application message as produced by a payload
// parser collaborator from a MSG command: MIME-style headers, the
// declared content type and the message body.
type Message struct {
	// ContentType is the media type from the Content-Type header,
	// parameters stripped
	ContentType string
	// Headers are the message headers
	Headers map[string]string
	// Body is the message body
	Body []byte
}
