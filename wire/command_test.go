package wire

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	for _, tc := range []struct {
		line string
		want *Command
	}{
		{line: "", want: &Command{}},
		{line: "PNG", want: &Command{Verb: "PNG", Args: []string{}}},
		{line: "VER 1 MSNP15 MSNP14 CVR0", want: &Command{Verb: "VER", Args: []string{"1", "MSNP15", "MSNP14", "CVR0"}}},
		{line: "XFR 2 NS 207.46.106.145:1863", want: &Command{Verb: "XFR", Args: []string{"2", "NS", "207.46.106.145:1863"}}},
	} {
		t.Run(tc.line, func(t *testing.T) { assert.New(t).Equal(tc.want, ParseCommand(tc.line)) })
	}
}

func TestParseCommandPayloadSplit(t *testing.T) {
	a := assert.New(t)
	cmd := ParseCommand("MSG Hotmail Hotmail 92")
	a.Nil(cmd.Payload)
	// the transport attaches the payload after reading it from the stream
	cmd.Payload = []byte("MIME-Version: 1.0\r\n")
	a.Equal("MSG Hotmail Hotmail 92", cmd.String())
}

func TestCommandString(t *testing.T) {
	for _, tc := range []struct {
		cmd  *Command
		want string
	}{
		{cmd: NewCommand("PNG"), want: "PNG"},
		{cmd: NewCommand("USR", "SSO", "I", "user@example.com"), want: "USR SSO I user@example.com"},
	} {
		t.Run(tc.want, func(t *testing.T) { assert.New(t).Equal(tc.want, tc.cmd.String()) })
	}
}

func TestCommandArg(t *testing.T) {
	cmd := NewCommand("USR", "SSO", "I")
	for _, tc := range []struct {
		i    int
		want string
	}{
		{i: -1}, {i: 0, want: "SSO"}, {i: 1, want: "I"}, {i: 2},
	} {
		t.Run(fmt.Sprintf("%d", tc.i), func(t *testing.T) { assert.New(t).Equal(tc.want, cmd.Arg(tc.i)) })
	}
}
