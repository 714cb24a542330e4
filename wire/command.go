package wire

import "strings"

// Command is a single Notification protocol command: a fixed-length
// verb ("VER", "USR", ...) followed by an ordered list of string
// arguments and, for payload commands such as MSG, the raw payload
// bytes that followed the command line.
//
// Commands are immutable once received; handlers must not modify them.
type Command struct {
	// Verb is the command verb, e.g. "VER"
	Verb string
	// Args are the command arguments in wire order
	Args []string
	// Payload holds the trailing payload for payload commands, nil otherwise
	Payload []byte
}

// NewCommand returns a Command with the given verb and arguments
func NewCommand(verb string, args ...string) *Command {
	return &Command{Verb: verb, Args: args}
}

// Arg returns argument i, or the empty string if i is out of range
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// String returns the command line form, verb and arguments joined by
// spaces. The payload, if any, is not included.
func (c *Command) String() string {
	if len(c.Args) == 0 {
		return c.Verb
	}
	return c.Verb + " " + strings.Join(c.Args, " ")
}

// ParseCommand splits a received command line into a Command.
// The line must not include the trailing CRLF. For payload commands
// the caller reads the payload bytes from the stream and assigns
// Payload itself; ParseCommand only consumes the command line.
// Structural validation of the argument list is left to the command's
// handler.
func ParseCommand(line string) *Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return &Command{}
	}
	return &Command{Verb: fields[0], Args: fields[1:]}
}
