package recording

import "github.com/gogpu/spline"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdSubmit CommandType = iota // A primitive handed to Submit
	CmdFlush                     // A call to Flush
)

var commandTypeNames = [...]string{
	CmdSubmit: "Submit",
	CmdFlush:  "Flush",
}

// String returns the command name.
func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return "Unknown"
}

// Command is a recorded submitter call.
type Command interface {
	Type() CommandType
}

// SubmitCommand holds a primitive that owns its memory.
type SubmitCommand struct {
	Primitive spline.Primitive
}

// Type implements Command.
func (SubmitCommand) Type() CommandType { return CmdSubmit }

// FlushCommand marks a flush boundary.
type FlushCommand struct{}

// Type implements Command.
func (FlushCommand) Type() CommandType { return CmdFlush }

// clonePrimitive copies the vertex and index memory of p.
func clonePrimitive(p spline.Primitive) spline.Primitive {
	p.Vertices = append([]byte(nil), p.Vertices...)
	if p.Indices != nil {
		p.Indices = append(make([]uint16, 0, len(p.Indices)), p.Indices...)
	}
	return p
}
