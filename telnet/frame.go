package telnet

import (
	"fmt"

	"github.com/huhlig/termionix/telnet/subneg"
)

// Side distinguishes the two independent Q-states a Telnet option has:
// the local side (what this process offers, changed by WILL/WONT) and
// the remote side (what the peer offers, changed by DO/DONT).
type Side byte

const (
	SideLocal Side = iota
	SideRemote
)

func (s Side) String() string {
	if s == SideRemote {
		return "Remote"
	}
	return "Local"
}

// FrameKind tags the variant held by a Frame.
type FrameKind byte

const (
	FrameData FrameKind = iota
	FrameNoOperation
	FrameDataMark
	FrameBreak
	FrameInterruptProcess
	FrameAbortOutput
	FrameAreYouThere
	FrameEraseCharacter
	FrameEraseLine
	FrameGoAhead
	FrameEndOfRecord
	FrameDo
	FrameDont
	FrameWill
	FrameWont
	FrameSubnegotiate
	// FrameOptionStatus is a legal encoder input (producing zero bytes,
	// per §4.6) but is never produced as a decoder Frame - only as an
	// Event, below.
	FrameOptionStatus
)

// Frame is what the encoder accepts, and (apart from OptionStatus) what
// the decoder's negotiation frames look like before C7 turns them into
// Events.
type Frame struct {
	Kind   FrameKind
	Data   byte
	Option OptionID
	Arg    subneg.Arg

	// Side/Enabled are only meaningful for FrameOptionStatus.
	Side    Side
	Enabled bool
}

func (f Frame) String() string {
	switch f.Kind {
	case FrameData:
		return fmt.Sprintf("Data(%d)", f.Data)
	case FrameDo:
		return "DO " + f.Option.String()
	case FrameDont:
		return "DONT " + f.Option.String()
	case FrameWill:
		return "WILL " + f.Option.String()
	case FrameWont:
		return "WONT " + f.Option.String()
	case FrameSubnegotiate:
		if f.Arg != nil {
			return "SB " + f.Option.String() + " " + f.Arg.String() + " SE"
		}
		return "SB " + f.Option.String() + " SE"
	case FrameOptionStatus:
		return fmt.Sprintf("OptionStatus(%s, %s, %v)", f.Option, f.Side, f.Enabled)
	default:
		if cmd, ok := frameKindCommands[f.Kind]; ok {
			if name, ok := commandName(cmd); ok {
				return name
			}
		}
		return "Unknown"
	}
}

// frameKindCommands maps the single-byte command frame kinds back to
// their IAC command byte, so String can name them via the same
// commandNames table the decoder and encoder use.
var frameKindCommands = map[FrameKind]byte{
	FrameNoOperation:      NOP,
	FrameDataMark:         DM,
	FrameBreak:            BRK,
	FrameInterruptProcess: IP,
	FrameAbortOutput:      AO,
	FrameAreYouThere:      AYT,
	FrameEraseCharacter:   EC,
	FrameEraseLine:        EL,
	FrameGoAhead:          GA,
	FrameEndOfRecord:      EOR,
}

// Event is what the host observes from Decoder.Decode: every Frame
// variant except that the four negotiation frames (Do/Dont/Will/Wont)
// never appear here directly - the Q-method engine (C7) consumes them
// and produces OptionStatus only when an option's agreed state flips.
type Event = Frame
