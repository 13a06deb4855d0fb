package telnet

import (
	"log/slog"

	"github.com/huhlig/termionix/internal/ringbuf"
)

// Encoder renders Frames to wire bytes, mirroring the decoder's grammar
// exactly: IAC is doubled inside Data, subnegotiation arguments are not
// IAC-escaped by the framing layer (per §4.6's explicit design note),
// and OptionStatus is a legal but no-op input since it is purely
// informational.
type Encoder struct {
	out    *ringbuf.Buffer
	logger *slog.Logger
}

// NewEncoder creates an Encoder with an unbounded output buffer, grown
// on demand as frames are appended.
func NewEncoder(logger *slog.Logger) *Encoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Encoder{out: ringbuf.New(0), logger: logger}
}

// Encode appends the wire form of each frame to the encoder's output
// buffer. It never fails; the only error surface per §4.6 is the
// eventual byte sink the host drains Bytes() into.
func (e *Encoder) Encode(frames ...Frame) {
	for _, f := range frames {
		e.encodeOne(f)
	}
}

// Bytes returns the bytes accumulated since the last Reset.
func (e *Encoder) Bytes() []byte {
	return e.out.Bytes()
}

// Reset clears the output buffer, keeping its backing array.
func (e *Encoder) Reset() {
	e.out.Reset()
}

func (e *Encoder) write(bs ...byte) {
	e.out.WriteSlice(bs)
}

func (e *Encoder) encodeOne(f Frame) {
	switch f.Kind {
	case FrameData:
		if f.Data == IAC {
			e.write(IAC, IAC)
		} else {
			e.write(f.Data)
		}
	case FrameNoOperation:
		e.write(IAC, NOP)
	case FrameDataMark:
		e.write(IAC, DM)
	case FrameBreak:
		e.write(IAC, BRK)
	case FrameInterruptProcess:
		e.write(IAC, IP)
	case FrameAbortOutput:
		e.write(IAC, AO)
	case FrameAreYouThere:
		e.write(IAC, AYT)
	case FrameEraseCharacter:
		e.write(IAC, EC)
	case FrameEraseLine:
		e.write(IAC, EL)
	case FrameGoAhead:
		e.write(IAC, GA)
	case FrameEndOfRecord:
		e.write(IAC, EOR)
	case FrameDo:
		e.write(IAC, DO, f.Option.ToByte())
	case FrameDont:
		e.write(IAC, DONT, f.Option.ToByte())
	case FrameWill:
		e.write(IAC, WILL, f.Option.ToByte())
	case FrameWont:
		e.write(IAC, WONT, f.Option.ToByte())
	case FrameSubnegotiate:
		e.write(IAC, SB, f.Option.ToByte())
		if f.Arg != nil {
			payload := f.Arg.Encode(nil)
			e.out.WriteSlice(payload)
		}
		e.write(IAC, SE)
	case FrameOptionStatus:
		e.logger.Warn("telnet: OptionStatus is informational only, no bytes encoded", "option", f.Option)
	default:
		e.logger.Warn("telnet: unencodable frame kind", "kind", f.Kind)
	}
}
