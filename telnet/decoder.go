package telnet

import (
	"log/slog"

	"github.com/huhlig/termionix/internal/ringbuf"
	"github.com/huhlig/termionix/telnet/subneg"
)

// decoderState is the byte-driven state machine's current mode, per
// §4.6. It persists across Decode calls so a sequence split across two
// reads resumes correctly.
type decoderState byte

const (
	stateNormalData decoderState = iota
	stateInterpretAsCommand
	stateNegotiate
	stateSubnegotiate
	stateSubnegotiateArgument
	stateSubnegotiateArgumentIAC
)

// DefaultMaxSubnegotiationSize bounds the decoder's subnegotiation
// accumulator. §5 leaves the cap to the host; this is the value
// cmd/telnetdump and a zero-valued NewDecoder argument fall back to.
const DefaultMaxSubnegotiationSize = 64 * 1024

// Decoder is an incremental, non-blocking Telnet frame decoder. It owns
// no socket: the host pushes bytes in via Decode and receives events
// out. A Decoder is not safe for concurrent use; one TCP connection
// should own one.
type Decoder struct {
	state       decoderState
	negotiating byte // DO/DONT/WILL/WONT awaiting its option byte
	subOpt      OptionID
	subBuf      *ringbuf.Buffer

	negot  *Negotiator
	logger *slog.Logger

	events   []Event
	outbound []Frame
}

// NewDecoder creates a Decoder bound to negot, which owns the Q-method
// state the decoder's DO/DONT/WILL/WONT frames drive. maxSubneg <= 0
// selects DefaultMaxSubnegotiationSize.
func NewDecoder(negot *Negotiator, maxSubneg int, logger *slog.Logger) *Decoder {
	if maxSubneg <= 0 {
		maxSubneg = DefaultMaxSubnegotiationSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{
		subBuf: ringbuf.New(maxSubneg),
		negot:  negot,
		logger: logger,
	}
}

// Decode feeds src through the state machine and returns every Event it
// produced, in byte-arrival order, plus any frames the Q-method engine
// queued in response (WILL/WONT/DO/DONT replies). Per §5's ordering
// contract, the host should write outbound before subsequent
// application data.
func (d *Decoder) Decode(src []byte) (events []Event, outbound []Frame) {
	for _, b := range src {
		d.step(b)
	}
	events, d.events = d.events, nil
	outbound, d.outbound = d.outbound, nil
	return events, outbound
}

func (d *Decoder) emitEvent(f Event) {
	d.events = append(d.events, f)
}

func (d *Decoder) step(b byte) {
	switch d.state {
	case stateNormalData:
		d.stepNormalData(b)
	case stateInterpretAsCommand:
		d.stepInterpretAsCommand(b)
	case stateNegotiate:
		d.stepNegotiate(b)
	case stateSubnegotiate:
		d.subOpt = OptionFromByte(b)
		d.subBuf.Reset()
		d.state = stateSubnegotiateArgument
	case stateSubnegotiateArgument:
		d.stepSubnegotiateArgument(b)
	case stateSubnegotiateArgumentIAC:
		d.stepSubnegotiateArgumentIAC(b)
	}
}

func (d *Decoder) stepNormalData(b byte) {
	if b == IAC {
		d.state = stateInterpretAsCommand
		return
	}
	if b > 0x7F && !d.negot.LocalState(OptionBinary) {
		d.logger.Warn("telnet: data byte above 0x7F received outside TRANSMIT-BINARY", "byte", b)
	}
	d.emitEvent(Event{Kind: FrameData, Data: b})
}

func (d *Decoder) stepInterpretAsCommand(b byte) {
	switch b {
	case NOP:
		d.emitEvent(Event{Kind: FrameNoOperation})
	case DM:
		d.emitEvent(Event{Kind: FrameDataMark})
	case BRK:
		d.emitEvent(Event{Kind: FrameBreak})
	case IP:
		d.emitEvent(Event{Kind: FrameInterruptProcess})
	case AO:
		d.emitEvent(Event{Kind: FrameAbortOutput})
	case AYT:
		d.emitEvent(Event{Kind: FrameAreYouThere})
	case EC:
		d.emitEvent(Event{Kind: FrameEraseCharacter})
	case EL:
		d.emitEvent(Event{Kind: FrameEraseLine})
	case GA:
		d.emitEvent(Event{Kind: FrameGoAhead})
	case EOR:
		d.emitEvent(Event{Kind: FrameEndOfRecord})
	case IAC:
		d.emitEvent(Event{Kind: FrameData, Data: 0xFF})
	case DO, DONT, WILL, WONT:
		d.negotiating = b
		d.state = stateNegotiate
		return
	case SB:
		d.state = stateSubnegotiate
		return
	default:
		d.logger.Warn("telnet: unknown command byte after IAC", "byte", b)
		d.emitEvent(Event{Kind: FrameNoOperation})
	}
	d.state = stateNormalData
}

func (d *Decoder) stepNegotiate(b byte) {
	option := OptionFromByte(b)
	status, response := d.negot.Receive(d.negotiating, option)
	if status != nil {
		d.emitEvent(*status)
	}
	if response != nil {
		d.outbound = append(d.outbound, *response)
	}
	d.state = stateNormalData
}

func (d *Decoder) stepSubnegotiateArgument(b byte) {
	if b == IAC {
		d.state = stateSubnegotiateArgumentIAC
		return
	}
	if !d.subBuf.Write(b) {
		d.abortSubnegotiation("subnegotiation payload exceeded maximum size")
	}
}

func (d *Decoder) stepSubnegotiateArgumentIAC(b byte) {
	switch b {
	case IAC:
		if !d.subBuf.Write(0xFF) {
			d.abortSubnegotiation("subnegotiation payload exceeded maximum size")
			return
		}
		d.state = stateSubnegotiateArgument
	case SE:
		arg := subneg.Decode(d.subOpt.ToByte(), append([]byte(nil), d.subBuf.Bytes()...))
		d.emitEvent(Event{Kind: FrameSubnegotiate, Option: d.subOpt, Arg: arg})
		d.subBuf.Reset()
		d.state = stateNormalData
	default:
		d.abortSubnegotiation("malformed subnegotiation: IAC followed by neither IAC nor SE")
	}
}

// abortSubnegotiation implements §7's malformed-subnegotiation recovery:
// clear the accumulator, emit NoOperation, return to NormalData, and log
// a warning. The in-flight subnegotiation is lost.
func (d *Decoder) abortSubnegotiation(reason string) {
	d.logger.Warn("telnet: "+reason, "option", d.subOpt)
	d.subBuf.Reset()
	d.emitEvent(Event{Kind: FrameNoOperation})
	d.state = stateNormalData
}
