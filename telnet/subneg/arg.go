// Package subneg implements the per-option Telnet subnegotiation
// payload codecs: MSDP's recursive value tree, GMCP's package/JSON
// pair, and an Unknown(option, bytes) fallback for anything else. Each
// codec is a total round trip - Decode never fails, Encode always
// produces bytes that Decode recovers.
//
// Option numbers are passed as plain bytes rather than telnet.OptionID
// to avoid a package import cycle (telnet imports subneg for Frame's
// Arg field); the numeric values below must stay in sync with the
// catalog in package telnet.
package subneg

const (
	optionMSDP = 69
	optionGMCP = 201
)

// Arg is a decoded subnegotiation payload.
type Arg interface {
	// Option reports the option byte this argument belongs to.
	Option() byte
	// Encode appends the wire form of this argument (without the
	// surrounding IAC SB <option> ... IAC SE framing) to dst.
	Encode(dst []byte) []byte
	String() string
}

// Decode dispatches on option to the matching structured codec,
// falling back to Unknown for anything else. It is total: every
// (option, payload) pair produces an Arg.
func Decode(option byte, payload []byte) Arg {
	switch option {
	case optionMSDP:
		return DecodeMSDP(payload)
	case optionGMCP:
		return DecodeGMCP(payload)
	default:
		return Unknown{OptionByte: option, Bytes: payload}
	}
}

// Unknown is the fallback Arg for any option without a structured
// codec: its payload round-trips losslessly but uninterpreted.
type Unknown struct {
	OptionByte byte
	Bytes      []byte
}

func (u Unknown) Option() byte { return u.OptionByte }

func (u Unknown) Encode(dst []byte) []byte {
	return append(dst, u.Bytes...)
}

func (u Unknown) String() string {
	return string(u.Bytes)
}
