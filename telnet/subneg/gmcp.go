package subneg

import "strings"

// GMCP is the Generic MUD Communication Protocol subnegotiation
// argument: an ASCII package/command path, one space, then a JSON
// document as the remainder of the payload. The JSON text is carried
// verbatim - this codec does not parse or validate it, per spec's
// non-goal of message semantics beyond parse/encode of the wire format.
type GMCP struct {
	Package string
	JSON    string
}

func (g GMCP) Option() byte { return optionGMCP }

func (g GMCP) Encode(dst []byte) []byte {
	dst = append(dst, g.Package...)
	if g.JSON != "" {
		dst = append(dst, ' ')
		dst = append(dst, g.JSON...)
	}
	return dst
}

func (g GMCP) String() string {
	if g.JSON == "" {
		return g.Package
	}
	return g.Package + " " + g.JSON
}

// DecodeGMCP splits payload on the first space into package path and
// JSON text. A payload with no space is a bare package name with no
// JSON body; an empty payload is the zero-value GMCP.
func DecodeGMCP(payload []byte) GMCP {
	s := string(payload)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return GMCP{Package: s[:i], JSON: s[i+1:]}
	}
	return GMCP{Package: s}
}
