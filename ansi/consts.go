// Package ansi implements a byte-level parser and owned segment model for
// ANSI/ISO-6429 (ECMA-48) terminal escape sequences: the style model behind
// SGR (Select Graphic Rendition), a single-pass span parser over borrowed
// bytes, and an owned segment builder used to construct or rewrite an
// escape-sequence stream.
//
// The package recognizes sequences; it does not interpret them. There is no
// screen grid, cursor position, or scrollback here - that is left to a
// terminal emulator built on top.
package ansi

// ESC is the single-byte escape introducer used by the 7-bit encoding of
// every multi-byte sequence this package recognizes.
const ESC byte = 0x1B

// BEL additionally terminates an OSC sequence on input, alongside ST.
const BEL byte = 0x07

// Second byte after ESC for each 7-bit string-terminated family.
const (
	introOSC byte = ']'
	introDCS byte = 'P'
	introSOS byte = 'X'
	introPM  byte = '^'
	introAPC byte = '_'
	introST  byte = '\\'
	introCSI byte = '['
)

// 8-bit C1 equivalents of the introducers above. Output always uses the
// 7-bit form; input accepts either.
const (
	c1DCS byte = 0x90
	c1SOS byte = 0x98
	c1CSI byte = 0x9B
	c1ST  byte = 0x9C
	c1OSC byte = 0x9D
	c1PM  byte = 0x9E
	c1APC byte = 0x9F
)

// controlNames maps every C0 control byte and every C1 byte not claimed by
// one of the string-terminated families above to its ISO 6429 mnemonic.
var controlNames = map[byte]string{
	0x00: "NUL", 0x01: "SOH", 0x02: "STX", 0x03: "ETX",
	0x04: "EOT", 0x05: "ENQ", 0x06: "ACK", 0x07: "BEL",
	0x08: "BS", 0x09: "HT", 0x0A: "LF", 0x0B: "VT",
	0x0C: "FF", 0x0D: "CR", 0x0E: "SO", 0x0F: "SI",
	0x10: "DLE", 0x11: "DC1", 0x12: "DC2", 0x13: "DC3",
	0x14: "DC4", 0x15: "NAK", 0x16: "SYN", 0x17: "ETB",
	0x18: "CAN", 0x19: "EM", 0x1A: "SUB",
	0x1C: "FS", 0x1D: "GS", 0x1E: "RS", 0x1F: "US",
	0x7F: "DEL",

	0x80: "PAD", 0x81: "HOP", 0x82: "BPH", 0x83: "NBH",
	0x84: "IND", 0x85: "NEL", 0x86: "SSA", 0x87: "ESA",
	0x88: "HTS", 0x89: "HTJ", 0x8A: "VTS", 0x8B: "PLD",
	0x8C: "PLU", 0x8D: "RI", 0x8E: "SS2", 0x8F: "SS3",
	0x91: "PU1", 0x92: "PU2", 0x93: "STS", 0x94: "CCH",
	0x95: "MW", 0x96: "SPA", 0x97: "EPA",
	0x99: "SGC", 0x9A: "SCI",
}

// isC0 reports whether b is a C0 control code (excluding ESC, which is
// handled by its own branch of the span parser).
func isC0(b byte) bool {
	return (b <= 0x1A || (b >= 0x1C && b <= 0x1F)) || b == 0x7F
}

// isC1 reports whether b is a recognized C1 control byte, including the
// ones claimed by the string-terminated families.
func isC1(b byte) bool {
	return b >= 0x80 && b <= 0x9F
}

// controlName returns the ISO 6429 mnemonic for a C0/C1 control byte and
// whether one is known. ESC is deliberately excluded.
func controlName(b byte) (string, bool) {
	name, ok := controlNames[b]
	return name, ok
}

// controlBytes is the inverse of controlNames, built once at package
// init so the segment writer can recover the wire byte for a mnemonic
// without a linear scan.
var controlBytes = func() map[string]byte {
	m := make(map[string]byte, len(controlNames))
	for b, name := range controlNames {
		m[name] = b
	}
	return m
}()

// controlByte returns the wire byte for an ISO 6429 mnemonic, or 0 if
// name is not recognized.
func controlByte(name string) byte {
	return controlBytes[name]
}
