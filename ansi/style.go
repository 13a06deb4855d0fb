package ansi

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Intensity is the SGR bold/dim/normal tri-state. IntensityUnset means the
// parameter stream never mentioned intensity; IntensityNormal means it was
// explicitly reset with code 22, which is a different state from never
// having been set at all.
type Intensity byte

const (
	IntensityUnset Intensity = iota
	IntensityBold
	IntensityDim
	IntensityNormal
)

// Switch is a generic on/off/unset tri-state used for the SGR attributes
// that only ever have an "on" code and an "off" code (italic, reverse,
// hidden, strike).
type Switch byte

const (
	SwitchUnset Switch = iota
	SwitchOn
	SwitchOff
)

// Underline is the SGR underline tri-state (single/double/disabled).
type Underline byte

const (
	UnderlineUnset Underline = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineDisabled
)

// Blink is the SGR blink tri-state (slow/rapid/off).
type Blink byte

const (
	BlinkUnset Blink = iota
	BlinkSlow
	BlinkRapid
	BlinkOff
)

// Script is the SGR superscript/subscript state.
type Script byte

const (
	ScriptUnset Script = iota
	ScriptSuper
	ScriptSub
	ScriptNormal
)

// Ideogram is the ECMA-48 ideogram decoration state (codes 60-65).
type Ideogram byte

const (
	IdeogramUnset Ideogram = iota
	IdeogramUnderline
	IdeogramDoubleUnderline
	IdeogramOverline
	IdeogramDoubleOverline
	IdeogramStressMarking
	IdeogramNone
)

// Font is the SGR alternate font selection (codes 10-20).
type Font byte

const (
	FontUnset Font = iota
	FontPrimary
	FontAlt1
	FontAlt2
	FontAlt3
	FontAlt4
	FontAlt5
	FontAlt6
	FontAlt7
	FontAlt8
	FontAlt9
	FontFraktur
)

// ColorKind tags the representation held by a Color value.
type ColorKind byte

const (
	// ColorNone means no color is set (either never mentioned, or
	// explicitly cleared with code 39/49).
	ColorNone ColorKind = iota
	ColorBasic
	ColorBright
	ColorFixed
	ColorRGB
)

// Color is a tagged union over the four ways SGR can express a color:
// one of the eight basic ANSI colors, one of the eight bright variants,
// an 8-bit palette index (code 38/48;5;n), or 24-bit RGB (38/48;2;r;g;b).
type Color struct {
	Kind  ColorKind
	Basic uint8 // 0-7, valid for ColorBasic and ColorBright
	Fixed uint8 // 0-255, valid for ColorFixed
	R, G, B uint8
}

// BasicColor constructs a Color of the eight basic ANSI colors (0-7).
func BasicColor(n uint8) Color { return Color{Kind: ColorBasic, Basic: n & 7} }

// BrightColor constructs a Color of the eight bright ANSI colors (0-7).
func BrightColor(n uint8) Color { return Color{Kind: ColorBright, Basic: n & 7} }

// FixedColor constructs an 8-bit indexed Color.
func FixedColor(n uint8) Color { return Color{Kind: ColorFixed, Fixed: n} }

// RGBColor constructs a 24-bit truecolor Color.
func RGBColor(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// ColorMode selects how Color values are rendered by SGR.Write.
type ColorMode byte

const (
	// ColorModeNone emits no color codes at all.
	ColorModeNone ColorMode = iota
	// ColorModeBasic16 coerces every color to one of the 16 basic/bright colors.
	ColorModeBasic16
	// ColorModeFixed256 coerces every color to an 8-bit palette index.
	ColorModeFixed256
	// ColorModeTrueColor coerces every color to 24-bit RGB.
	ColorModeTrueColor
)

// SGR is a lossless, optional-field record of SGR (Select Graphic
// Rendition) state. Every field distinguishes "never mentioned" from an
// explicit reset, which is required to round-trip sequences like
// "\x1b[22m" correctly (intensity becomes explicitly Normal, not unset).
//
// Unknown holds SGR parameter codes this package does not interpret, in
// the order they were encountered, so that writing an SGR value that was
// parsed from unrecognized input round-trips those codes losslessly.
type SGR struct {
	Intensity  Intensity
	Italic     Switch
	Underline  Underline
	Blink      Blink
	Reverse    Switch
	Hidden     Switch
	Strike     Switch
	Script     Script
	Ideogram   Ideogram
	Font       Font
	Foreground Color
	Background Color
	Unknown    []uint8
}

func ideogramFromCode(code uint8) Ideogram {
	switch code {
	case 60:
		return IdeogramUnderline
	case 61:
		return IdeogramDoubleUnderline
	case 62:
		return IdeogramOverline
	case 63:
		return IdeogramDoubleOverline
	case 64:
		return IdeogramStressMarking
	default: // 65
		return IdeogramNone
	}
}

func ideogramToCode(i Ideogram) uint8 {
	return uint8(59 + int(i))
}

func fontFromCode(code uint8) Font {
	if code == 20 {
		return FontFraktur
	}
	// 10 -> Primary, 11-19 -> Alt1-Alt9
	return Font(1 + (code - 10))
}

func fontToCode(f Font) uint8 {
	if f == FontFraktur {
		return 20
	}
	return uint8(10 + (int(f) - int(FontPrimary)))
}

// ParseSGR consumes a flat list of SGR parameter numbers (already split on
// ';' and parsed from ASCII digits, as CSI parameter parsing does) and
// folds them into an SGR record.
//
// ParseSGR is total: every input, including an empty slice, produces a
// value. An unrecognized code is appended to Unknown rather than dropped.
// An incomplete extended color (38/48 without enough following
// parameters) also ends up in Unknown rather than silently vanishing.
func ParseSGR(params []uint8) SGR {
	var sgr SGR

	for i := 0; i < len(params); i++ {
		code := params[i]

		switch {
		case code == 0:
			sgr = SGR{}
		case code == 1:
			sgr.Intensity = IntensityBold
		case code == 2:
			sgr.Intensity = IntensityDim
		case code == 22:
			sgr.Intensity = IntensityNormal
		case code == 3:
			sgr.Italic = SwitchOn
		case code == 23:
			sgr.Italic = SwitchOff
		case code == 4:
			sgr.Underline = UnderlineSingle
		case code == 21:
			sgr.Underline = UnderlineDouble
		case code == 24:
			sgr.Underline = UnderlineDisabled
		case code == 5:
			sgr.Blink = BlinkSlow
		case code == 6:
			sgr.Blink = BlinkRapid
		case code == 25:
			sgr.Blink = BlinkOff
		case code == 7:
			sgr.Reverse = SwitchOn
		case code == 27:
			sgr.Reverse = SwitchOff
		case code == 8:
			sgr.Hidden = SwitchOn
		case code == 28:
			sgr.Hidden = SwitchOff
		case code == 9:
			sgr.Strike = SwitchOn
		case code == 29:
			sgr.Strike = SwitchOff
		case code == 73:
			sgr.Script = ScriptSuper
		case code == 74:
			sgr.Script = ScriptSub
		case code == 75:
			sgr.Script = ScriptNormal
		case code >= 60 && code <= 65:
			sgr.Ideogram = ideogramFromCode(code)
		case code >= 10 && code <= 20:
			sgr.Font = fontFromCode(code)
		case code == 38:
			if n, color, ok := parseExtendedColor(params[i+1:]); ok {
				sgr.Foreground = color
				i += n
			} else {
				sgr.Unknown = append(sgr.Unknown, code)
			}
		case code == 48:
			if n, color, ok := parseExtendedColor(params[i+1:]); ok {
				sgr.Background = color
				i += n
			} else {
				sgr.Unknown = append(sgr.Unknown, code)
			}
		case code == 39:
			sgr.Foreground = Color{}
		case code == 49:
			sgr.Background = Color{}
		case code >= 30 && code <= 37:
			sgr.Foreground = BasicColor(code - 30)
		case code >= 90 && code <= 97:
			sgr.Foreground = BrightColor(code - 90)
		case code >= 40 && code <= 47:
			sgr.Background = BasicColor(code - 40)
		case code >= 100 && code <= 107:
			sgr.Background = BrightColor(code - 100)
		default:
			sgr.Unknown = append(sgr.Unknown, code)
		}
	}

	return sgr
}

// parseExtendedColor parses the parameters following a 38 or 48 code: the
// mode selector (5 for indexed, 2 for truecolor) and its arguments. It
// returns how many additional parameters were consumed and the resulting
// Color, or ok=false if the sequence was incomplete or used an
// unrecognized mode selector.
func parseExtendedColor(rest []uint8) (consumed int, color Color, ok bool) {
	if len(rest) == 0 {
		return 0, Color{}, false
	}

	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return 0, Color{}, false
		}
		return 2, FixedColor(rest[1]), true
	case 2:
		if len(rest) < 4 {
			return 0, Color{}, false
		}
		return 4, RGBColor(rest[1], rest[2], rest[3]), true
	default:
		return 0, Color{}, false
	}
}

// buildParams assembles the ordered list of numeric SGR codes that Write
// would emit for the given color mode, following the canonical field
// order: intensity, italic, underline, blink, reverse, hidden, strike,
// script, ideogram, font, foreground, background, then unknown codes in
// original encounter order.
func (s SGR) buildParams(mode ColorMode) []string {
	var params []string

	switch s.Intensity {
	case IntensityBold:
		params = append(params, "1")
	case IntensityDim:
		params = append(params, "2")
	case IntensityNormal:
		params = append(params, "22")
	}

	switch s.Italic {
	case SwitchOn:
		params = append(params, "3")
	case SwitchOff:
		params = append(params, "23")
	}

	switch s.Underline {
	case UnderlineSingle:
		params = append(params, "4")
	case UnderlineDouble:
		params = append(params, "21")
	case UnderlineDisabled:
		params = append(params, "24")
	}

	switch s.Blink {
	case BlinkSlow:
		params = append(params, "5")
	case BlinkRapid:
		params = append(params, "6")
	case BlinkOff:
		params = append(params, "25")
	}

	switch s.Reverse {
	case SwitchOn:
		params = append(params, "7")
	case SwitchOff:
		params = append(params, "27")
	}

	switch s.Hidden {
	case SwitchOn:
		params = append(params, "8")
	case SwitchOff:
		params = append(params, "28")
	}

	switch s.Strike {
	case SwitchOn:
		params = append(params, "9")
	case SwitchOff:
		params = append(params, "29")
	}

	switch s.Script {
	case ScriptSuper:
		params = append(params, "73")
	case ScriptSub:
		params = append(params, "74")
	case ScriptNormal:
		params = append(params, "75")
	}

	if s.Ideogram != IdeogramUnset {
		params = append(params, strconv.Itoa(int(ideogramToCode(s.Ideogram))))
	}

	if s.Font != FontUnset {
		params = append(params, strconv.Itoa(int(fontToCode(s.Font))))
	}

	params = appendColorParams(params, s.Foreground, mode, false)
	params = appendColorParams(params, s.Background, mode, true)

	for _, u := range s.Unknown {
		params = append(params, strconv.Itoa(int(u)))
	}

	return params
}

// colorTier ranks how much precision a Color's native representation
// needs: 0 for the 16 basic/bright colors, 1 for an 8-bit palette index,
// 2 for 24-bit RGB.
func (c Color) colorTier() int {
	switch c.Kind {
	case ColorFixed:
		return 1
	case ColorRGB:
		return 2
	default:
		return 0
	}
}

// ceiling is the highest colorTier a ColorMode is willing to emit.
// ColorModeNone has no ceiling; callers must check for it separately.
func (mode ColorMode) ceiling() int {
	switch mode {
	case ColorModeBasic16:
		return 0
	case ColorModeFixed256:
		return 1
	default: // ColorModeTrueColor
		return 2
	}
}

// appendColorParams emits a color at the lowest of its own native
// precision and the mode's ceiling: a mode never upsamples a color to a
// richer representation than it was given in, it only downsamples one
// that exceeds what the mode allows.
func appendColorParams(params []string, c Color, mode ColorMode, background bool) []string {
	if c.Kind == ColorNone || mode == ColorModeNone {
		return params
	}

	tier := c.colorTier()
	if ceiling := mode.ceiling(); tier > ceiling {
		tier = ceiling
	}

	switch tier {
	case 0:
		idx, bright := c.toBasic16()
		base := 30
		if bright {
			base = 90
		}
		if background {
			base += 10
		}
		return append(params, strconv.Itoa(base+int(idx)))
	case 1:
		code := "38"
		if background {
			code = "48"
		}
		return append(params, code, "5", strconv.Itoa(int(c.toFixed256())))
	default: // 2
		code := "38"
		if background {
			code = "48"
		}
		r, g, b := c.toTrueColor()
		return append(params, code, "2", strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b)))
	}
}

// Len returns exactly the number of bytes Write would emit for the given
// color mode. Len and Write always agree.
func (s SGR) Len(mode ColorMode) int {
	params := s.buildParams(mode)
	if len(params) == 0 {
		return 0
	}

	n := 3 // ESC [ ... m -> "\x1b[" + "m"
	for i, p := range params {
		if i > 0 {
			n++ // ';'
		}
		n += len(p)
	}
	return n
}

// Write emits "ESC [ <code>;<code>;... m" using the minimal set of codes
// necessary to reproduce every non-default field, in canonical order. If
// every field is unset, Write emits nothing. It returns the number of
// bytes written, which always equals Len(mode).
func (s SGR) Write(w io.Writer, mode ColorMode) (int, error) {
	params := s.buildParams(mode)
	if len(params) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteByte(ESC)
	sb.WriteByte('[')
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(p)
	}
	sb.WriteByte('m')

	return w.Write([]byte(sb.String()))
}

// String renders the sequence Write(w, ColorModeTrueColor) would produce,
// for debugging and test failure output.
func (s SGR) String() string {
	var sb strings.Builder
	_, _ = s.Write(&sb, ColorModeTrueColor)
	if sb.Len() == 0 {
		return "<no SGR>"
	}
	return fmt.Sprintf("%q", sb.String())
}
