package ansi

// ansi16Palette gives the conventional RGB values for the 16 basic/bright
// ANSI colors, in the order black, red, green, yellow, blue, magenta,
// cyan, white, then the bright variants of each.
var ansi16Palette = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// cubeLevels are the 6 intensity levels used by xterm's 6x6x6 color cube
// (palette indices 16-231).
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// toBasic16 coerces any Color representation to one of the 16 basic ANSI
// colors (total: every ColorKind, including ColorNone, produces a value).
func (c Color) toBasic16() (index uint8, bright bool) {
	switch c.Kind {
	case ColorBasic:
		return c.Basic, false
	case ColorBright:
		return c.Basic, true
	case ColorFixed:
		r, g, b := xterm256ToRGB(c.Fixed)
		return nearestAnsi16(r, g, b)
	case ColorRGB:
		return nearestAnsi16(c.R, c.G, c.B)
	default:
		return 0, false
	}
}

// toFixed256 coerces any Color representation to an 8-bit xterm-256
// palette index.
func (c Color) toFixed256() uint8 {
	switch c.Kind {
	case ColorBasic:
		return c.Basic
	case ColorBright:
		return c.Basic + 8
	case ColorFixed:
		return c.Fixed
	case ColorRGB:
		return rgbToXterm256(c.R, c.G, c.B)
	default:
		return 0
	}
}

// toTrueColor coerces any Color representation to 24-bit RGB.
func (c Color) toTrueColor() (r, g, b uint8) {
	switch c.Kind {
	case ColorBasic:
		p := ansi16Palette[c.Basic]
		return p[0], p[1], p[2]
	case ColorBright:
		p := ansi16Palette[c.Basic+8]
		return p[0], p[1], p[2]
	case ColorFixed:
		return xterm256ToRGB(c.Fixed)
	case ColorRGB:
		return c.R, c.G, c.B
	default:
		return 0, 0, 0
	}
}

// xterm256ToRGB converts a palette index to its conventional RGB value:
// 0-15 the basic/bright colors, 16-231 the 6x6x6 color cube, 232-255 a
// 24-step grayscale ramp.
func xterm256ToRGB(idx uint8) (r, g, b uint8) {
	switch {
	case idx < 16:
		p := ansi16Palette[idx]
		return p[0], p[1], p[2]
	case idx < 232:
		n := idx - 16
		ri := (n / 36) % 6
		gi := (n / 6) % 6
		bi := n % 6
		return cubeLevels[ri], cubeLevels[gi], cubeLevels[bi]
	default:
		level := 8 + 10*(idx-232)
		return level, level, level
	}
}

// rgbToXterm256 finds the closest xterm-256 palette index to an RGB
// value, searching only the color cube and grayscale ramp: indices 0-15
// are never returned.
func rgbToXterm256(r, g, b uint8) uint8 {
	bestIdx := uint8(16)
	bestDist := -1

	for i := 16; i < 256; i++ {
		cr, cg, cb := xterm256ToRGB(uint8(i))
		dist := colorDistance(r, g, b, cr, cg, cb)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestIdx = uint8(i)
		}
	}

	return bestIdx
}

func nearestAnsi16(r, g, b uint8) (index uint8, bright bool) {
	bestIdx := 0
	bestDist := -1

	for i, p := range ansi16Palette {
		dist := colorDistance(r, g, b, p[0], p[1], p[2])
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestIdx = i
		}
	}

	if bestIdx >= 8 {
		return uint8(bestIdx - 8), true
	}
	return uint8(bestIdx), false
}

func colorDistance(r1, g1, b1, r2, g2, b2 uint8) int {
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return dr*dr + dg*dg + db*db
}
