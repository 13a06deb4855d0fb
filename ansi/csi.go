package ansi

import (
	"fmt"
	"strconv"
	"strings"
)

// CSICommandName tags the variant held by a CSICommand.
type CSICommandName byte

const (
	CSIUnknown CSICommandName = iota
	CSICursorUp
	CSICursorDown
	CSICursorForward
	CSICursorBack
	CSICursorNextLine
	CSICursorPrevLine
	CSICursorHorizontalAbsolute
	CSICursorPosition
	CSIEraseInDisplay
	CSIEraseInLine
	CSIDeviceStatusReport
	CSISaveCursor
	CSIRestoreCursor
	CSIScrollUp
	CSIScrollDown
	CSIInsertChar
	CSIDeleteChar
	CSIInsertLine
	CSIDeleteLine
	CSIEraseChar
	CSISetMode
	CSIResetMode
	CSIDECSetMode
	CSIDECResetMode
	CSISetKeyboardStrings
)

func (n CSICommandName) String() string {
	switch n {
	case CSICursorUp:
		return "CursorUp"
	case CSICursorDown:
		return "CursorDown"
	case CSICursorForward:
		return "CursorForward"
	case CSICursorBack:
		return "CursorBack"
	case CSICursorNextLine:
		return "CursorNextLine"
	case CSICursorPrevLine:
		return "CursorPrevLine"
	case CSICursorHorizontalAbsolute:
		return "CursorHorizontalAbsolute"
	case CSICursorPosition:
		return "CursorPosition"
	case CSIEraseInDisplay:
		return "EraseInDisplay"
	case CSIEraseInLine:
		return "EraseInLine"
	case CSIDeviceStatusReport:
		return "DeviceStatusReport"
	case CSISaveCursor:
		return "SaveCursor"
	case CSIRestoreCursor:
		return "RestoreCursor"
	case CSIScrollUp:
		return "ScrollUp"
	case CSIScrollDown:
		return "ScrollDown"
	case CSIInsertChar:
		return "InsertChar"
	case CSIDeleteChar:
		return "DeleteChar"
	case CSIInsertLine:
		return "InsertLine"
	case CSIDeleteLine:
		return "DeleteLine"
	case CSIEraseChar:
		return "EraseChar"
	case CSISetMode:
		return "SetMode"
	case CSIResetMode:
		return "ResetMode"
	case CSIDECSetMode:
		return "DECSetMode"
	case CSIDECResetMode:
		return "DECResetMode"
	case CSISetKeyboardStrings:
		return "SetKeyboardStrings"
	default:
		return "Unknown"
	}
}

// CSICommand is a parsed CSI sequence: a command name plus the numeric
// parameters the wire form carried, in order. Commands with positional
// meaning (CursorPosition's row/col, EraseInDisplay's mode) read their
// fields out of Params; commands with no parameters (SaveCursor) leave it
// empty; CSIUnknown retains whatever Params were present on the wire so a
// caller rendering it back out can round-trip.
type CSICommand struct {
	Name   CSICommandName
	Params []int
	// Private marks a DEC private mode sequence, i.e. params began with
	// '?' (only meaningful for SetMode/ResetMode).
	Private bool
}

func (c CSICommand) String() string {
	if len(c.Params) == 0 {
		return c.Name.String()
	}
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ","))
}

// param returns the i'th parameter or def if absent.
func (c CSICommand) param(i, def int) int {
	if i < len(c.Params) {
		return c.Params[i]
	}
	return def
}

// parseCSICommand maps a CSI parameter byte slice and final byte to a
// typed command per §4.3.1. It is total: any final byte not recognized
// produces CSIUnknown, retaining the parsed parameters.
func parseCSICommand(params []byte, final byte) CSICommand {
	private := len(params) > 0 && params[0] == '?'
	if private {
		params = params[1:]
	}
	fields := parseCSIParams(params)

	switch final {
	case 'A':
		return CSICommand{Name: CSICursorUp, Params: []int{paramDefault(fields, 0, 1)}}
	case 'B':
		return CSICommand{Name: CSICursorDown, Params: []int{paramDefault(fields, 0, 1)}}
	case 'C':
		return CSICommand{Name: CSICursorForward, Params: []int{paramDefault(fields, 0, 1)}}
	case 'D':
		return CSICommand{Name: CSICursorBack, Params: []int{paramDefault(fields, 0, 1)}}
	case 'E':
		return CSICommand{Name: CSICursorNextLine, Params: []int{paramDefault(fields, 0, 1)}}
	case 'F':
		return CSICommand{Name: CSICursorPrevLine, Params: []int{paramDefault(fields, 0, 1)}}
	case 'G':
		return CSICommand{Name: CSICursorHorizontalAbsolute, Params: []int{paramDefault(fields, 0, 1)}}
	case 'H', 'f':
		return CSICommand{Name: CSICursorPosition, Params: []int{
			paramDefault(fields, 0, 1),
			paramDefault(fields, 1, 1),
		}}
	case 'J':
		return CSICommand{Name: CSIEraseInDisplay, Params: []int{paramDefault(fields, 0, 0)}}
	case 'K':
		return CSICommand{Name: CSIEraseInLine, Params: []int{paramDefault(fields, 0, 0)}}
	case 'n':
		return CSICommand{Name: CSIDeviceStatusReport, Params: fields}
	case 's':
		return CSICommand{Name: CSISaveCursor}
	case 'u':
		return CSICommand{Name: CSIRestoreCursor}
	case 'S':
		return CSICommand{Name: CSIScrollUp, Params: []int{paramDefault(fields, 0, 1)}}
	case 'T':
		return CSICommand{Name: CSIScrollDown, Params: []int{paramDefault(fields, 0, 1)}}
	case '@':
		return CSICommand{Name: CSIInsertChar, Params: []int{paramDefault(fields, 0, 1)}}
	case 'P':
		return CSICommand{Name: CSIDeleteChar, Params: []int{paramDefault(fields, 0, 1)}}
	case 'L':
		return CSICommand{Name: CSIInsertLine, Params: []int{paramDefault(fields, 0, 1)}}
	case 'M':
		return CSICommand{Name: CSIDeleteLine, Params: []int{paramDefault(fields, 0, 1)}}
	case 'X':
		return CSICommand{Name: CSIEraseChar, Params: []int{paramDefault(fields, 0, 1)}}
	case 'h':
		if private {
			return CSICommand{Name: CSIDECSetMode, Params: fields, Private: true}
		}
		return CSICommand{Name: CSISetMode, Params: fields}
	case 'l':
		if private {
			return CSICommand{Name: CSIDECResetMode, Params: fields, Private: true}
		}
		return CSICommand{Name: CSIResetMode, Params: fields}
	case 'p':
		return CSICommand{Name: CSISetKeyboardStrings, Params: fields}
	case 'm':
		// SGR is represented as Unknown at the CSI level; §4.4 promotes
		// it to an SGR segment by re-parsing these same parameter bytes.
		return CSICommand{Name: CSIUnknown, Params: fields}
	default:
		return CSICommand{Name: CSIUnknown, Params: fields}
	}
}

// parseCSIParams splits a CSI parameter byte slice on ';', parsing each
// field as a non-negative integer with a missing or empty field read as
// 0. A malformed field (non-digit bytes) also reads as 0 rather than
// failing, since the span parser must never reject input.
func parseCSIParams(params []byte) []int {
	if len(params) == 0 {
		return nil
	}

	var fields []int
	start := 0
	for i := 0; i <= len(params); i++ {
		if i == len(params) || params[i] == ';' {
			fields = append(fields, parseCSIField(params[start:i]))
			start = i + 1
		}
	}
	return fields
}

func parseCSIField(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	n, err := strconv.Atoi(string(b))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// paramDefault returns fields[i] if present and nonzero-meaningful, else
// def. Per §4.3.1, an absent field defaults; a present-but-zero field for
// the motion commands (A-G) is also treated as the default since CSI
// conventionally maps a 0 count to 1.
func paramDefault(fields []int, i, def int) int {
	if i >= len(fields) {
		return def
	}
	if fields[i] == 0 {
		return def
	}
	return fields[i]
}
