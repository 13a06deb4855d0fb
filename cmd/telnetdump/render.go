package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/huhlig/termionix/ansi"
	"github.com/huhlig/termionix/telnet"
)

// Event log styles, one per broad category of Frame so the operator can
// scan a scrolling log by color the way a colorized `ls` groups file
// kinds - negotiation in one color, subnegotiation payloads in another,
// everything else in a neutral dim tone.
var (
	styleNegotiation = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	styleSubneg      = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan
	styleStatus      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleControl     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	styleWarn        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

// renderEvent formats a non-Data telnet.Event as one colorized log line.
// Data events are not rendered here - they flow straight to the
// operator's stdout by the session loop instead. mode honors the
// configured color_mode preference: ColorModeNone renders the event's
// plain String() with no escape codes, matching the ceiling semantics
// ansi.ColorMode applies elsewhere (a chosen fidelity is never upsampled,
// and "none" means none).
func renderEvent(sessionID string, e telnet.Event, mode ansi.ColorMode) string {
	prefix := fmt.Sprintf("[%s] ", sessionID)

	if mode == ansi.ColorModeNone {
		return prefix + e.String()
	}

	switch e.Kind {
	case telnet.FrameDo, telnet.FrameDont, telnet.FrameWill, telnet.FrameWont:
		return prefix + styleNegotiation.Render(e.String())
	case telnet.FrameOptionStatus:
		return prefix + styleStatus.Render(e.String())
	case telnet.FrameSubnegotiate:
		return prefix + styleSubneg.Render(e.String())
	case telnet.FrameNoOperation, telnet.FrameDataMark, telnet.FrameBreak,
		telnet.FrameInterruptProcess, telnet.FrameAbortOutput, telnet.FrameAreYouThere,
		telnet.FrameEraseCharacter, telnet.FrameEraseLine, telnet.FrameGoAhead, telnet.FrameEndOfRecord:
		return prefix + styleControl.Render(e.String())
	default:
		return prefix + styleWarn.Render(e.String())
	}
}
