package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all command output. Tests point it elsewhere.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings such as the file name above a preview.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleHighlight renders item ids, snapshot names and the active breakpoint.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorAmber)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// A mark is the icon in front of a status line.
type mark struct {
	icon  string
	style lipgloss.Style
}

var (
	markSuccess = mark{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = mark{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarning = mark{"!", lipgloss.NewStyle().Foreground(colorAmber)}
	markInfo    = mark{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

const iconArrow = "→"

func printLine(s string) {
	fmt.Fprintln(stdout, s)
}

func (m mark) print(msg string) {
	printLine(m.style.Render(m.icon) + " " + msg)
}

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(format string, args ...any) { markSuccess.print(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markError.print(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markInfo.print(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarning.print(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	printLine("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a path that was written.
func printFile(path string) {
	printLine("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	printLine(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printLayoutStats prints "N items · C×R grid · K changed".
func printLayoutStats(items, rows, cols, changed int) {
	status := "unchanged"
	if changed > 0 {
		status = fmt.Sprintf("%d changed", changed)
	}
	parts := []string{
		fmt.Sprintf("%d items", items),
		fmt.Sprintf("%d×%d grid", cols, rows),
		status,
	}
	printLine("  " + StyleDim.Render(strings.Join(parts, " · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	printLine(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printBlock prints a multi-line block such as a grid preview, indented.
func printBlock(s string) {
	for line := range strings.SplitSeq(s, "\n") {
		printLine("  " + line)
	}
}

func printNewline() {
	printLine("")
}
