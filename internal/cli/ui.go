package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/wordcloud/pkg/histogram"
	"github.com/matzehuels/wordcloud/pkg/session"
)

// out receives all user-facing output. Tests swap it for a buffer.
var out io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text

	// Word categories, matching the cloud.
	colorDoc1 = lipgloss.Color("33")  // Blue
	colorDoc2 = lipgloss.Color("160") // Red
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleDoc1 and StyleDoc2 mark words of one document.
	StyleDoc1 = lipgloss.NewStyle().Foreground(colorDoc1)
	StyleDoc2 = lipgloss.NewStyle().Foreground(colorDoc2)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(out, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(out, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printOutcome reports one applied action.
func printOutcome(o session.Outcome) {
	if o.Warning {
		printWarning("%s", o.Message)
		return
	}
	printInfo("%s %s", o.Message, StyleDim.Render(fmt.Sprintf("(%d removed)", o.Removed)))
}

// =============================================================================
// File Output
// =============================================================================

func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(out, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printCounts prints cloud statistics on a single line.
func printCounts(words, shared, only1, only2 int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d words", words),
		fmt.Sprintf("%d shared", shared),
		StyleDoc1.Render(fmt.Sprintf("%d only left", only1)),
		StyleDoc2.Render(fmt.Sprintf("%d only right", only2)),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	fmt.Fprintln(out, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// topWordsTable renders the most frequent words of both documents side by
// side.
func topWordsTable(stats session.Stats) string {
	rows := make([][]string, max(len(stats.Top1), len(stats.Top2)))
	for i := range rows {
		rows[i] = []string{strconv.Itoa(i + 1), "", "", "", ""}
		if i < len(stats.Top1) {
			rows[i][1], rows[i][2] = entryCells(stats.Top1[i])
		}
		if i < len(stats.Top2) {
			rows[i][3], rows[i][4] = entryCells(stats.Top2[i])
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", shortName(stats.Source1, "doc1"), "n", shortName(stats.Source2, "doc2"), "n").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 1:
				return StyleDoc1
			case col == 3:
				return StyleDoc2
			}
			return StyleDim
		})
	return t.Render()
}

// countsTable renders the vocabulary sizes of a session.
func countsTable(stats session.Stats) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "words", "tokens", "only here").
		Rows(
			[]string{shortName(stats.Source1, "doc1"), strconv.Itoa(stats.Words1), strconv.Itoa(stats.Tokens1), strconv.Itoa(stats.OnlyDoc1)},
			[]string{shortName(stats.Source2, "doc2"), strconv.Itoa(stats.Words2), strconv.Itoa(stats.Tokens2), strconv.Itoa(stats.OnlyDoc2)},
			[]string{"shared", strconv.Itoa(stats.Shared), "", ""},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case row == 0 && col == 0:
				return StyleDoc1
			case row == 1 && col == 0:
				return StyleDoc2
			}
			return StyleValue
		})
	return t.Render()
}

func entryCells(e histogram.Entry) (string, string) {
	return e.Word, strconv.FormatFloat(e.Value, 'f', -1, 64)
}

func shortName(path, fallback string) string {
	if path == "" {
		return fallback
	}
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
