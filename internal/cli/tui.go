package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/session"
)

var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	helpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// actionKeys maps key presses to actions.
var actionKeys = map[string]session.Action{
	"c": session.RemoveCommon,
	"i": session.RemoveInfrequent,
	"u": session.RemoveUnshared,
}

// =============================================================================
// CompareModel - Interactive comparison
// =============================================================================

// CompareModel is the bubbletea model of an interactive comparison. Every
// action runs inside Update, so each one completes, and the output file is
// rewritten, before the next key press is handled.
type CompareModel struct {
	ctx     context.Context
	session *session.Session
	runner  *pipeline.Runner
	opts    pipeline.Options
	output  string

	message string
	warning bool
	err     error
	renders int
}

// NewCompareModel creates a model rendering s to output. The output
// format follows the file extension.
func NewCompareModel(ctx context.Context, s *session.Session, runner *pipeline.Runner, opts pipeline.Options, output string) CompareModel {
	opts.Formats = []string{formatOf(output)}
	return CompareModel{ctx: ctx, session: s, runner: runner, opts: opts, output: output}
}

func formatOf(path string) string {
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return pipeline.FormatSVG
}

func (m CompareModel) Init() tea.Cmd {
	return nil
}

func (m CompareModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k := key.String(); k {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.message, m.warning = "Redrawn", false
		m = m.redraw()
	default:
		if a, ok := actionKeys[k]; ok {
			m = m.apply(a)
		}
	}
	return m, nil
}

func (m CompareModel) apply(a session.Action) CompareModel {
	o, err := m.session.Apply(m.ctx, a)
	if err != nil {
		m.err = err
		return m
	}
	if m = m.redraw(); m.err != nil {
		return m
	}
	m.message, m.warning = o.Message, o.Warning
	if o.Removed > 0 {
		m.message += fmt.Sprintf(" (%d removed)", o.Removed)
	}
	return m
}

// redraw lays the session out again and rewrites the output file.
func (m CompareModel) redraw() CompareModel {
	words, ok := m.session.Render(m.ctx)
	if !ok {
		m.message, m.warning = "Both documents must be loaded first", true
		return m
	}
	artifacts, err := m.runner.Render(m.ctx, m.session, words, m.opts)
	if err == nil {
		err = writeFile(m.output, artifacts[m.opts.Formats[0]])
	}
	if err != nil {
		m.err = err
		return m
	}
	m.err = nil
	m.renders++
	return m
}

func (m CompareModel) View() string {
	var b strings.Builder
	stats := m.session.Snapshot()

	b.WriteString(StyleTitle.Render("Word cloud"))
	b.WriteString("  ")
	b.WriteString(StyleDoc1.Render(shortName(stats.Source1, "doc1")))
	b.WriteString(StyleDim.Render(" vs "))
	b.WriteString(StyleDoc2.Render(shortName(stats.Source2, "doc2")))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + errors.UserMessage(m.err))
	case m.warning:
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(m.message))
	case m.message != "":
		b.WriteString(styleIconInfo.Render(iconInfo) + " " + m.message)
	}
	b.WriteString("\n")

	b.WriteString(countsTable(stats))
	b.WriteString("\n")
	if len(stats.Top1)+len(stats.Top2) > 0 {
		b.WriteString(topWordsTable(stats))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render(iconArrow) + " " + StyleValue.Render(m.output))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  (%d renders, next limit %d)", m.renders, stats.InfrequentLimit)))
	b.WriteString("\n\n")

	help := []string{
		keyStyle.Render("c") + helpStyle.Render(" remove common"),
		keyStyle.Render("i") + helpStyle.Render(" remove infrequent"),
		keyStyle.Render("u") + helpStyle.Render(" remove un-shared"),
		keyStyle.Render("r") + helpStyle.Render(" redraw"),
		keyStyle.Render("q") + helpStyle.Render(" quit"),
	}
	b.WriteString(strings.Join(help, helpStyle.Render("  ·  ")))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// interactiveCommand creates the keyboard-driven comparison command.
func (c *CLI) interactiveCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:     "interactive DOC1 DOC2",
		Aliases: []string{"tui"},
		Short:   "Apply actions with single key presses and watch the cloud change",
		Long: `Interactive loads both documents and renders the word cloud to the output
file. Press c, i or u to remove common, infrequent or un-shared words; every
action rewrites the file. Open it in a viewer that reloads on change.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.pipelineOptions(cmd, &flags, args[0], args[1])
			output := flags.output
			if output == "" {
				output = defaultOutputBase + "." + pipeline.FormatSVG
			}
			opts.Formats = []string{formatOf(output)}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}

			s, err := c.loadSession(ctx, args[0], args[1], opts.SessionOptions(), false)
			if err != nil {
				return err
			}
			// Every redraw follows a change or asks for a new layout, so
			// nothing could be served from the artifact cache.
			logger := loggerFromContext(ctx)
			runner := pipeline.NewRunner(nil, logger)

			// Log lines would tear the full-screen view.
			logger.SetOutput(io.Discard)
			defer logger.SetOutput(os.Stderr)

			model := NewCompareModel(ctx, s, runner, opts, output).redraw()
			final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}

			m := final.(CompareModel)
			printSuccess("Applied %d action(s)", len(m.session.History))
			printFile(output)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file; format follows the extension (default wordcloud.svg)")
	cmd.Flags().StringVarP(&flags.vizType, "type", "t", "", "visualization type: cloud (default), dot")
	cmd.Flags().StringVar(&flags.title, "title", "", "document title")
	cmd.Flags().BoolVar(&flags.legend, "legend", true, "draw the color legend")
	return cmd
}
