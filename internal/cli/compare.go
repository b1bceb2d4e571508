package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// renderFlags holds the flags shared by the commands that build a session.
type renderFlags struct {
	actions   []string // actions applied in order before rendering
	formats   string   // comma-separated output formats
	output    string   // output file (single format) or base path
	vizType   string   // "cloud" or "dot"
	seed      uint64   // vertical placement seed, 0 = random
	width     float64  // reference canvas width
	height    float64  // reference canvas height
	limit     int      // first limit of remove-infrequent
	stopwords string   // stopword list, "" = config or built-in
	title     string   // document title
	legend    bool     // draw the color legend
	noCache   bool     // bypass the artifact cache
}

// register adds the session flags to cmd. Only flags the user sets
// override the configuration file.
func (f *renderFlags) register(cmd *cobra.Command, withOutput bool) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&f.actions, "action", "a", nil, "action(s) to apply in order: common, infrequent, unshared (repeatable)")
	flags.Uint64Var(&f.seed, "seed", 0, "seed for vertical placement (0 = random)")
	flags.Float64Var(&f.width, "width", 0, "reference canvas width")
	flags.Float64Var(&f.height, "height", 0, "reference canvas height")
	flags.IntVar(&f.limit, "limit", 0, "first limit of remove-infrequent (halves on every use)")
	flags.StringVar(&f.stopwords, "stopwords", "", "stopword list file (empty = built-in list)")
	if !withOutput {
		return
	}
	flags.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	flags.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, dot, png, pdf (comma-separated)")
	flags.StringVarP(&f.vizType, "type", "t", "", "visualization type: cloud (default), dot")
	flags.StringVar(&f.title, "title", "", "document title")
	flags.BoolVar(&f.legend, "legend", true, "draw the color legend")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
}

// pipelineOptions merges the configuration file with the flags the user set.
func (c *CLI) pipelineOptions(cmd *cobra.Command, f *renderFlags, doc1, doc2 string) pipeline.Options {
	opts := c.cfg.PipelineOptions()
	opts.Doc1, opts.Doc2 = doc1, doc2
	opts.Actions = f.actions
	opts.Logger = loggerFromContext(cmd.Context())

	flags := cmd.Flags()
	if flags.Changed("format") {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if flags.Changed("type") {
		opts.VizType = f.vizType
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	if flags.Changed("width") {
		opts.Width = f.width
	}
	if flags.Changed("height") {
		opts.Height = f.height
	}
	if flags.Changed("limit") {
		opts.InfrequentLimit = f.limit
	}
	if flags.Changed("stopwords") {
		opts.Stopwords = f.stopwords
	}
	if flags.Changed("title") {
		opts.Title = f.title
	}
	if flags.Changed("legend") {
		opts.Legend = f.legend
	}
	return opts
}

// compareCommand creates the batch comparison command.
func (c *CLI) compareCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "compare DOC1 DOC2",
		Short: "Render the word cloud of two documents",
		Long: `Compare loads both documents, applies the given actions in order and renders
the resulting word cloud.

Actions:
  common      remove standard common words (stopword list)
  infrequent  keep only the most frequent words (limit halves on every use)
  unshared    keep only words that occur in both documents`,
		Example: `  wordcloud compare moby.txt bartleby.txt
  wordcloud compare a.txt b.txt -a common -a infrequent -f svg,json -o out
  wordcloud compare a.txt b.txt --type dot -f svg,pdf --seed 42`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &flags, args[0], args[1])
			if err := opts.Validate(); err != nil {
				return err
			}
			return c.runCompare(cmd.Context(), opts, flags.output, flags.noCache)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func (c *CLI) runCompare(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, os.Stderr, "Comparing documents...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, o := range result.Outcomes {
		printOutcome(o)
	}
	if result.Stats.Words == 0 {
		printWarning("No words left to draw")
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	printSuccess("Compared %s and %s", StyleDoc1.Render(opts.Doc1), StyleDoc2.Render(opts.Doc2))
	printCounts(result.Stats.Words, result.Stats.Shared, result.Stats.OnlyDoc1, result.Stats.OnlyDoc2,
		result.Stats.CacheHits == len(opts.Formats))
	for _, p := range paths {
		printFile(p)
	}
	printDetail("seed %d", result.Session.Seed())
	return nil
}

// writeArtifacts writes one file per format and returns the paths written.
// A single format goes to output as given ("-" is stdout); several formats
// share output as base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	if len(formats) == 1 && output != "" && !isBasePath(output) {
		if output == "-" {
			_, err := os.Stdout.Write(artifacts[formats[0]])
			return nil, err
		}
		return []string{output}, writeFile(output, artifacts[formats[0]])
	}

	base := basePath(output)
	var paths []string
	for _, format := range formats {
		path := base + "." + format
		if err := writeFile(path, artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// basePath strips a known format extension from output. An empty output
// selects the default name.
func basePath(output string) string {
	if output == "" || output == "-" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// isBasePath reports whether output names no file extension.
func isBasePath(output string) bool {
	return output != "-" && filepath.Ext(output) == ""
}
