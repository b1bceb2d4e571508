package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/session"
)

// statsCommand creates the command printing vocabulary statistics.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		flags  renderFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "stats DOC1 DOC2",
		Short: "Print word counts and the most frequent words of two documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &flags, args[0], args[1])
			actions, err := session.ParseActions(opts.Actions)
			if err != nil {
				return err
			}
			s, err := c.loadSession(cmd.Context(), args[0], args[1], opts.SessionOptions(), true)
			if err != nil {
				return err
			}
			for _, a := range actions {
				o, err := s.Apply(cmd.Context(), a)
				if err != nil {
					return err
				}
				if !asJSON {
					printOutcome(o)
				}
			}

			stats := s.Snapshot()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			printStats(stats)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the statistics as JSON")
	return cmd
}

func printStats(stats session.Stats) {
	fmt.Fprintln(out, StyleTitle.Render("Vocabulary"))
	fmt.Fprintln(out, countsTable(stats))
	if len(stats.Top1)+len(stats.Top2) > 0 {
		fmt.Fprintln(out, StyleTitle.Render("Most frequent words"))
		fmt.Fprintln(out, topWordsTable(stats))
	}
	printKeyValue("next limit", StyleNumber.Render(fmt.Sprint(stats.InfrequentLimit)))
}

// loadSession loads both documents. With strict set, a document that
// cannot be read is an error; otherwise it is reported and the partial
// session returned.
func (c *CLI) loadSession(ctx context.Context, doc1, doc2 string, opts session.Options, strict bool) (*session.Session, error) {
	s, err := session.Load(ctx, doc1, doc2, opts)
	if err == nil {
		return s, nil
	}
	if strict || !errors.Is(err, errors.ErrCodeSourceUnreadable) || stderrors.Is(err, context.Canceled) {
		return nil, err
	}
	printWarning("%s", errors.UserMessage(err))
	return s, nil
}
