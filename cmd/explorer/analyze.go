package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CalleFreme/ai-methods-explorer/internal/workbench"
)

var analyzeText string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <method-id>",
	Short: "Run one analysis method on a text",
	Long: `Run one analysis method on a text.

The text comes from --text or, when the flag is absent, from stdin. Inputs
beyond the 512-word limit are truncated before submission and a note is
printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Text to analyze (stdin is read when omitted)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	text := analyzeText
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("no text to analyze; pass --text or pipe it on stdin")
	}

	loader := workbench.NewLoader(baseURL(), httpClient)
	resolver := workbench.NewResolver(loader, nil)
	method, err := resolver.Resolve(ctx, args[0])
	if err != nil {
		if errors.Is(err, workbench.ErrMethodNotFound) {
			return fmt.Errorf("no method named %q; run \"explorer methods\" to see what is available", args[0])
		}
		return errors.New(workbench.CatalogLoadMessage)
	}

	if overflow := workbench.Overflow(text); overflow > 0 {
		fmt.Fprintf(os.Stderr, "Note: input is %d words over the %d-word limit; only the first %d are analyzed.\n",
			overflow, workbench.WordLimit, workbench.WordLimit)
	}

	session := workbench.NewSession(method, baseURL(), httpClient)
	defer session.Close()
	session.SetInput(text)
	if err := session.Submit(ctx); err != nil {
		return err
	}

	printView(workbench.Render(session.Result(), method.ID))
	return nil
}

// printView writes a rendered result to stdout.
func printView(view *workbench.View) {
	if view == nil {
		return
	}

	switch view.Kind {
	case workbench.ResultSummary:
		fmt.Printf("%s\n\n%s\n", view.Heading, view.Summary)

	case workbench.ResultSentiment:
		const width = 30
		filled := int(math.Round(view.BarPercent / 100 * width))
		bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
		tone := "negative"
		if view.Positive {
			tone = "positive"
		}
		fmt.Printf("%s (%s, %s)\n[%s]\n", view.Label, view.Confidence, tone, bar)

	default:
		fmt.Println(view.Raw)
	}
}
