package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/sheet-scorer/internal/engine"
	"github.com/jonathan/sheet-scorer/internal/report"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [url]",
	Short: "Score a response sheet",
	Long:  "Fetch a response sheet from a URL (or read a saved copy with --file), resolve its administration, load the answer key and print the score report.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScore,
}

var (
	scoreFile    string
	scoreJSON    bool
	scoreDetails bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "Path to a saved response sheet HTML file")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the structured report as JSON")
	scoreCmd.Flags().BoolVar(&scoreDetails, "details", false, "Print the per-question breakdown")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && scoreFile == "" {
		return fmt.Errorf("either a URL argument or --file must be provided")
	}
	if len(args) > 0 && scoreFile != "" {
		return fmt.Errorf("a URL argument and --file are mutually exclusive; provide only one")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var result *engine.Result
	if scoreFile != "" {
		html, readErr := os.ReadFile(scoreFile)
		if readErr != nil {
			return fmt.Errorf("failed to read response sheet file: %w", readErr)
		}
		result, err = a.engine.ScoreDocument(ctx, html)
	} else {
		result, err = a.engine.ScoreResponseSheet(ctx, args[0])
	}
	if err != nil {
		return fmt.Errorf("%s (%w)", engine.UserMessage(err), err)
	}

	out := cmd.OutOrStdout()
	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(out, result.Text())
	if scoreDetails {
		fmt.Fprintln(out)
		report.NewPrinter(out).PrintQuestions(result.Report)
	}
	return nil
}
