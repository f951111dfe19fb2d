package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/sheet-scorer/internal/engine"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Print the administration key of a response sheet",
	Long:  "Read only the header of a response sheet and print its canonical administration key (for example 29s1), and whether an answer key is registered for it.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResolve,
}

var resolveFile string

func init() {
	resolveCmd.Flags().StringVarP(&resolveFile, "file", "f", "", "Path to a saved response sheet HTML file")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (resolveFile == "") {
		return fmt.Errorf("provide exactly one of a URL argument or --file")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	var html []byte
	if resolveFile != "" {
		html, err = os.ReadFile(resolveFile)
		if err != nil {
			return fmt.Errorf("failed to read response sheet file: %w", err)
		}
	} else {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		html, err = a.engine.FetchDocument(ctx, args[0])
		if err != nil {
			return fmt.Errorf("%s (%w)", engine.UserMessage(err), err)
		}
	}

	key, err := a.engine.ResolveDocument(html)
	if err != nil {
		return fmt.Errorf("%s (%w)", engine.UserMessage(err), err)
	}

	_, registered := a.registry.Lookup(key.String())
	fmt.Fprintf(cmd.OutOrStdout(), "%s\tshift=%s\tregistered=%t\n", key, key.Shift, registered)
	return nil
}
