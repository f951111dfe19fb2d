package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "List administrations with a registered answer key",
	RunE:  runRegistry,
}

func init() {
	rootCmd.AddCommand(registryCmd)
}

func runRegistry(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	out := cmd.OutOrStdout()
	for _, key := range a.registry.Keys() {
		u, _ := a.registry.Lookup(key)
		fmt.Fprintf(out, "%s\t%s\n", key, u)
	}
	return nil
}
