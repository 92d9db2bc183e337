package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docview/pkg/types"
)

var choicesCmd = &cobra.Command{
	Use:   "choices",
	Short: "List the loading methods and parsing options",
	RunE:  runChoices,
}

func init() {
	choicesCmd.Flags().Bool("json", false, "output choices as JSON")
	rootCmd.AddCommand(choicesCmd)
}

func runChoices(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]types.Choice{
			"loading_methods": types.LoadingMethods,
			"parsing_options": types.ParsingOptions,
		})
	}

	fmt.Fprintln(w, "Loading methods:")
	for _, c := range types.LoadingMethods {
		fmt.Fprintf(w, "  %-12s  %s\n", c.Value, c.Label)
	}
	fmt.Fprintln(w, "Parsing options:")
	for _, c := range types.ParsingOptions {
		fmt.Fprintf(w, "  %-12s  %s\n", c.Value, c.Label)
	}
	return nil
}
