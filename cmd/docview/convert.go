// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docview/internal/convert"
	"github.com/pdiddy/docview/internal/present"
	"github.com/pdiddy/docview/internal/upload"
	"github.com/pdiddy/docview/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.pdf>",
	Short: "Convert a PDF to sectioned Markdown",
	Long: `Convert uploads one PDF to the conversion service and writes the parsed
document. The default html format is a standalone page in the selected view
mode (rendered Markdown or raw text); json and yaml dump the parsed document;
markdown concatenates the content sections.

A failed request is reported once and not retried.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("loading-method", string(types.LoadingMineru), "loading tool used by the service")
	convertCmd.Flags().String("parsing-option", string(types.ParsingOne), "parsing option: one or by_headers")
	convertCmd.Flags().String("view", string(types.ViewRendered), "view mode for html output: rendered or raw")
	convertCmd.Flags().String("format", "html", "output format: html, markdown, json, or yaml")
	convertCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	loading, _ := cmd.Flags().GetString("loading-method")
	parsing, _ := cmd.Flags().GetString("parsing-option")
	viewFlag, _ := cmd.Flags().GetString("view")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	mode, err := types.ParseViewMode(viewFlag)
	if err != nil {
		return err
	}
	switch format {
	case "html", "markdown", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q: use html, markdown, json, or yaml", format)
	}

	ctl := upload.NewController()
	if err := ctl.SelectPath(args[0]); err != nil {
		return err
	}
	ctl.SetLoadingMethod(loading)
	ctl.SetParsingOption(parsing)
	sub, err := ctl.Submission()
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	cfg := clientConfig()
	client := convert.NewClient(nil, cfg)
	orch := convert.NewOrchestrator(client, convert.WithLogger(newLogger(stderr)))
	pres := present.New(present.WithMode(mode))

	unsubscribe := orch.Subscribe(func(s convert.Snapshot) {
		pres.Show(s.Document)
		if s.Notice != "" {
			fmt.Fprintln(stderr, s.Notice)
		}
	})
	defer unsubscribe()

	fmt.Fprintf(stderr, "converting: %s (%s, %s) via %s\n", sub.File.Name, sub.LoadingMethod, sub.ParsingOption, client.URL())
	done, err := orch.Submit(cmd.Context(), sub)
	if err != nil {
		return err
	}
	<-done

	snap := orch.Snapshot()
	if snap.State.Status != types.StatusSucceeded {
		return errors.New(snap.State.Message)
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if err := writeResult(w, format, ctl.DisplayName(), pres); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(stderr, "wrote: %s (%d sections)\n", output, len(snap.Document.Content))
	}
	return nil
}

// writeResult writes the presenter's current document in format.
func writeResult(w io.Writer, format, title string, pres *present.Presenter) error {
	doc := pres.Document()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "markdown":
		_, err := io.WriteString(w, joinSections(doc))
		return err
	default:
		return present.Page(w, title, pres.View())
	}
}

// joinSections concatenates the content of every item in order.
func joinSections(doc *types.ParsedDocument) string {
	parts := make([]string, 0, len(doc.Content))
	for _, item := range doc.Content {
		parts = append(parts, strings.TrimRight(item.Content, "\n"))
	}
	return strings.Join(parts, "\n\n") + "\n"
}
