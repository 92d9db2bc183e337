// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docview CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docview/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docview CLI.
var rootCmd = &cobra.Command{
	Use:   "docview",
	Short: "Convert PDFs to sectioned Markdown and view the result",
	Long: `docview uploads a PDF to a conversion service, receives the document as
a sequence of Markdown sections, and presents it either rendered or as raw
Markdown text.

Use convert for a one-shot conversion written to a file, or serve for a
local browser UI with a rendered/raw toggle.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docview.yaml or ~/.config/docview/docview.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "conversion service base address (default "+types.DefaultEndpoint+")")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP client timeout (0 = no client-side limit)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log lifecycle events to stderr")

	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetDefault("endpoint", types.DefaultEndpoint)
	viper.SetDefault("user_agent", "docview/"+version)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docview")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docview"))
		}
	}

	viper.SetEnvPrefix("DOCVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// clientConfig reads the conversion service settings once from viper.
func clientConfig() types.ClientConfig {
	return types.ClientConfig{
		Endpoint: viper.GetString("endpoint"),
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
	}
}

// newLogger returns a text logger on w. Without --verbose only warnings
// and errors are written.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
