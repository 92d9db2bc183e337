// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docview/internal/convert"
	"github.com/pdiddy/docview/internal/present"
	"github.com/pdiddy/docview/internal/upload"
	"github.com/pdiddy/docview/internal/web"
	"github.com/pdiddy/docview/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a local browser UI for converting and viewing documents",
	Long: `Serve starts a local web UI: pick a PDF, a loading method, and a parsing
option, convert it, and switch the result between rendered Markdown and raw
text. The convert button is disabled while a conversion is in flight.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Int64("max-upload-bytes", 50<<20, "maximum accepted upload size")
	serveCmd.Flags().String("view", string(types.ViewRendered), "initial view mode: rendered or raw")

	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("serve.max_upload_bytes", serveCmd.Flags().Lookup("max-upload-bytes"))
	viper.BindPFlag("serve.view", serveCmd.Flags().Lookup("view"))

	rootCmd.AddCommand(serveCmd)
}

func serveConfig() (types.ServeConfig, error) {
	mode, err := types.ParseViewMode(viper.GetString("serve.view"))
	if err != nil {
		return types.ServeConfig{}, err
	}
	return types.ServeConfig{
		ClientConfig:   clientConfig(),
		Addr:           viper.GetString("serve.addr"),
		MaxUploadBytes: viper.GetInt64("serve.max_upload_bytes"),
		InitialView:    mode,
	}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := serveConfig()
	if err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch := convert.NewOrchestrator(convert.NewClient(nil, cfg.ClientConfig), convert.WithLogger(log))
	pres := present.New(present.WithMode(cfg.InitialView))
	srv := web.NewServer(ctx, upload.NewController(), orch, pres, log, cfg)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting docview", "addr", cfg.Addr, "endpoint", cfg.Endpoint)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
