// Package cmd — serve command.
// Runs the HTTP conversion service until interrupted.
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/wikiplain/config"
	"github.com/gaurav-prasanna/wikiplain/core/fetch"
	"github.com/gaurav-prasanna/wikiplain/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve wikitext conversion over HTTP",
	Long: `Serve exposes the converter as a JSON API:

  GET  /health
  POST /api/convert?strip_references=true&encoded=false   (body: wikitext)
  GET  /api/article?url=https://en.wikipedia.org/wiki/Ada_Lovelace`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8090", "Listen address")
	serveCmd.Flags().Var(&flagLinkText, "link-text", "Piped link text to keep: target or display")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	applyOverrides(cmd.Flags(), &cfg)
	if cmd.Flags().Changed("addr") {
		cfg.ServeAddr = flagAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := newLogger()

	srv := server.NewServer(fetch.New(cfg.FetchOptions()), log, cfg)
	httpServer := &http.Server{
		Addr:         cfg.ServeAddr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting wikiplain", "addr", cfg.ServeAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
