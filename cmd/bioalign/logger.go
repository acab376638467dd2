package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mandalnilabja/bioalign/internal/config"
	"github.com/mandalnilabja/bioalign/internal/landing"
	"github.com/mandalnilabja/bioalign/internal/version"
)

// setupLogger builds the process logger from log_level and log_format.
func setupLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("app", "bioalign"), nil
}

func printStartupBanner(w io.Writer, cfg *config.Config, page landing.Page) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "🧬 bioalign %s - %s\n", version.Version, page.Title)
	fmt.Fprintln(w, "════════════════════════════════════════════════")
	fmt.Fprintf(w, "Landing page: %s/\n", displayURL(cfg.ServerPort))
	for _, l := range page.Links {
		fmt.Fprintf(w, "  %-18s → %s\n", l.Label, l.URL)
	}
	if cfg.EnableAdmin {
		fmt.Fprintf(w, "Admin API:    %s/api/admin/\n", displayURL(cfg.ServerPort))
		fmt.Fprintf(w, "Data:         %s\n", cfg.DBPath)
	}
	fmt.Fprintln(w, "════════════════════════════════════════════════")
	fmt.Fprintf(w, "\n")
}

// displayURL turns a listen address into a browsable URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
