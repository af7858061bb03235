package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/glucoscope/glucoscope/internal/objstore"
	"github.com/glucoscope/glucoscope/internal/store"
	"github.com/glucoscope/glucoscope/pkg/config"
	"github.com/glucoscope/glucoscope/pkg/surface"
)

type historyOpts struct {
	server    string
	storeDir  string
	limit     int
	outputFmt string
}

func newHistoryCmd() *cobra.Command {
	var opts historyOpts

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past assessments, newest first",
		Long: `Lists stored assessments from a glucoscoped server, or from a local record
directory written by "score --store". The server defaults to client.server in
.glucoscope/config.yaml, then http://localhost:8080.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.server, "server", "", "glucoscoped base URL")
	cmd.Flags().StringVar(&opts.storeDir, "store", "", "Read from this local record directory instead of a server")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Show at most this many assessments (0 for all)")
	cmd.Flags().StringVar(&opts.outputFmt, "output", "text", "Output format: text, json or markdown")

	return cmd
}

func runHistory(ctx context.Context, w io.Writer, opts historyOpts) error {
	renderer, ok := surface.ForFormat(opts.outputFmt)
	if !ok {
		return fmt.Errorf("unknown output format %q", opts.outputFmt)
	}

	var (
		entries []surface.Entry
		err     error
	)
	if opts.storeDir != "" {
		entries, err = localHistory(ctx, opts.storeDir)
	} else {
		entries, err = remoteHistory(ctx, resolveServer(opts.server))
	}
	if err != nil {
		return err
	}

	if opts.limit > 0 && len(entries) > opts.limit {
		entries = entries[:opts.limit]
	}
	return renderer.RenderHistory(w, entries)
}

// resolveServer picks the server URL from the flag, the project config file
// or the built-in default, in that order.
func resolveServer(flag string) string {
	var fromConfig string
	if wd, err := os.Getwd(); err == nil {
		if path := config.FindConfigFile(wd); path != "" {
			if cfg, err := config.Load(path); err == nil {
				fromConfig = cfg.Client.Server
			}
		}
	}
	return strings.TrimRight(firstNonEmpty(flag, fromConfig, config.DefaultConfig().Client.Server), "/")
}

func localHistory(ctx context.Context, dir string) ([]surface.Entry, error) {
	recs, err := store.NewBlob(objstore.NewLocal(dir)).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	entries := make([]surface.Entry, len(recs))
	for i, rec := range recs {
		entries[i] = surface.Entry{ID: rec.ID, CreatedAt: rec.CreatedAt, Assessment: rec.Assessment}
	}
	return entries, nil
}

func remoteHistory(ctx context.Context, server string) ([]surface.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server+"/api/predictions", nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching history from %s: %w", server, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetching history from %s: %s: %s", server, resp.Status, strings.TrimSpace(string(body)))
	}

	var entries []surface.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	return entries, nil
}
