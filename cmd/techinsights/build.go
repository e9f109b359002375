package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abelbrown/techinsights/internal/fetch"
	"github.com/abelbrown/techinsights/internal/httpclient"
	"github.com/abelbrown/techinsights/internal/render"
	"github.com/abelbrown/techinsights/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch feeds and write the site",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := httpclient.New(httpclient.Options{
		Timeout:      cfg.FetchTimeout(),
		HostInterval: cfg.HostInterval(),
		Burst:        cfg.Fetch.Burst,
		UserAgent:    cfg.Fetch.UserAgent,
	})
	fetcher := fetch.NewRSSFetcher(client, fetch.Options{
		DescriptionLength: cfg.Limits.DescriptionLength,
		Freshness:         cfg.FreshnessWindow(),
	})
	templates, err := render.NewTemplates()
	if err != nil {
		return err
	}

	start := time.Now()
	report, err := site.NewBuilder(cfg, fetcher, templates).Build(ctx, start)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	printReport(cmd.OutOrStdout(), report, time.Since(start))
	return nil
}
