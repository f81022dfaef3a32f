package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"cdr.dev/slog/v3"
	"cdr.dev/slog/v3/sloggers/sloghuman"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"github.com/spf13/pflag"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/config"
	slackinfra "github.com/rit-swen-261-courseassistance/team-tracker/internal/infrastructure/slack"
	"github.com/rit-swen-261-courseassistance/team-tracker/internal/service"
)

const (
	exitOK    = 0
	exitFetch = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run counts messages per user and channel and prints the tally to stdout.
// Logs and errors go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	logger := slog.Make(sloghuman.Sink(stderr)).Leveled(slog.LevelInfo)
	if cfg.Verbose {
		logger = logger.Leveled(slog.LevelDebug)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var opts []slack.Option
	if cfg.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(cfg.APIURL))
	}
	client := slack.New(cfg.Token, opts...)

	collector := service.NewCollector(
		slackinfra.NewChannelRepository(client, logger, cfg.Types),
		slackinfra.NewMessageRepository(client, logger),
		slackinfra.NewUserRepository(client, logger),
		logger,
		service.CollectOptions{
			Concurrency: cfg.Concurrency,
			Channels:    cfg.Channels,
			SkipShared:  cfg.SkipShared,
		},
	)
	if cfg.ByGroup {
		collector.WithUserGroups(slackinfra.NewUserGroupRepository(client, logger))
	}
	analyzer := service.NewAnalyzer(collector, logger, service.AnalyzeOptions{
		StandupMarker: cfg.StandupMarker,
	})

	logger.Debug(ctx, "starting tally",
		slog.F("types", cfg.Types),
		slog.F("window", cfg.DateRange != nil),
		slog.F("concurrency", cfg.Concurrency))

	result, err := analyzer.AnalyzeWorkspace(ctx, cfg.DateRange)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFetch
	}

	var report io.WriterTo = result.Report(cfg.Sort)
	if cfg.ByGroup {
		report = result.GroupReport()
	}
	if _, err := report.WriteTo(stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFetch
	}
	return exitOK
}
