package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

// TokenEnv is read when --token is not given.
const TokenEnv = "SLACK_TOKEN"

// ErrUsage marks errors caused by invalid command-line input.
var ErrUsage = errors.New("invalid usage")

// dateLayouts are tried in order when --format is not set. ISO forms without
// a zone are UTC. The US form is local time.
var dateLayouts = []struct {
	layout string
	local  bool
}{
	{layout: time.RFC3339Nano},
	{layout: "2006-01-02T15:04:05"},
	{layout: "2006-01-02 15:04:05"},
	{layout: "2006-01-02"},
	{layout: "01/02/2006", local: true},
}

// Config holds everything a tally run needs.
type Config struct {
	Token       string
	DateRange   *domain.DateRange
	Types       []string
	Channels    []string
	SkipShared  bool
	Sort        domain.SortOrder
	Concurrency int
	Timeout     time.Duration
	Verbose     bool

	// ByGroup prints per-user-group rollups instead of the channel tally.
	ByGroup       bool
	StandupMarker string

	// APIURL overrides the Slack Web API endpoint.
	APIURL string
}

// Load parses args, falling back to the environment and an optional .env file
// for the token. Usage errors print the flag defaults to output and wrap
// ErrUsage; -h returns pflag.ErrHelp.
func Load(args []string, output io.Writer) (*Config, error) {
	fs := pflag.NewFlagSet("team-tracker", pflag.ContinueOnError)
	fs.SetOutput(output)
	// Load prints usage itself.
	fs.Usage = func() {}

	var (
		cfg                Config
		from, to, layout   string
		sortOrder, envFile string
	)
	fs.StringVarP(&cfg.Token, "token", "t", "", "The access token used to retrieve messages (default $"+TokenEnv+")")
	fs.StringVar(&from, "from", "", "The earliest message to receive")
	fs.StringVar(&to, "to", "", "The latest message to receive")
	fs.StringVar(&layout, "format", "", "Go time layout of --from and --to (default: ISO 8601 or mm/dd/yyyy)")
	fs.StringSliceVar(&cfg.Types, "types", []string{"public_channel"}, "Conversation types to count")
	fs.StringArrayVar(&cfg.Channels, "channel", nil, "Only count this channel name (repeatable)")
	fs.BoolVar(&cfg.SkipShared, "skip-shared", false, "Skip enterprise-wide shared channels")
	fs.StringVar(&sortOrder, "sort", string(domain.SortNone), "Author order within a channel: none, name or count")
	fs.IntVar(&cfg.Concurrency, "concurrency", 0, "Maximum concurrent history requests (0 = one per channel)")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "Abort the run after this long (0 = no timeout)")
	fs.StringVar(&envFile, "env-file", ".env", "Environment file to read "+TokenEnv+" from")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	fs.BoolVar(&cfg.ByGroup, "by-group", false, "Report totals per user group, split into regular and standup channels")
	fs.StringVar(&cfg.StandupMarker, "standup-marker", "virtual-standup", "Channel name fragment that marks standup channels (with --by-group)")
	fs.StringVar(&cfg.APIURL, "api-url", "", "Slack Web API base URL")
	_ = fs.MarkHidden("api-url")

	usageErr := func(err error) error {
		fs.PrintDefaults()
		return errors.Wrap(ErrUsage, err.Error())
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fs.PrintDefaults()
			return nil, err
		}
		return nil, usageErr(err)
	}

	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv(TokenEnv)
	}
	if cfg.Token == "" {
		return nil, usageErr(errors.Errorf("--token is required (or set %s)", TokenEnv))
	}

	dateRange, err := parseDateRange(from, to, layout)
	if err != nil {
		return nil, usageErr(err)
	}
	cfg.DateRange = dateRange

	cfg.Sort, err = domain.ParseSortOrder(sortOrder)
	if err != nil {
		return nil, usageErr(err)
	}
	if cfg.Concurrency < 0 {
		return nil, usageErr(errors.New("--concurrency must not be negative"))
	}
	if cfg.Timeout < 0 {
		return nil, usageErr(errors.New("--timeout must not be negative"))
	}

	return &cfg, nil
}

// loadEnvFile reads path into the environment. A missing file is not an
// error; variables that are already set are left alone.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}

func parseDateRange(from, to, layout string) (*domain.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}

	dateRange := &domain.DateRange{}
	var err error
	if from != "" {
		if dateRange.Start, err = ParseTime(from, layout); err != nil {
			return nil, errors.Wrap(err, "--from")
		}
	}
	if to != "" {
		if dateRange.End, err = ParseTime(to, layout); err != nil {
			return nil, errors.Wrap(err, "--to")
		}
	}
	if !dateRange.IsValid() {
		return nil, errors.Errorf("--from %q is after --to %q", from, to)
	}
	return dateRange, nil
}

// ParseTime parses value with layout, or with the first matching default
// layout when layout is empty. A custom layout without a zone is read in
// local time.
func ParseTime(value, layout string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if layout != "" {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			return time.Time{}, errors.Wrapf(err, "parse %q", value)
		}
		return t, nil
	}

	for _, l := range dateLayouts {
		loc := time.UTC
		if l.local {
			loc = time.Local
		}
		if t, err := time.ParseInLocation(l.layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognised date/time %q", value)
}
