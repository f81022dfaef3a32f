package service

import (
	"context"

	"cdr.dev/slog/v3"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

// DefaultStandupMarker identifies virtual-standup channels by name.
const DefaultStandupMarker = "virtual-standup"

// AnalyzeOptions tunes the group rollup.
type AnalyzeOptions struct {
	// StandupMarker is matched against channel names; matching channels are
	// counted as standups in group rollups. Empty means DefaultStandupMarker.
	StandupMarker string
}

// Analyzer counts the messages each user posted in each channel.
type Analyzer struct {
	collector *Collector
	logger    slog.Logger
	opts      AnalyzeOptions
}

// NewAnalyzer creates an Analyzer on top of a Collector.
func NewAnalyzer(collector *Collector, logger slog.Logger, opts AnalyzeOptions) *Analyzer {
	if opts.StandupMarker == "" {
		opts.StandupMarker = DefaultStandupMarker
	}
	return &Analyzer{
		collector: collector,
		logger:    logger.Named("analyzer"),
		opts:      opts,
	}
}

// AnalysisResult is the outcome of a workspace analysis.
type AnalysisResult struct {
	Tally *domain.Tally
	Users map[string]*domain.User
	// Skipped lists channels whose history could not be fetched.
	Skipped []*domain.Channel
	// Groups holds one rollup per user group when groups were collected.
	Groups []*domain.GroupTally
}

// AnalyzeWorkspace fetches the workspace and tallies it. Aggregation starts
// only after every fetch has completed.
func (a *Analyzer) AnalyzeWorkspace(ctx context.Context, dateRange *domain.DateRange) (*AnalysisResult, error) {
	snapshot, err := a.collector.Collect(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	result := a.aggregate(snapshot)
	a.logger.Info(ctx, "tally complete",
		slog.F("users", len(result.Users)),
		slog.F("channels", len(result.Tally.Channels)),
		slog.F("skipped", len(result.Skipped)))
	return result, nil
}

// GroupReport renders the per-group rollups.
func (r *AnalysisResult) GroupReport() *GroupReport {
	return &GroupReport{
		Groups: r.Groups,
		Users:  r.Users,
	}
}

// Report renders the result with authors in the given order.
func (r *AnalysisResult) Report(order domain.SortOrder) *Report {
	return &Report{
		Tally: r.Tally,
		Users: r.Users,
		Order: order,
	}
}

// aggregate tallies a snapshot. Channels with a failed fetch are left out.
func (a *Analyzer) aggregate(snapshot *Snapshot) *AnalysisResult {
	result := &AnalysisResult{
		Tally: &domain.Tally{Channels: make([]*domain.ChannelTally, 0, len(snapshot.Histories))},
		Users: snapshot.Users,
	}

	for _, history := range snapshot.Histories {
		if history.Err != nil {
			result.Skipped = append(result.Skipped, history.Channel)
			continue
		}
		result.Tally.Channels = append(result.Tally.Channels, countAuthors(history.Channel, history.Messages))
	}
	if snapshot.Groups != nil {
		result.Groups = rollupGroups(snapshot, a.opts.StandupMarker)
	}
	return result
}

// countAuthors counts messages per author in order of first appearance.
// Messages without an author go to the empty-ID bucket.
func countAuthors(channel *domain.Channel, messages []*domain.Message) *domain.ChannelTally {
	tally := &domain.ChannelTally{Channel: channel}
	index := make(map[string]int)

	for _, msg := range messages {
		i, ok := index[msg.UserID]
		if !ok {
			i = len(tally.Authors)
			index[msg.UserID] = i
			tally.Authors = append(tally.Authors, domain.AuthorCount{UserID: msg.UserID})
		}
		tally.Authors[i].Count++
	}
	return tally
}
