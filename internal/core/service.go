package core

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/JonMunkholm/StatsBot/internal/league"
	"github.com/JonMunkholm/StatsBot/internal/logging"
	"github.com/JonMunkholm/StatsBot/internal/tablefmt"
)

// RunTimeout is the maximum duration of a statistics run.
var RunTimeout = 10 * time.Minute

// Options configures a Service.
type Options struct {
	// SkipSeasons drops the first league seasons, usually because the legacy
	// table already covers them.
	SkipSeasons int

	// KeepImportMemberIDs keeps the member ids of imported legacy rows.
	// By default they are cleared since legacy ids come from another id
	// space.
	KeepImportMemberIDs bool

	Table tablefmt.Options
}

// Service computes the all-time statistics of a league.
type Service struct {
	src  league.Source
	opts Options
}

// NewService creates a new Service reading league data from src.
func NewService(src league.Source, opts Options) *Service {
	if opts.Table.Delimiter == 0 {
		opts.Table = tablefmt.DefaultOptions()
	}
	return &Service{src: src, opts: opts}
}

// Run folds every season of the league into legacy, oldest season first, and
// classifies the result. legacy may be nil; its rows are updated in place.
func (s *Service) Run(ctx context.Context, leagueName string, legacy []*StatRow) ([]*StatRow, error) {
	ctx, cancel := context.WithTimeout(logging.WithRunID(ctx), RunTimeout)
	defer cancel()

	logger := logging.WithFields(ctx, "league", leagueName)
	start := time.Now()

	lg, err := s.src.League(ctx, leagueName)
	if err != nil {
		return nil, fmt.Errorf("load league: %w", err)
	}
	tracks, err := s.src.Tracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tracks: %w", err)
	}
	members, err := s.src.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	ids := lg.SeasonIDs
	if s.opts.SkipSeasons > 0 {
		ids = ids[min(s.opts.SkipSeasons, len(ids)):]
	}
	seasons, err := s.src.Seasons(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load seasons: %w", err)
	}
	slices.SortStableFunc(seasons, func(a, b league.SeasonData) int {
		return a.Season.EndTime().Compare(b.Season.EndTime())
	})

	logger.Info("run started",
		"seasons", len(seasons),
		"skipped", len(lg.SeasonIDs)-len(ids),
		"legacy_rows", len(legacy),
	)

	calc := NewCalculator(tracks, members)
	total := legacy
	for _, data := range seasons {
		if data.Results == nil {
			logger.Debug("season has no results", "season_id", data.Season.ID)
			continue
		}

		seasonRows, err := calc.SeasonStatistics(ctx, data)
		if err != nil {
			return nil, err
		}
		total, err = FoldSeason(total, seasonRows, data.Season.Finished)
		if err != nil {
			return nil, fmt.Errorf("fold season %d: %w", data.Season.ID, err)
		}

		logger.Info("season folded",
			"season_id", data.Season.ID,
			"season", data.Season.Name,
			"finished", data.Season.Finished,
			"drivers", len(seasonRows),
		)
	}

	Classify(total)

	logger.Info("run completed",
		"drivers", len(total),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return total, nil
}

// Import reads a legacy statistics table.
func (s *Service) Import(r io.Reader) ([]*StatRow, error) {
	rows, err := tablefmt.Read(r, StatRowSchema, s.opts.Table)
	if err != nil {
		return nil, fmt.Errorf("import statistics: %w", err)
	}
	if !s.opts.KeepImportMemberIDs {
		for _, row := range rows {
			row.MemberID = 0
		}
	}
	return rows, nil
}

// Export writes rows as a statistics table.
func (s *Service) Export(w io.Writer, rows []*StatRow) error {
	if err := tablefmt.Write(w, StatRowSchema, rows, s.opts.Table); err != nil {
		return fmt.Errorf("export statistics: %w", err)
	}
	return nil
}
