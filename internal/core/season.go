package core

import (
	"context"
	"fmt"
	"slices"

	"github.com/JonMunkholm/StatsBot/internal/league"
	"github.com/JonMunkholm/StatsBot/internal/logging"
)

// Calculator turns league results into statistic rows.
type Calculator struct {
	tracks map[int64]league.TrackConfig
	roster Roster
}

// NewCalculator indexes the track configurations and members of a league.
// When a track id is listed more than once the first configuration wins.
func NewCalculator(tracks []league.Track, members []league.Member) *Calculator {
	idx := make(map[int64]league.TrackConfig)
	for _, t := range tracks {
		for _, cfg := range t.Configs {
			if _, seen := idx[cfg.TrackID]; !seen {
				idx[cfg.TrackID] = cfg
			}
		}
	}
	return &Calculator{tracks: idx, roster: NewRoster(members)}
}

// EventStatistics returns one row per result row of the combined session of
// an event. The overall scoring is the first event result and the combined
// session is its last session result. An event without results or sessions
// yields no rows.
func (c *Calculator) EventStatistics(results []league.EventResult) ([]*StatRow, error) {
	if len(results) == 0 || len(results[0].SessionResults) == 0 {
		return nil, nil
	}

	overall := results[0]
	combined := overall.SessionResults[len(overall.SessionResults)-1]
	track, ok := c.tracks[overall.TrackID]
	if !ok {
		return nil, fmt.Errorf("event %d: track %d: %w", overall.EventID, overall.TrackID, ErrUnknownTrack)
	}

	ev := NewEventContext(overall, combined, track)
	rows := make([]*StatRow, 0, len(combined.ResultRows))
	for _, r := range combined.ResultRows {
		rows = append(rows, BuildResultStats(r, ev, c.roster))
	}
	return rows, nil
}

// SeasonStatistics folds the events of a season in date order and applies the
// season standings. Titles and champion flags are only assigned for finished
// seasons.
func (c *Calculator) SeasonStatistics(ctx context.Context, data league.SeasonData) ([]*StatRow, error) {
	events := slices.Clone(data.Results)
	slices.SortStableFunc(events, func(a, b league.SeasonEventResult) int {
		return a.FirstDate().Compare(b.FirstDate())
	})

	logger := logging.WithFields(ctx, "season_id", data.Season.ID)

	var rows []*StatRow
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		eventRows, err := c.EventStatistics(event.EventResults)
		if err != nil {
			return nil, fmt.Errorf("season %d: %w", data.Season.ID, err)
		}
		rows, err = Merge(rows, eventRows)
		if err != nil {
			return nil, fmt.Errorf("season %d event %d: %w", data.Season.ID, event.EventID, err)
		}
		logger.Debug("event folded", "event_id", event.EventID, "drivers", len(eventRows))
	}

	applyStandings(rows, data.Standings, data.Season.Finished)
	return rows, nil
}

// applyStandings sets season positions from the overall standings (the first
// entry) and, for finished seasons, titles from the overall and secondary
// class (second entry) standings.
func applyStandings(rows []*StatRow, standings []league.Standings, finished bool) {
	var overall, secondary league.Standings
	if len(standings) > 0 {
		overall = standings[0]
	}
	if len(standings) > 1 {
		secondary = standings[1]
	}

	for _, row := range rows {
		row.CurrentSeasonPosition = positionOf(overall, row.MemberID)
		if !finished {
			continue
		}

		row.IsCurrentChamp = row.CurrentSeasonPosition == 1
		if row.IsCurrentChamp {
			row.Titles = 1
		}
		row.IsCurrentHeChamp = positionOf(secondary, row.MemberID) == 1
		if row.IsCurrentHeChamp {
			row.HeTitles = 1
		}
	}
}

func positionOf(s league.Standings, memberID int64) int {
	if memberID == 0 {
		return 0
	}
	return s.PositionOf(memberID)
}

// FoldSeason merges the rows of one season into the running totals. Folding a
// finished season hands the champion flags over: every existing flag is
// cleared before the new season's flags are merged in.
func FoldSeason(total, season []*StatRow, finished bool) ([]*StatRow, error) {
	if finished {
		for _, row := range total {
			row.IsCurrentChamp = false
			row.IsCurrentHeChamp = false
		}
	}
	return Merge(total, season)
}
