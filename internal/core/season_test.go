package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonMunkholm/StatsBot/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2023, 3, d, 19, 0, 0, 0, time.UTC)
}

func result(id, member int64, first, last, team string, final int) league.ResultRow {
	return league.ResultRow{
		ResultRowID:    id,
		MemberID:       memberID(member),
		Firstname:      first,
		Lastname:       last,
		TeamName:       team,
		FinalPosition:  final,
		FinishPosition: float64(final),
		StartPosition:  float64(final),
		CompletedLaps:  10,
		CompletedPct:   1,
	}
}

func event(eventID int64, date time.Time, trackID int64, rows ...league.ResultRow) league.SeasonEventResult {
	return league.SeasonEventResult{
		EventID: eventID,
		EventResults: []league.EventResult{{
			EventID: eventID,
			Date:    date,
			TrackID: trackID,
			SessionResults: []league.SessionResult{
				{SessionID: eventID*10 + 1, SessionName: "Heat"},
				{SessionID: eventID*10 + 2, SessionName: "Race", ResultRows: rows},
			},
		}},
	}
}

func testCalculator() *Calculator {
	tracks := []league.Track{
		{TrackName: "Spa", Configs: []league.TrackConfig{{TrackID: 5, Length: 4}, {TrackID: 5, Length: 99}}},
	}
	members := []league.Member{{MemberID: 42, IRacingID: "111"}, {MemberID: 43, IRacingID: "222"}}
	return NewCalculator(tracks, members)
}

func rowByName(t *testing.T, rows []*StatRow, name string) *StatRow {
	t.Helper()
	for _, r := range rows {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no row named %q", name)
	return nil
}

// ---- EventStatistics Tests ----

func TestEventStatistics(t *testing.T) {
	calc := testCalculator()
	ev := event(1, day(1), 5, result(1, 42, "John", "Doe", "T1", 1))

	rows, err := calc.EventStatistics(ev.EventResults)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "111", rows[0].RacingID)
	assert.InDelta(t, 40.0, rows[0].DrivenKm, 1e-9)
	assert.Equal(t, int64(12), rows[0].FirstSessionID.Int64)
}

func TestEventStatistics_Empty(t *testing.T) {
	calc := testCalculator()

	rows, err := calc.EventStatistics(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = calc.EventStatistics([]league.EventResult{{EventID: 1, TrackID: 999}})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEventStatistics_UnknownTrack(t *testing.T) {
	calc := testCalculator()
	ev := event(1, day(1), 999, result(1, 42, "John", "Doe", "T1", 1))

	_, err := calc.EventStatistics(ev.EventResults)
	assert.True(t, errors.Is(err, ErrUnknownTrack), "error = %v", err)
}

// ---- SeasonStatistics Tests ----

func sampleSeason(finished bool) league.SeasonData {
	return league.SeasonData{
		Season: league.Season{ID: 1, Name: "S1", Finished: finished},
		// listed out of date order
		Results: []league.SeasonEventResult{
			event(2, day(8), 5,
				result(3, 43, "Jane", "Roe", "T3", 1),
				result(4, 42, "John", "Doe", "T2", 2),
			),
			event(1, day(1), 5,
				result(1, 42, "John", "Doe", "T1", 1),
				result(2, 43, "Jane", "Roe", "T3", 2),
			),
			{EventID: 3},
		},
		Standings: []league.Standings{
			{Name: "Overall", StandingRows: []league.StandingRow{{MemberID: 42, Position: 1}, {MemberID: 43, Position: 2}}},
			{Name: "Rookies", StandingRows: []league.StandingRow{{MemberID: 43, Position: 1}}},
		},
	}
}

func TestSeasonStatistics(t *testing.T) {
	calc := testCalculator()

	rows, err := calc.SeasonStatistics(context.Background(), sampleSeason(true))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	john := rowByName(t, rows, "John Doe")
	assert.Equal(t, 2, john.Races)
	assert.Equal(t, 1, john.Wins)
	assert.Equal(t, "T2", john.TeamName)
	assert.Equal(t, 1, john.FirstRaceFinalPosition)
	assert.Equal(t, 2, john.LastRaceFinalPosition)
	assert.Equal(t, int64(1), john.FirstRaceID.Int64)
	assert.Equal(t, int64(2), john.LastRaceID.Int64)
	assert.InDelta(t, 1.5, john.AvgFinalPosition, 1e-9)
	assert.Equal(t, 1, john.CurrentSeasonPosition)
	assert.Equal(t, 1, john.Titles)
	assert.True(t, john.IsCurrentChamp)
	assert.False(t, john.IsCurrentHeChamp)

	jane := rowByName(t, rows, "Jane Roe")
	assert.Equal(t, 2, jane.CurrentSeasonPosition)
	assert.Equal(t, 0, jane.Titles)
	assert.Equal(t, 1, jane.HeTitles)
	assert.True(t, jane.IsCurrentHeChamp)
	assert.False(t, jane.IsCurrentChamp)
}

func TestSeasonStatistics_Unfinished(t *testing.T) {
	calc := testCalculator()

	rows, err := calc.SeasonStatistics(context.Background(), sampleSeason(false))
	require.NoError(t, err)

	for _, r := range rows {
		assert.Zero(t, r.Titles, r.Name)
		assert.Zero(t, r.HeTitles, r.Name)
		assert.False(t, r.IsCurrentChamp, r.Name)
		assert.False(t, r.IsCurrentHeChamp, r.Name)
	}
	assert.Equal(t, 1, rowByName(t, rows, "John Doe").CurrentSeasonPosition)
}

func TestSeasonStatistics_NoStandings(t *testing.T) {
	calc := testCalculator()
	data := sampleSeason(true)
	data.Standings = nil

	rows, err := calc.SeasonStatistics(context.Background(), data)
	require.NoError(t, err)
	for _, r := range rows {
		assert.Zero(t, r.CurrentSeasonPosition)
		assert.Zero(t, r.Titles)
	}
}

func TestSeasonStatistics_Canceled(t *testing.T) {
	calc := testCalculator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := calc.SeasonStatistics(ctx, sampleSeason(true))
	assert.ErrorIs(t, err, context.Canceled)
}

// ---- FoldSeason Tests ----

func TestFoldSeason(t *testing.T) {
	tests := []struct {
		name      string
		finished  bool
		wantChamp bool
	}{
		{"finished season clears flags", true, false},
		{"running season keeps flags", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := []*StatRow{{Name: "Old Champ", Races: 10, IsCurrentChamp: true, IsCurrentHeChamp: true}}
			season := []*StatRow{{Name: "New Champ", Races: 1, IsCurrentChamp: tt.finished}}

			got, err := FoldSeason(total, season, tt.finished)
			require.NoError(t, err)
			require.Len(t, got, 2)

			assert.Equal(t, tt.wantChamp, got[0].IsCurrentChamp)
			assert.Equal(t, tt.wantChamp, got[0].IsCurrentHeChamp)
			assert.Equal(t, tt.finished, got[1].IsCurrentChamp)
		})
	}
}
