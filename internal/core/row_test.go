package core

import (
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/StatsBot/internal/tablefmt"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatRowSchema_Names(t *testing.T) {
	names := StatRowSchema.Names()

	require.Len(t, names, 79)
	assert.Equal(t, []string{"Name", "IRacingId", "TeamName", "FairPlayRating", "DriverRank"}, names[:5])
	assert.Equal(t, "RacesCompletedPctVal", names[len(names)-1])
	assert.Contains(t, names, "StatisticSetId")
	assert.Contains(t, names, "FirstResultRowId")
	assert.NotContains(t, names, "RacingID")
}

func TestStatRowSchema_Registered(t *testing.T) {
	info, ok := tablefmt.Lookup(StatTableKey)
	require.True(t, ok)
	assert.Equal(t, StatRowSchema.Names(), info.Columns)
}

func TestStatRow_RoundTrip(t *testing.T) {
	date := time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC)
	rows := []*StatRow{
		{
			Name:                 "John Doe",
			RacingID:             "123456",
			TeamName:             "Skippy; Racing",
			FairPlayRating:       2.33,
			DriverRank:           RankPlatin,
			RankValue:            9,
			Titles:               1,
			IsCurrentChamp:       true,
			MemberID:             42,
			MemberName:           "John Doe",
			StartIRating:         1500,
			EndIRating:           1650,
			StartSRating:         2.5,
			EndSRating:           3.12,
			FirstRaceID:          pgtype.Int8{Int64: 77, Valid: true},
			FirstRaceDate:        pgtype.Date{Time: date, Valid: true},
			LastResultRowID:      pgtype.Int8{Int64: 9001, Valid: true},
			Races:                31,
			RacesCompleted:       30,
			Wins:                 6,
			DrivenKm:             1234.5,
			AvgFinishPosition:    4.25,
			BestFinishPosition:   1,
			WorstFinishPosition:  22,
			RacesCompletedPctVal: 0.97,
		},
		{Name: "Jane Roe"},
	}

	data, err := tablefmt.Marshal(StatRowSchema, rows, tablefmt.DefaultOptions())
	require.NoError(t, err)

	got, err := tablefmt.Unmarshal(data, StatRowSchema, tablefmt.DefaultOptions())
	require.NoError(t, err)

	want := []StatRow{*rows[0], *rows[1]}
	gotRows := []StatRow{*got[0], *got[1]}
	if diff := cmp.Diff(want, gotRows); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStatRow_OptionalColumnsEmpty(t *testing.T) {
	data, err := tablefmt.Marshal(StatRowSchema, []*StatRow{{Name: "A"}}, tablefmt.DefaultOptions())
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	fields := strings.Split(lines[1], ";")
	for i, name := range StatRowSchema.Names() {
		snapshot := strings.HasPrefix(name, "First") || strings.HasPrefix(name, "Last")
		if snapshot && (strings.HasSuffix(name, "Id") || strings.HasSuffix(name, "Date")) {
			assert.Empty(t, fields[i], name)
		}
	}
}

func TestStatRow_RacesCompletedPct(t *testing.T) {
	r := &StatRow{RacesCompletedPctVal: 0.875}
	assert.Equal(t, 88, r.RacesCompletedPct())

	r.SetRacesCompletedPct(45)
	assert.InDelta(t, 0.45, r.RacesCompletedPctVal, 1e-12)
}
