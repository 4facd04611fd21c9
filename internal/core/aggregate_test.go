package core

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Weighted Average Tests ----

func TestMerge_WeightedAverage(t *testing.T) {
	base := []*StatRow{{Name: "John Doe", Races: 3, AvgFinishPosition: 10}}
	incoming := []*StatRow{{Name: "John Doe", Races: 1, AvgFinishPosition: 2}}

	got, err := Merge(base, incoming)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.InDelta(t, 8.0, got[0].AvgFinishPosition, 1e-9)
	assert.Equal(t, 4, got[0].Races)
}

func TestMerge_ZeroWeight(t *testing.T) {
	base := []*StatRow{{Name: "A", AvgFinishPosition: 5, AvgIncidentsPerKm: 1, AvgIncidentsPerLap: 2}}
	incoming := []*StatRow{{Name: "A", AvgFinishPosition: 7, AvgIncidentsPerKm: 3, AvgIncidentsPerLap: 4}}

	got, err := Merge(base, incoming)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 0.0, got[0].AvgFinishPosition)
	assert.Equal(t, 0.0, got[0].AvgIncidentsPerKm)
	assert.Equal(t, 0.0, got[0].AvgIncidentsPerLap)
}

func TestMerge_DistanceAndLapWeights(t *testing.T) {
	base := []*StatRow{{Name: "A", Races: 1, DrivenKm: 100, CompletedLaps: 10, AvgIncidentsPerKm: 0.1, AvgIncidentsPerLap: 1}}
	incoming := []*StatRow{{Name: "A", Races: 1, DrivenKm: 300, CompletedLaps: 30, AvgIncidentsPerKm: 0.3, AvgIncidentsPerLap: 3}}

	got, err := Merge(base, incoming)
	require.NoError(t, err)

	assert.InDelta(t, 0.25, got[0].AvgIncidentsPerKm, 1e-9)
	assert.InDelta(t, 2.5, got[0].AvgIncidentsPerLap, 1e-9)
	assert.InDelta(t, 400.0, got[0].DrivenKm, 1e-9)
	assert.Equal(t, 40, got[0].CompletedLaps)
}

// ---- Identity Tests ----

func TestMerge_Identity(t *testing.T) {
	tests := []struct {
		name     string
		base     *StatRow
		incoming *StatRow
		wantLen  int
	}{
		{
			name:     "member id",
			base:     &StatRow{MemberID: 7, Name: "Old Name"},
			incoming: &StatRow{MemberID: 7, Name: "New Name"},
			wantLen:  1,
		},
		{
			name:     "racing id",
			base:     &StatRow{RacingID: "123", Name: "Old Name"},
			incoming: &StatRow{RacingID: "123", Name: "New Name"},
			wantLen:  1,
		},
		{
			name:     "name without ids",
			base:     &StatRow{Name: "John Doe"},
			incoming: &StatRow{Name: "John Doe"},
			wantLen:  1,
		},
		{
			name:     "different racing id and name",
			base:     &StatRow{RacingID: "1", Name: "A"},
			incoming: &StatRow{RacingID: "2", Name: "B"},
			wantLen:  2,
		},
		{
			name:     "blank racing id is not an identity",
			base:     &StatRow{RacingID: " ", Name: "A"},
			incoming: &StatRow{RacingID: " ", Name: "B"},
			wantLen:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge([]*StatRow{tt.base}, []*StatRow{tt.incoming})
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestMerge_DuplicateIdentity(t *testing.T) {
	dup := []*StatRow{{MemberID: 42, Name: "A"}, {MemberID: 42, Name: "B"}}
	single := []*StatRow{{MemberID: 42, Name: "A"}}

	tests := []struct {
		name        string
		base        []*StatRow
		incoming    []*StatRow
		wantOperand string
	}{
		{"in base", dup, single, "base"},
		{"in incoming", single, dup, "incoming"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge(tt.base, tt.incoming)
			var dupErr *DuplicateIdentityError
			require.True(t, errors.As(err, &dupErr), "error = %v", err)
			assert.Equal(t, int64(42), dupErr.MemberID)
			assert.Equal(t, tt.wantOperand, dupErr.Operand)
		})
	}
}

func TestMerge_ZeroMemberIDsAreNotDuplicates(t *testing.T) {
	base := []*StatRow{{Name: "A"}, {Name: "B"}}
	got, err := Merge(base, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

// ---- Ownership Tests ----

func TestMerge_EmptyIsNoOp(t *testing.T) {
	row := &StatRow{Name: "A", TeamName: "Team", Races: 2, EndIRating: 1500, AvgFinishPosition: 4}
	want := *row

	got, err := Merge([]*StatRow{row}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, row, got[0])
	if diff := cmp.Diff(want, *got[0]); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_IncomingRowsAreCopied(t *testing.T) {
	in := &StatRow{Name: "A", Races: 1}
	got, err := Merge(nil, []*StatRow{in})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.NotSame(t, in, got[0])
	got[0].Races = 5
	assert.Equal(t, 1, in.Races)
}

func TestMerge_IncomingIsNotMutated(t *testing.T) {
	base := []*StatRow{{Name: "A", Races: 1, Wins: 1}}
	in := &StatRow{Name: "A", Races: 1, Wins: 0}
	want := *in

	_, err := Merge(base, []*StatRow{in})
	require.NoError(t, err)
	if diff := cmp.Diff(want, *in); diff != "" {
		t.Errorf("incoming row changed (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, base[0].Races)
}

// ---- Field Rule Tests ----

func TestMerge_FieldRules(t *testing.T) {
	d1 := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC)

	base := &StatRow{
		Name:                    "John Doe",
		TeamName:                "Old Team",
		MemberID:                42,
		Races:                   2,
		Wins:                    1,
		StartIRating:            1400,
		EndIRating:              1450,
		FirstRaceID:             pgtype.Int8{Int64: 1, Valid: true},
		FirstRaceDate:           pgtype.Date{Time: d1, Valid: true},
		LastRaceID:              pgtype.Int8{Int64: 1, Valid: true},
		LastRaceDate:            pgtype.Date{Time: d1, Valid: true},
		BestFinishPosition:      3,
		WorstFinishPosition:     8,
		FirstRaceFinishPosition: 8,
		LastRaceFinishPosition:  3,
		IsCurrentChamp:          true,
		CurrentSeasonPosition:   4,
		StatisticSetID:          9,
		Titles:                  1,
	}
	incoming := &StatRow{
		Name:                    "John Doe",
		RacingID:                "555",
		MemberName:              "John Doe",
		TeamName:                "New Team",
		MemberID:                42,
		Races:                   1,
		Wins:                    1,
		StartIRating:            1500,
		EndIRating:              1550,
		FirstRaceID:             pgtype.Int8{Int64: 2, Valid: true},
		FirstRaceDate:           pgtype.Date{Time: d2, Valid: true},
		LastRaceID:              pgtype.Int8{Int64: 2, Valid: true},
		LastRaceDate:            pgtype.Date{Time: d2, Valid: true},
		BestFinishPosition:      1,
		WorstFinishPosition:     1,
		FirstRaceFinishPosition: 1,
		LastRaceFinishPosition:  1,
		IsCurrentHeChamp:        true,
		CurrentSeasonPosition:   1,
		HeTitles:                1,
	}

	got, err := Merge([]*StatRow{base}, []*StatRow{incoming})
	require.NoError(t, err)
	require.Len(t, got, 1)
	r := got[0]

	// counters
	assert.Equal(t, 3, r.Races)
	assert.Equal(t, 2, r.Wins)
	assert.Equal(t, 1, r.Titles)
	assert.Equal(t, 1, r.HeTitles)

	// fill if empty
	assert.Equal(t, "555", r.RacingID)
	assert.Equal(t, "John Doe", r.MemberName)

	// earliest wins
	assert.Equal(t, 1400, r.StartIRating)
	assert.Equal(t, int64(1), r.FirstRaceID.Int64)
	assert.True(t, r.FirstRaceDate.Time.Equal(d1))
	assert.Equal(t, 8, r.FirstRaceFinishPosition)

	// latest wins
	assert.Equal(t, "New Team", r.TeamName)
	assert.Equal(t, 1550, r.EndIRating)
	assert.Equal(t, int64(2), r.LastRaceID.Int64)
	assert.True(t, r.LastRaceDate.Time.Equal(d2))
	assert.Equal(t, 1, r.LastRaceFinishPosition)

	// extrema
	assert.Equal(t, 1, r.BestFinishPosition)
	assert.Equal(t, 8, r.WorstFinishPosition)

	// flags
	assert.True(t, r.IsCurrentChamp)
	assert.True(t, r.IsCurrentHeChamp)

	// untouched
	assert.Equal(t, 4, r.CurrentSeasonPosition)
	assert.Equal(t, int64(9), r.StatisticSetID)
}

func TestMerge_FirstFieldsFromEmptyBase(t *testing.T) {
	base := []*StatRow{{Name: "A"}}
	in := &StatRow{
		Name:                   "A",
		Races:                  1,
		StartIRating:           1600,
		StartSRating:           2.5,
		FirstRaceStartPosition: 4,
		FirstSessionID:         pgtype.Int8{Int64: 11, Valid: true},
	}

	got, err := Merge(base, []*StatRow{in})
	require.NoError(t, err)

	assert.Equal(t, 1600, got[0].StartIRating)
	assert.Equal(t, 2.5, got[0].StartSRating)
	assert.Equal(t, 4, got[0].FirstRaceStartPosition)
	assert.Equal(t, pgtype.Int8{Int64: 11, Valid: true}, got[0].FirstSessionID)
}

func TestMerge_LastFieldsKeptWhenIncomingHasNoRaces(t *testing.T) {
	base := []*StatRow{{
		Name:                  "A",
		Races:                 1,
		LastRaceFinalPosition: 2,
		LastRaceID:            pgtype.Int8{Int64: 3, Valid: true},
	}}
	in := &StatRow{Name: "A"}

	got, err := Merge(base, []*StatRow{in})
	require.NoError(t, err)

	assert.Equal(t, 2, got[0].LastRaceFinalPosition)
	assert.Equal(t, pgtype.Int8{Int64: 3, Valid: true}, got[0].LastRaceID)
}

func TestBestPosition(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 3, 3},
		{3, 0, 3},
		{2, 5, 2},
		{5, 2, 2},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := bestPosition(tt.a, tt.b); got != tt.want {
			t.Errorf("bestPosition(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
