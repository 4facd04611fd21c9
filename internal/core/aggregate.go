package core

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"gonum.org/v1/gonum/stat"
)

// Merge folds incoming into base and returns the combined collection.
//
// Each incoming row is matched against base by member id, then racing id,
// then name. Matched base rows are updated in place; unmatched incoming rows
// are appended as copies. Fields that take the value of the later row
// (team, end ratings, last race) make the result depend on the order of
// the operands, so callers fold in chronological order.
func Merge(base, incoming []*StatRow) ([]*StatRow, error) {
	if err := checkUniqueMembers(base, "base"); err != nil {
		return nil, err
	}
	if err := checkUniqueMembers(incoming, "incoming"); err != nil {
		return nil, err
	}

	merged := make([]*StatRow, len(base), len(base)+len(incoming))
	copy(merged, base)

	for _, in := range incoming {
		dst := findMatch(base, in)
		if dst == nil {
			merged = append(merged, in.Clone())
			continue
		}
		mergeRow(dst, in)
	}

	return merged, nil
}

func checkUniqueMembers(rows []*StatRow, operand string) error {
	seen := make(map[int64]struct{}, len(rows))
	for _, r := range rows {
		if r.MemberID == 0 {
			continue
		}
		if _, dup := seen[r.MemberID]; dup {
			return &DuplicateIdentityError{MemberID: r.MemberID, Operand: operand}
		}
		seen[r.MemberID] = struct{}{}
	}
	return nil
}

// findMatch returns the base row that in belongs to, or nil.
func findMatch(base []*StatRow, in *StatRow) *StatRow {
	if in.MemberID != 0 {
		for _, r := range base {
			if r.MemberID == in.MemberID {
				return r
			}
		}
	}
	if strings.TrimSpace(in.RacingID) != "" {
		for _, r := range base {
			if r.RacingID == in.RacingID {
				return r
			}
		}
	}
	for _, r := range base {
		if r.Name == in.Name {
			return r
		}
	}
	return nil
}

// mergeRow combines src into dst. Averages are weighted with the counts of
// both rows before the counts are summed.
func mergeRow(dst, src *StatRow) {
	races := [2]float64{float64(dst.Races), float64(src.Races)}
	km := [2]float64{dst.DrivenKm, src.DrivenKm}
	laps := [2]float64{float64(dst.CompletedLaps), float64(src.CompletedLaps)}

	// Identity: fill what is unknown.
	if dst.RacingID == "" {
		dst.RacingID = src.RacingID
	}
	if dst.MemberID == 0 {
		dst.MemberID = src.MemberID
	}
	if dst.MemberName == "" {
		dst.MemberName = src.MemberName
	}

	// Weighted averages
	dst.AvgFinishPosition = weightedMean(dst.AvgFinishPosition, src.AvgFinishPosition, races)
	dst.AvgFinalPosition = weightedMean(dst.AvgFinalPosition, src.AvgFinalPosition, races)
	dst.AvgStartPosition = weightedMean(dst.AvgStartPosition, src.AvgStartPosition, races)
	dst.AvgPointsPerRace = weightedMean(dst.AvgPointsPerRace, src.AvgPointsPerRace, races)
	dst.AvgIncidentsPerRace = weightedMean(dst.AvgIncidentsPerRace, src.AvgIncidentsPerRace, races)
	dst.AvgPenaltyPointsPerRace = weightedMean(dst.AvgPenaltyPointsPerRace, src.AvgPenaltyPointsPerRace, races)
	dst.AvgIRating = weightedMean(dst.AvgIRating, src.AvgIRating, races)
	dst.AvgSRating = weightedMean(dst.AvgSRating, src.AvgSRating, races)
	dst.RacesCompletedPctVal = weightedMean(dst.RacesCompletedPctVal, src.RacesCompletedPctVal, races)
	dst.AvgIncidentsPerKm = weightedMean(dst.AvgIncidentsPerKm, src.AvgIncidentsPerKm, km)
	dst.AvgPenaltyPointsPerKm = weightedMean(dst.AvgPenaltyPointsPerKm, src.AvgPenaltyPointsPerKm, km)
	dst.AvgIncidentsPerLap = weightedMean(dst.AvgIncidentsPerLap, src.AvgIncidentsPerLap, laps)
	dst.AvgPenaltyPointsPerLap = weightedMean(dst.AvgPenaltyPointsPerLap, src.AvgPenaltyPointsPerLap, laps)

	// Earliest wins
	if dst.Races == 0 && src.Races > 0 {
		dst.StartIRating = src.StartIRating
		dst.StartSRating = src.StartSRating
		dst.FirstRaceFinishPosition = src.FirstRaceFinishPosition
		dst.FirstRaceFinalPosition = src.FirstRaceFinalPosition
		dst.FirstRaceStartPosition = src.FirstRaceStartPosition
	}
	keepFirstID(&dst.FirstSessionID, src.FirstSessionID)
	keepFirstDate(&dst.FirstSessionDate, src.FirstSessionDate)
	keepFirstID(&dst.FirstRaceID, src.FirstRaceID)
	keepFirstDate(&dst.FirstRaceDate, src.FirstRaceDate)
	keepFirstID(&dst.FirstResultRowID, src.FirstResultRowID)

	// Latest wins
	if src.Races > 0 {
		dst.LastRaceFinishPosition = src.LastRaceFinishPosition
		dst.LastRaceFinalPosition = src.LastRaceFinalPosition
		dst.LastRaceStartPosition = src.LastRaceStartPosition
	}
	takeLastID(&dst.LastSessionID, src.LastSessionID)
	takeLastDate(&dst.LastSessionDate, src.LastSessionDate)
	takeLastID(&dst.LastRaceID, src.LastRaceID)
	takeLastDate(&dst.LastRaceDate, src.LastRaceDate)
	takeLastID(&dst.LastResultRowID, src.LastResultRowID)
	dst.TeamName = src.TeamName
	dst.EndIRating = src.EndIRating
	dst.EndSRating = src.EndSRating

	// Extrema
	dst.BestFinishPosition = bestPosition(dst.BestFinishPosition, src.BestFinishPosition)
	dst.BestFinalPosition = bestPosition(dst.BestFinalPosition, src.BestFinalPosition)
	dst.BestStartPosition = bestPosition(dst.BestStartPosition, src.BestStartPosition)
	dst.WorstFinishPosition = max(dst.WorstFinishPosition, src.WorstFinishPosition)
	dst.WorstFinalPosition = max(dst.WorstFinalPosition, src.WorstFinalPosition)
	dst.WorstStartPosition = max(dst.WorstStartPosition, src.WorstStartPosition)

	// Counters
	dst.Races += src.Races
	dst.RacesCompleted += src.RacesCompleted
	dst.Wins += src.Wins
	dst.Poles += src.Poles
	dst.Top3 += src.Top3
	dst.Top5 += src.Top5
	dst.Top10 += src.Top10
	dst.Top15 += src.Top15
	dst.Top20 += src.Top20
	dst.Top25 += src.Top25
	dst.RacesInPoints += src.RacesInPoints
	dst.Incidents += src.Incidents
	dst.PenaltyPoints += src.PenaltyPoints
	dst.FastestLaps += src.FastestLaps
	dst.IncidentsUnderInvestigation += src.IncidentsUnderInvestigation
	dst.IncidentsWithPenalty += src.IncidentsWithPenalty
	dst.LeadingLaps += src.LeadingLaps
	dst.CompletedLaps += src.CompletedLaps
	dst.DrivenKm += src.DrivenKm
	dst.LeadingKm += src.LeadingKm
	dst.BonusPoints += src.BonusPoints
	dst.RacePoints += src.RacePoints
	dst.TotalPoints += src.TotalPoints
	dst.Titles += src.Titles
	dst.HeTitles += src.HeTitles
	dst.HardChargerAwards += src.HardChargerAwards
	dst.CleanestDriverAwards += src.CleanestDriverAwards

	// Flags
	dst.IsCurrentChamp = dst.IsCurrentChamp || src.IsCurrentChamp
	dst.IsCurrentHeChamp = dst.IsCurrentHeChamp || src.IsCurrentHeChamp
}

// weightedMean averages a and b with the given weights. A zero total weight
// yields 0.
func weightedMean(a, b float64, weights [2]float64) float64 {
	if weights[0]+weights[1] == 0 {
		return 0
	}
	return stat.Mean([]float64{a, b}, weights[:])
}

// bestPosition returns the better of two positions; 0 means no position.
func bestPosition(a, b int) int {
	switch {
	case a <= 0:
		return b
	case b <= 0:
		return a
	default:
		return min(a, b)
	}
}

func keepFirstID(dst *pgtype.Int8, src pgtype.Int8) {
	if !dst.Valid {
		*dst = src
	}
}

func keepFirstDate(dst *pgtype.Date, src pgtype.Date) {
	if !dst.Valid {
		*dst = src
	}
}

func takeLastID(dst *pgtype.Int8, src pgtype.Int8) {
	if src.Valid {
		*dst = src
	}
}

func takeLastDate(dst *pgtype.Date, src pgtype.Date) {
	if src.Valid {
		*dst = src
	}
}
