package core

import (
	"strings"
	"time"

	"github.com/JonMunkholm/StatsBot/internal/league"
	"github.com/jackc/pgx/v5/pgtype"
)

// completedShare is the share of laps above which a race counts as completed.
const completedShare = 0.75

// EventContext is what BuildResultStats needs to know about the session a
// result row belongs to.
type EventContext struct {
	EventID     int64
	SessionID   int64
	Date        time.Time
	TrackLength float64       // km
	FastestLap  time.Duration // fastest positive lap of the session, 0 if none
}

// NewEventContext derives the context of the combined session of an event.
func NewEventContext(ev league.EventResult, session league.SessionResult, track league.TrackConfig) EventContext {
	return EventContext{
		EventID:     ev.EventID,
		SessionID:   session.SessionID,
		Date:        ev.Date,
		TrackLength: track.Length,
		FastestLap:  fastestLap(session.ResultRows),
	}
}

func fastestLap(rows []league.ResultRow) time.Duration {
	var best time.Duration
	for _, row := range rows {
		lap := time.Duration(row.FastestLapTime)
		if lap > 0 && (best == 0 || lap < best) {
			best = lap
		}
	}
	return best
}

// Roster maps member ids to racing ids.
type Roster map[int64]string

// NewRoster indexes members by member id.
func NewRoster(members []league.Member) Roster {
	r := make(Roster, len(members))
	for _, m := range members {
		if _, seen := r[m.MemberID]; !seen {
			r[m.MemberID] = m.IRacingID
		}
	}
	return r
}

// RacingID returns the racing id of a member, or "" when unknown.
func (r Roster) RacingID(memberID int64) string {
	return r[memberID]
}

// BuildResultStats turns one result row into a per-event statistics row.
// Counters are 0 or 1, averages hold the values of this single race and all
// first and last fields point at this event.
func BuildResultStats(row league.ResultRow, ev EventContext, roster Roster) *StatRow {
	name := strings.TrimSpace(row.Firstname + " " + row.Lastname)
	memberID := row.Member()

	finish := int(row.FinishPosition)
	start := int(row.StartPosition)
	final := row.FinalPosition
	laps := row.CompletedLaps
	drivenKm := laps * ev.TrackLength

	completed := 0
	if row.CompletedPct > completedShare {
		completed = 1
	}

	date := pgtype.Date{Time: ev.Date, Valid: !ev.Date.IsZero()}
	session := pgtype.Int8{Int64: ev.SessionID, Valid: ev.SessionID != 0}
	race := pgtype.Int8{Int64: ev.EventID, Valid: ev.EventID != 0}
	resultRow := pgtype.Int8{Int64: row.ResultRowID, Valid: row.ResultRowID != 0}

	return &StatRow{
		Name:       name,
		RacingID:   roster.RacingID(memberID),
		TeamName:   row.TeamName,
		MemberID:   memberID,
		MemberName: name,

		StartIRating: row.OldIRating,
		EndIRating:   row.NewIRating,
		StartSRating: float64(row.OldSafetyRating) / 100,
		EndSRating:   float64(row.NewSafetyRating) / 100,

		FirstSessionID:   session,
		FirstSessionDate: date,
		FirstRaceID:      race,
		FirstRaceDate:    date,
		FirstResultRowID: resultRow,
		LastSessionID:    session,
		LastSessionDate:  date,
		LastRaceID:       race,
		LastRaceDate:     date,
		LastResultRowID:  resultRow,

		RacePoints:     int(row.RacePoints),
		TotalPoints:    int(row.TotalPoints),
		BonusPoints:    int(row.BonusPoints),
		Races:          1,
		Wins:           indicator(final == 1),
		Poles:          indicator(start == 1),
		Top3:           topN(final, 3),
		Top5:           topN(final, 5),
		Top10:          topN(final, 10),
		Top15:          topN(final, 15),
		Top20:          topN(final, 20),
		Top25:          topN(final, 25),
		RacesInPoints:  indicator(row.RacePoints > 0),
		RacesCompleted: completed,
		Incidents:      int(row.Incidents),
		PenaltyPoints:  int(row.PenaltyPoints),
		FastestLaps:    indicator(ev.FastestLap > 0 && time.Duration(row.FastestLapTime) == ev.FastestLap),
		LeadingLaps:    int(row.LeadLaps),
		CompletedLaps:  int(laps),
		DrivenKm:       drivenKm,
		LeadingKm:      row.LeadLaps * ev.TrackLength,

		AvgFinishPosition:       row.FinishPosition,
		AvgFinalPosition:        float64(final),
		AvgStartPosition:        row.StartPosition,
		AvgPointsPerRace:        row.RacePoints,
		AvgIncidentsPerRace:     row.Incidents,
		AvgIncidentsPerLap:      rate(row.Incidents, laps, laps),
		AvgIncidentsPerKm:       rate(row.Incidents, drivenKm, laps),
		AvgPenaltyPointsPerRace: row.PenaltyPoints,
		AvgPenaltyPointsPerLap:  rate(row.PenaltyPoints, laps, laps),
		AvgPenaltyPointsPerKm:   rate(row.PenaltyPoints, drivenKm, laps),
		AvgIRating:              float64(row.NewIRating),
		AvgSRating:              float64(row.NewSafetyRating) / 100,

		BestFinishPosition:      finish,
		WorstFinishPosition:     finish,
		FirstRaceFinishPosition: finish,
		LastRaceFinishPosition:  finish,
		BestFinalPosition:       final,
		WorstFinalPosition:      final,
		FirstRaceFinalPosition:  final,
		LastRaceFinalPosition:   final,
		BestStartPosition:       start,
		WorstStartPosition:      start,
		FirstRaceStartPosition:  start,
		LastRaceStartPosition:   start,

		RacesCompletedPctVal: float64(completed),
	}
}

func indicator(b bool) int {
	if b {
		return 1
	}
	return 0
}

func topN(pos, n int) int {
	return indicator(pos >= 1 && pos <= n)
}

// rate divides value by per. Rates of rows without completed laps are 0.
func rate(value, per, laps float64) float64 {
	if laps <= 0 || per <= 0 {
		return 0
	}
	return value / per
}
