// Package league describes the league data the statistics are computed from:
// seasons, event results, standings, members and tracks.
//
// The data is supplied by a [Source]. [FileSource] reads a JSON export of a
// league; other sources (for example a remote API client) implement the same
// interface.
package league

import (
	"context"
	"time"
)

// League is the league header.
type League struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	SeasonIDs []int64 `json:"seasonIds"` // oldest first
}

// Season is the metadata of one season.
type Season struct {
	ID        int64      `json:"seasonId"`
	Name      string     `json:"seasonName"`
	Finished  bool       `json:"finished"`
	SeasonEnd *time.Time `json:"seasonEnd,omitempty"`
}

// EndTime returns the season end, or the zero time when unknown.
func (s Season) EndTime() time.Time {
	if s.SeasonEnd == nil {
		return time.Time{}
	}
	return *s.SeasonEnd
}

// SeasonEventResult groups the results of one event.
type SeasonEventResult struct {
	EventID      int64         `json:"eventId"`
	EventResults []EventResult `json:"eventResults"`
}

// FirstDate returns the date of the first event result, or the zero time.
func (r SeasonEventResult) FirstDate() time.Time {
	if len(r.EventResults) == 0 {
		return time.Time{}
	}
	return r.EventResults[0].Date
}

// EventResult is one scoring of an event. The first result of an event is the
// overall scoring.
type EventResult struct {
	ResultID       int64           `json:"resultId"`
	EventID        int64           `json:"eventId"`
	Date           time.Time       `json:"date"`
	TrackID        int64           `json:"trackId"`
	SessionResults []SessionResult `json:"sessionResults"`
}

// SessionResult is the result of one session. The last session of an event
// result is the combined race result.
type SessionResult struct {
	SessionID   int64       `json:"sessionId"`
	SessionName string      `json:"sessionName"`
	ResultRows  []ResultRow `json:"resultRows"`
}

// ResultRow is the result of one competitor in one session.
type ResultRow struct {
	ResultRowID     int64    `json:"scoredResultRowId"`
	MemberID        *int64   `json:"memberId,omitempty"`
	Firstname       string   `json:"firstname"`
	Lastname        string   `json:"lastname"`
	TeamName        string   `json:"teamName"`
	StartPosition   float64  `json:"startPosition"`
	FinishPosition  float64  `json:"finishPosition"`
	FinalPosition   int      `json:"finalPosition"`
	CompletedLaps   float64  `json:"completedLaps"`
	CompletedPct    float64  `json:"completedPct"`
	LeadLaps        float64  `json:"leadLaps"`
	Incidents       float64  `json:"incidents"`
	PenaltyPoints   float64  `json:"penaltyPoints"`
	BonusPoints     float64  `json:"bonusPoints"`
	RacePoints      float64  `json:"racePoints"`
	TotalPoints     float64  `json:"totalPoints"`
	OldIRating      int      `json:"oldIrating"`
	NewIRating      int      `json:"newIrating"`
	OldSafetyRating int      `json:"oldSafetyRating"`
	NewSafetyRating int      `json:"newSafetyRating"`
	FastestLapTime  Duration `json:"fastestLapTime"`
}

// Member returns the member id, or 0 when the row has none.
func (r ResultRow) Member() int64 {
	if r.MemberID == nil {
		return 0
	}
	return *r.MemberID
}

// Standings is one standings table of a season.
type Standings struct {
	StandingID   int64         `json:"standingId"`
	Name         string        `json:"name"`
	StandingRows []StandingRow `json:"standingRows"`
}

// StandingRow is the standing of one competitor.
type StandingRow struct {
	MemberID int64 `json:"memberId"`
	Position int   `json:"position"`
}

// PositionOf returns the position of memberID, or 0 when not listed.
func (s Standings) PositionOf(memberID int64) int {
	for _, row := range s.StandingRows {
		if row.MemberID == memberID {
			return row.Position
		}
	}
	return 0
}

// Member maps a league member to the racing service id.
type Member struct {
	MemberID  int64  `json:"memberId"`
	IRacingID string `json:"iRacingId"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Track groups the configurations of one track.
type Track struct {
	TrackGroupID int64         `json:"trackGroupId"`
	TrackName    string        `json:"trackName"`
	Configs      []TrackConfig `json:"configs"`
}

// TrackConfig is one layout of a track. Length is in kilometers.
type TrackConfig struct {
	TrackID    int64   `json:"trackId"`
	ConfigName string  `json:"configName"`
	Length     float64 `json:"length"`
}

// SeasonData bundles everything known about one season.
type SeasonData struct {
	Season    Season              `json:"season"`
	Results   []SeasonEventResult `json:"results"` // nil when the season has no results
	Standings []Standings         `json:"standings"`
}

// Source supplies league data.
type Source interface {
	League(ctx context.Context, name string) (League, error)
	Tracks(ctx context.Context) ([]Track, error)
	Members(ctx context.Context) ([]Member, error)
	Seasons(ctx context.Context, ids []int64) ([]SeasonData, error)
}
