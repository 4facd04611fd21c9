package core

import (
	"math"

	"github.com/JonMunkholm/StatsBot/internal/tablefmt"
	"github.com/jackc/pgx/v5/pgtype"
)

// StatRow holds the statistics of one driver, either for a single event or
// accumulated over many.
type StatRow struct {
	// Identity
	Name     string
	RacingID string
	TeamName string

	// Classification, written after aggregation
	FairPlayRating float64
	DriverRank     Rank
	RankValue      int

	Titles           int
	HeTitles         int
	IsCurrentChamp   bool
	IsCurrentHeChamp bool
	StatisticSetID   int64
	MemberID         int64 // 0 means unknown
	MemberName       string

	StartIRating int
	EndIRating   int
	StartSRating float64
	EndSRating   float64

	FirstSessionID   pgtype.Int8
	FirstSessionDate pgtype.Date
	FirstRaceID      pgtype.Int8
	FirstRaceDate    pgtype.Date
	FirstResultRowID pgtype.Int8
	LastSessionID    pgtype.Int8
	LastSessionDate  pgtype.Date
	LastRaceID       pgtype.Int8
	LastRaceDate     pgtype.Date
	LastResultRowID  pgtype.Int8

	RacePoints                  int
	TotalPoints                 int
	BonusPoints                 int
	Races                       int
	Wins                        int
	Poles                       int
	Top3                        int
	Top5                        int
	Top10                       int
	Top15                       int
	Top20                       int
	Top25                       int
	RacesInPoints               int
	RacesCompleted              int
	Incidents                   int
	PenaltyPoints               int
	FastestLaps                 int
	IncidentsUnderInvestigation int
	IncidentsWithPenalty        int
	LeadingLaps                 int
	CompletedLaps               int
	CurrentSeasonPosition       int
	DrivenKm                    float64
	LeadingKm                   float64

	AvgFinishPosition       float64
	AvgFinalPosition        float64
	AvgStartPosition        float64
	AvgPointsPerRace        float64
	AvgIncidentsPerRace     float64
	AvgIncidentsPerLap      float64
	AvgIncidentsPerKm       float64
	AvgPenaltyPointsPerRace float64
	AvgPenaltyPointsPerLap  float64
	AvgPenaltyPointsPerKm   float64
	AvgIRating              float64
	AvgSRating              float64

	BestFinishPosition      int
	WorstFinishPosition     int
	FirstRaceFinishPosition int
	LastRaceFinishPosition  int
	BestFinalPosition       int
	WorstFinalPosition      int
	FirstRaceFinalPosition  int
	LastRaceFinalPosition   int
	BestStartPosition       int
	WorstStartPosition      int
	FirstRaceStartPosition  int
	LastRaceStartPosition   int

	HardChargerAwards    int
	CleanestDriverAwards int

	// Share of races completed, 0..1
	RacesCompletedPctVal float64
}

// RacesCompletedPct is RacesCompletedPctVal as a whole percentage.
func (r *StatRow) RacesCompletedPct() int {
	return int(math.RoundToEven(100 * r.RacesCompletedPctVal))
}

// SetRacesCompletedPct stores a whole percentage.
func (r *StatRow) SetRacesCompletedPct(pct int) {
	r.RacesCompletedPctVal = float64(pct) / 100
}

// Clone returns a copy of r.
func (r *StatRow) Clone() *StatRow {
	c := *r
	return &c
}

// StatTableKey identifies the statistics table in the tablefmt registry.
const StatTableKey = "driver_statistics"

// StatRowSchema is the column layout of the statistics table. Column names
// and order match the all-time tables already published by the leagues.
var StatRowSchema = tablefmt.MustSchema(
	str("Name", func(r *StatRow) *string { return &r.Name }),
	str("RacingID", func(r *StatRow) *string { return &r.RacingID }).As("IRacingId"),
	str("TeamName", func(r *StatRow) *string { return &r.TeamName }),
	fixed("FairPlayRating", func(r *StatRow) *float64 { return &r.FairPlayRating }),
	tablefmt.Field("DriverRank", func(r *StatRow) *Rank { return &r.DriverRank }, rankCodec),
	num("RankValue", func(r *StatRow) *int { return &r.RankValue }),
	num("Titles", func(r *StatRow) *int { return &r.Titles }),
	num("HeTitles", func(r *StatRow) *int { return &r.HeTitles }),
	tablefmt.Computed("RacesCompletedPct", (*StatRow).RacesCompletedPct, (*StatRow).SetRacesCompletedPct, tablefmt.Int()),
	flag("IsCurrentChamp", func(r *StatRow) *bool { return &r.IsCurrentChamp }),
	flag("IsCurrentHeChamp", func(r *StatRow) *bool { return &r.IsCurrentHeChamp }),
	num64("StatisticSetID", func(r *StatRow) *int64 { return &r.StatisticSetID }).As("StatisticSetId"),
	num64("MemberID", func(r *StatRow) *int64 { return &r.MemberID }).As("MemberId"),
	str("MemberName", func(r *StatRow) *string { return &r.MemberName }),
	num("StartIRating", func(r *StatRow) *int { return &r.StartIRating }),
	num("EndIRating", func(r *StatRow) *int { return &r.EndIRating }),
	fixed("StartSRating", func(r *StatRow) *float64 { return &r.StartSRating }),
	fixed("EndSRating", func(r *StatRow) *float64 { return &r.EndSRating }),
	optID("FirstSessionID", func(r *StatRow) *pgtype.Int8 { return &r.FirstSessionID }).As("FirstSessionId"),
	optDate("FirstSessionDate", func(r *StatRow) *pgtype.Date { return &r.FirstSessionDate }),
	optID("FirstRaceID", func(r *StatRow) *pgtype.Int8 { return &r.FirstRaceID }).As("FirstRaceId"),
	optDate("FirstRaceDate", func(r *StatRow) *pgtype.Date { return &r.FirstRaceDate }),
	optID("FirstResultRowID", func(r *StatRow) *pgtype.Int8 { return &r.FirstResultRowID }).As("FirstResultRowId"),
	optID("LastSessionID", func(r *StatRow) *pgtype.Int8 { return &r.LastSessionID }).As("LastSessionId"),
	optDate("LastSessionDate", func(r *StatRow) *pgtype.Date { return &r.LastSessionDate }),
	optID("LastRaceID", func(r *StatRow) *pgtype.Int8 { return &r.LastRaceID }).As("LastRaceId"),
	optDate("LastRaceDate", func(r *StatRow) *pgtype.Date { return &r.LastRaceDate }),
	optID("LastResultRowID", func(r *StatRow) *pgtype.Int8 { return &r.LastResultRowID }).As("LastResultRowId"),
	num("RacePoints", func(r *StatRow) *int { return &r.RacePoints }),
	num("TotalPoints", func(r *StatRow) *int { return &r.TotalPoints }),
	num("BonusPoints", func(r *StatRow) *int { return &r.BonusPoints }),
	num("Races", func(r *StatRow) *int { return &r.Races }),
	num("Wins", func(r *StatRow) *int { return &r.Wins }),
	num("Poles", func(r *StatRow) *int { return &r.Poles }),
	num("Top3", func(r *StatRow) *int { return &r.Top3 }),
	num("Top5", func(r *StatRow) *int { return &r.Top5 }),
	num("Top10", func(r *StatRow) *int { return &r.Top10 }),
	num("Top15", func(r *StatRow) *int { return &r.Top15 }),
	num("Top20", func(r *StatRow) *int { return &r.Top20 }),
	num("Top25", func(r *StatRow) *int { return &r.Top25 }),
	num("RacesInPoints", func(r *StatRow) *int { return &r.RacesInPoints }),
	num("RacesCompleted", func(r *StatRow) *int { return &r.RacesCompleted }),
	num("Incidents", func(r *StatRow) *int { return &r.Incidents }),
	num("PenaltyPoints", func(r *StatRow) *int { return &r.PenaltyPoints }),
	num("FastestLaps", func(r *StatRow) *int { return &r.FastestLaps }),
	num("IncidentsUnderInvestigation", func(r *StatRow) *int { return &r.IncidentsUnderInvestigation }),
	num("IncidentsWithPenalty", func(r *StatRow) *int { return &r.IncidentsWithPenalty }),
	num("LeadingLaps", func(r *StatRow) *int { return &r.LeadingLaps }),
	num("CompletedLaps", func(r *StatRow) *int { return &r.CompletedLaps }),
	num("CurrentSeasonPosition", func(r *StatRow) *int { return &r.CurrentSeasonPosition }),
	fixed("DrivenKm", func(r *StatRow) *float64 { return &r.DrivenKm }),
	fixed("LeadingKm", func(r *StatRow) *float64 { return &r.LeadingKm }),
	fixed("AvgFinishPosition", func(r *StatRow) *float64 { return &r.AvgFinishPosition }),
	fixed("AvgFinalPosition", func(r *StatRow) *float64 { return &r.AvgFinalPosition }),
	fixed("AvgStartPosition", func(r *StatRow) *float64 { return &r.AvgStartPosition }),
	fixed("AvgPointsPerRace", func(r *StatRow) *float64 { return &r.AvgPointsPerRace }),
	fixed("AvgIncidentsPerRace", func(r *StatRow) *float64 { return &r.AvgIncidentsPerRace }),
	fixed("AvgIncidentsPerLap", func(r *StatRow) *float64 { return &r.AvgIncidentsPerLap }),
	fixed("AvgIncidentsPerKm", func(r *StatRow) *float64 { return &r.AvgIncidentsPerKm }),
	fixed("AvgPenaltyPointsPerRace", func(r *StatRow) *float64 { return &r.AvgPenaltyPointsPerRace }),
	fixed("AvgPenaltyPointsPerLap", func(r *StatRow) *float64 { return &r.AvgPenaltyPointsPerLap }),
	fixed("AvgPenaltyPointsPerKm", func(r *StatRow) *float64 { return &r.AvgPenaltyPointsPerKm }),
	fixed("AvgIRating", func(r *StatRow) *float64 { return &r.AvgIRating }),
	fixed("AvgSRating", func(r *StatRow) *float64 { return &r.AvgSRating }),
	num("BestFinishPosition", func(r *StatRow) *int { return &r.BestFinishPosition }),
	num("WorstFinishPosition", func(r *StatRow) *int { return &r.WorstFinishPosition }),
	num("FirstRaceFinishPosition", func(r *StatRow) *int { return &r.FirstRaceFinishPosition }),
	num("LastRaceFinishPosition", func(r *StatRow) *int { return &r.LastRaceFinishPosition }),
	num("BestFinalPosition", func(r *StatRow) *int { return &r.BestFinalPosition }),
	num("WorstFinalPosition", func(r *StatRow) *int { return &r.WorstFinalPosition }),
	num("FirstRaceFinalPosition", func(r *StatRow) *int { return &r.FirstRaceFinalPosition }),
	num("LastRaceFinalPosition", func(r *StatRow) *int { return &r.LastRaceFinalPosition }),
	num("BestStartPosition", func(r *StatRow) *int { return &r.BestStartPosition }),
	num("WorstStartPosition", func(r *StatRow) *int { return &r.WorstStartPosition }),
	num("FirstRaceStartPosition", func(r *StatRow) *int { return &r.FirstRaceStartPosition }),
	num("LastRaceStartPosition", func(r *StatRow) *int { return &r.LastRaceStartPosition }),
	num("HardChargerAwards", func(r *StatRow) *int { return &r.HardChargerAwards }),
	num("CleanestDriverAwards", func(r *StatRow) *int { return &r.CleanestDriverAwards }),
	fixed("RacesCompletedPctVal", func(r *StatRow) *float64 { return &r.RacesCompletedPctVal }),
)

func init() {
	tablefmt.Register(StatTableKey, "All-time driver statistics", StatRowSchema)
}

func str(field string, p func(*StatRow) *string) tablefmt.Column[StatRow] {
	return tablefmt.Field(field, p, tablefmt.String())
}

func num(field string, p func(*StatRow) *int) tablefmt.Column[StatRow] {
	return tablefmt.Field(field, p, tablefmt.Int())
}

func num64(field string, p func(*StatRow) *int64) tablefmt.Column[StatRow] {
	return tablefmt.Field(field, p, tablefmt.Int64())
}

func flag(field string, p func(*StatRow) *bool) tablefmt.Column[StatRow] {
	return tablefmt.Field(field, p, tablefmt.Bool())
}

func fixed(field string, p func(*StatRow) *float64) tablefmt.Column[StatRow] {
	return tablefmt.Field(field, p, tablefmt.Fixed())
}

func optID(field string, p func(*StatRow) *pgtype.Int8) tablefmt.Column[StatRow] {
	return tablefmt.Field(field, p, tablefmt.OptionalInt8())
}

func optDate(field string, p func(*StatRow) *pgtype.Date) tablefmt.Column[StatRow] {
	return tablefmt.Field(field, p, tablefmt.OptionalDate())
}
