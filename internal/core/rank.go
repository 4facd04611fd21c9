package core

import (
	"github.com/JonMunkholm/StatsBot/internal/tablefmt"
	"github.com/shopspring/decimal"
)

// Rank is the tier a driver is classified into. The numeric value is the
// sort value published as RankValue; EisenMeister and Platin are numbered
// in the opposite order of their precedence in ClassifyRank.
type Rank int

const (
	RankNone         Rank = 0
	RankBronze       Rank = 1
	RankBronzePlus   Rank = 2
	RankSilber       Rank = 3
	RankSilberPlus   Rank = 4
	RankGold         Rank = 5
	RankGoldPlus     Rank = 6
	RankEisen        Rank = 7
	RankEisenMeister Rank = 8
	RankPlatin       Rank = 9
	RankMeister      Rank = 10
)

var rankSymbols = []tablefmt.Symbol[Rank]{
	{Name: "", Value: RankNone},
	{Name: "Bronze", Value: RankBronze},
	{Name: "BronzePlus", Value: RankBronzePlus},
	{Name: "Silber", Value: RankSilber},
	{Name: "SilberPlus", Value: RankSilberPlus},
	{Name: "Gold", Value: RankGold},
	{Name: "GoldPlus", Value: RankGoldPlus},
	{Name: "Eisen", Value: RankEisen},
	{Name: "EisenMeister", Value: RankEisenMeister},
	{Name: "Platin", Value: RankPlatin},
	{Name: "Meister", Value: RankMeister},
}

var rankCodec = tablefmt.Enum(rankSymbols...)

// String returns the published tier name; RankNone is the empty string.
func (r Rank) String() string {
	return rankCodec.Encode(r, tablefmt.Format{})
}

// ClassifyRank returns the tier of a cumulative row. Rules are checked in
// order and the first match wins. Rows without races have no rank; the
// champion flags rank a row even when it completed none of its races.
func ClassifyRank(row *StatRow) Rank {
	if row.Races == 0 {
		return RankNone
	}

	switch {
	case row.IsCurrentChamp:
		return RankMeister
	case row.IsCurrentHeChamp:
		return RankEisenMeister
	case row.RacesCompleted >= 30 && row.Titles >= 1:
		return RankPlatin
	case row.HeTitles >= 1:
		return RankEisen
	case row.RacesCompleted >= 30 && row.Wins >= 5:
		return RankGoldPlus
	case row.RacesCompleted >= 20 && row.Wins >= 1:
		return RankGold
	case row.RacesCompleted >= 20 && row.Top3 >= 5:
		return RankSilberPlus
	case row.RacesCompleted >= 10 && (row.Top3 >= 1 || row.Top10 >= 10):
		return RankSilber
	case row.RacesCompleted >= 10 && row.Top10 >= 5:
		return RankBronzePlus
	case row.RacesCompleted >= 5 && (row.Top10 >= 1 || row.RacesCompleted >= 25):
		return RankBronze
	default:
		return RankNone
	}
}

const (
	fairPlayMinRaces = 6
	fairPlayUnrated  = 100.0
)

// FairPlayRating returns penalty points plus incidents/15 per completed race,
// rounded half to even at four places. Lower is better. Drivers with fewer
// than six completed races get 100.
func FairPlayRating(row *StatRow) float64 {
	if row.RacesCompleted < fairPlayMinRaces {
		return fairPlayUnrated
	}

	penalties := decimal.NewFromInt(int64(row.PenaltyPoints)).
		Add(decimal.NewFromInt(int64(row.Incidents)).Div(decimal.NewFromInt(15)))
	return penalties.Div(decimal.NewFromInt(int64(row.RacesCompleted))).RoundBank(4).InexactFloat64()
}

// Classify writes rank and fair play rating to every row.
func Classify(rows []*StatRow) {
	for _, row := range rows {
		rank := ClassifyRank(row)
		row.DriverRank = rank
		row.RankValue = int(rank)
		row.FairPlayRating = FairPlayRating(row)
	}
}
