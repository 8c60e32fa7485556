package models

import "time"

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

func OutcomeOf(b Bet) Outcome {
	if b.IsWin() {
		return OutcomeWin
	}
	return OutcomeLoss
}

type RosterCard struct {
	Address     string  `json:"address"`
	DisplayName string  `json:"displayName"`
	Avatar      string  `json:"avatar"`
	TotalBets   int     `json:"totalBets"`
	WinRate     float64 `json:"winRate"`
	WinRateText string  `json:"winRateText"`
}

type PlayerDetail struct {
	Address     string  `json:"address"`
	DisplayName string  `json:"displayName"`
	Avatar      string  `json:"avatar"`
	TotalBets   int     `json:"totalBets"`
	TotalSpent  float64 `json:"totalSpent"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRateText string  `json:"winRateText"`
}

type FeedEntry struct {
	Round       int64   `json:"round"`
	Timestamp   int64   `json:"timestamp"`
	PlayedAt    string  `json:"playedAt"`
	Player      string  `json:"player"`
	DisplayName string  `json:"displayName"`
	Avatar      string  `json:"avatar"`
	Amount      float64 `json:"amount"`
	WinAmount   float64 `json:"winAmount"`
	SpinResult  string  `json:"spinResult"`
	Outcome     Outcome `json:"outcome"`
}

type CycleState string

const (
	StateIdle       CycleState = "idle"
	StateFetching   CycleState = "fetching"
	StateAggregated CycleState = "aggregated"
	StateRendered   CycleState = "rendered"
	StateFailed     CycleState = "failed"
)

// Dashboard is one published render of all views.
type Dashboard struct {
	CycleID    string       `json:"cycleId"`
	State      CycleState   `json:"state"`
	RenderedAt time.Time    `json:"renderedAt"`
	Skipped    int          `json:"skippedRounds"`
	Roster     []RosterCard `json:"roster"`
	Feed       []FeedEntry  `json:"history"`
}
