package models

import "fmt"

type PlayerStats struct {
	TotalBets  int     `json:"totalBets"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	TotalSpent float64 `json:"totalSpent"`
}

// Record counts one bet. Wins + Losses always equals TotalBets.
func (s *PlayerStats) Record(b Bet) {
	s.TotalBets++
	s.TotalSpent += b.Amount
	if b.IsWin() {
		s.Wins++
	} else {
		s.Losses++
	}
}

// WinRate is wins / totalBets * 100, zero for a player without bets.
func (s PlayerStats) WinRate() float64 {
	if s.TotalBets == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalBets) * 100
}

func FormatWinRate(rate float64) string {
	return fmt.Sprintf("%.1f", rate)
}
