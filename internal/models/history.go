package models

import "time"

type Bet struct {
	Player     string  `json:"player" redis:"player"`
	Amount     float64 `json:"amount" redis:"amount"`
	WinAmount  float64 `json:"winAmount" redis:"win_amount"`
	SpinResult string  `json:"spinResult" redis:"spin_result"`
}

// IsWin reports whether the bet paid out anything.
func (b Bet) IsWin() bool {
	return b.WinAmount > 0
}

type BetHistoryItem struct {
	Round     int64 `json:"round" redis:"round"`
	Timestamp int64 `json:"timestamp" redis:"timestamp"` // epoch millis
	Bets      []Bet `json:"bets" redis:"bets"`
}

// FirstBet returns bets[0]; ok is false for a round without bets.
func (h BetHistoryItem) FirstBet() (Bet, bool) {
	if len(h.Bets) == 0 {
		return Bet{}, false
	}
	return h.Bets[0], true
}

func (h BetHistoryItem) Time() time.Time {
	return time.UnixMilli(h.Timestamp)
}
