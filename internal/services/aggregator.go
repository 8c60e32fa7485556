package services

import (
	"spin-history-dashboard/internal/config"
	"spin-history-dashboard/internal/models"
)

// StatsBook holds per-player counters of one aggregation. It is never mutated
// after Aggregate returns it.
type StatsBook struct {
	stats   map[string]*models.PlayerStats
	players []string
}

func (b *StatsBook) Get(player string) (models.PlayerStats, bool) {
	if b == nil {
		return models.PlayerStats{}, false
	}
	s, ok := b.stats[player]
	if !ok {
		return models.PlayerStats{}, false
	}
	return *s, true
}

// Players returns every counted player in first-seen order.
func (b *StatsBook) Players() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.players))
	copy(out, b.players)
	return out
}

func (b *StatsBook) Len() int {
	if b == nil {
		return 0
	}
	return len(b.players)
}

// Snapshot copies the counters into a plain map.
func (b *StatsBook) Snapshot() map[string]models.PlayerStats {
	out := make(map[string]models.PlayerStats, b.Len())
	if b == nil {
		return out
	}
	for player, s := range b.stats {
		out[player] = *s
	}
	return out
}

type AggregateReport struct {
	Rounds  int
	Counted int
	Skipped int
}

type Aggregator struct {
	policy config.BetPolicy
}

func NewAggregator(policy config.BetPolicy) *Aggregator {
	if policy == "" {
		policy = config.BetPolicyFirst
	}
	return &Aggregator{policy: policy}
}

// CountedBets returns the bets of item that count towards statistics.
// Rounds without bets yield nothing.
func (a *Aggregator) CountedBets(item models.BetHistoryItem) []models.Bet {
	if a.policy == config.BetPolicyAll {
		return item.Bets
	}
	bet, ok := item.FirstBet()
	if !ok {
		return nil
	}
	return []models.Bet{bet}
}

// Aggregate reduces history into a fresh book in a single pass.
func (a *Aggregator) Aggregate(history []models.BetHistoryItem) (*StatsBook, AggregateReport) {
	book := &StatsBook{stats: make(map[string]*models.PlayerStats)}
	report := AggregateReport{Rounds: len(history)}

	for _, item := range history {
		bets := a.CountedBets(item)
		if len(bets) == 0 {
			report.Skipped++
			continue
		}
		for _, bet := range bets {
			stats, ok := book.stats[bet.Player]
			if !ok {
				stats = &models.PlayerStats{}
				book.stats[bet.Player] = stats
				book.players = append(book.players, bet.Player)
			}
			stats.Record(bet)
			report.Counted++
		}
	}

	return book, report
}
