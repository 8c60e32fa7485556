package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"spin-history-dashboard/internal/models"
)

const playedAtLayout = time.RFC1123

type IdentityResolver interface {
	Resolve(ctx context.Context, address string) *models.ENSIdentity
}

// Renderer turns history and aggregated stats into view models. Identity
// lookups fan out over a bounded pool; output order never depends on it.
type Renderer struct {
	identities IdentityResolver
	aggregator *Aggregator
	workers    int
	location   *time.Location
}

func NewRenderer(identities IdentityResolver, aggregator *Aggregator, workers int, location *time.Location) *Renderer {
	if workers < 1 {
		workers = 1
	}
	if location == nil {
		location = time.UTC
	}
	return &Renderer{
		identities: identities,
		aggregator: aggregator,
		workers:    workers,
		location:   location,
	}
}

// RenderRoster lists every distinct player once, in first-seen order.
func (r *Renderer) RenderRoster(ctx context.Context, history []models.BetHistoryItem, book *StatsBook) []models.RosterCard {
	seen := make(map[string]struct{})
	var players []string
	for _, item := range history {
		for _, bet := range r.aggregator.CountedBets(item) {
			if _, ok := seen[bet.Player]; ok {
				continue
			}
			seen[bet.Player] = struct{}{}
			players = append(players, bet.Player)
		}
	}

	identities := r.resolveAll(ctx, players)

	cards := make([]models.RosterCard, 0, len(players))
	for i, player := range players {
		stats, ok := book.Get(player)
		if !ok || stats.TotalBets == 0 {
			continue
		}
		rate := stats.WinRate()
		cards = append(cards, models.RosterCard{
			Address:     player,
			DisplayName: models.DisplayName(player, identities[i]),
			Avatar:      models.AvatarURL(identities[i], models.AvatarSizeCard),
			TotalBets:   stats.TotalBets,
			WinRate:     rate,
			WinRateText: models.FormatWinRate(rate),
		})
	}
	return cards
}

// RenderPlayer builds the stats panel of one player. Unknown players return ErrPlayerNotFound.
func (r *Renderer) RenderPlayer(ctx context.Context, address string, book *StatsBook) (*models.PlayerDetail, error) {
	stats, ok := book.Get(address)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, address)
	}

	identity := r.identities.Resolve(ctx, address)
	return &models.PlayerDetail{
		Address:     address,
		DisplayName: models.DisplayName(address, identity),
		Avatar:      models.AvatarURL(identity, models.AvatarSizeDetail),
		TotalBets:   stats.TotalBets,
		TotalSpent:  stats.TotalSpent,
		Wins:        stats.Wins,
		Losses:      stats.Losses,
		WinRateText: models.FormatWinRate(stats.WinRate()),
	}, nil
}

// RenderFeed keeps the API order of history. Rounds without bets are left out.
func (r *Renderer) RenderFeed(ctx context.Context, history []models.BetHistoryItem) []models.FeedEntry {
	type row struct {
		item models.BetHistoryItem
		bet  models.Bet
	}

	var rows []row
	var players []string
	for _, item := range history {
		for _, bet := range r.aggregator.CountedBets(item) {
			rows = append(rows, row{item: item, bet: bet})
			players = append(players, bet.Player)
		}
	}

	identities := r.resolveAll(ctx, players)

	entries := make([]models.FeedEntry, 0, len(rows))
	for i, rw := range rows {
		entries = append(entries, models.FeedEntry{
			Round:       rw.item.Round,
			Timestamp:   rw.item.Timestamp,
			PlayedAt:    rw.item.Time().In(r.location).Format(playedAtLayout),
			Player:      rw.bet.Player,
			DisplayName: models.DisplayName(rw.bet.Player, identities[i]),
			Avatar:      models.AvatarURL(identities[i], models.AvatarSizeCard),
			Amount:      rw.bet.Amount,
			WinAmount:   rw.bet.WinAmount,
			SpinResult:  rw.bet.SpinResult,
			Outcome:     models.OutcomeOf(rw.bet),
		})
	}
	return entries
}

// resolveAll resolves addresses concurrently; result i belongs to addresses[i].
func (r *Renderer) resolveAll(ctx context.Context, addresses []string) []*models.ENSIdentity {
	out := make([]*models.ENSIdentity, len(addresses))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, address := range addresses {
		i, address := i, address
		g.Go(func() error {
			out[i] = r.identities.Resolve(ctx, address)
			return nil
		})
	}
	_ = g.Wait()

	return out
}
