package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spin-history-dashboard/internal/models"
)

type HistoryFetcher interface {
	FetchHistory(ctx context.Context) ([]models.BetHistoryItem, error)
}

// DashboardService runs fetch cycles: idle -> fetching -> aggregated -> rendered,
// or fetching -> failed. There are no retries; a failed cycle publishes nothing.
type DashboardService struct {
	history     HistoryFetcher
	aggregator  *Aggregator
	renderer    *Renderer
	broadcaster Broadcaster
	log         *zap.Logger

	cycleMu sync.Mutex

	mu      sync.RWMutex
	state   models.CycleState
	current *models.Dashboard
	book    *StatsBook
}

func NewDashboardService(history HistoryFetcher, aggregator *Aggregator, renderer *Renderer, log *zap.Logger) *DashboardService {
	return &DashboardService{
		history:    history,
		aggregator: aggregator,
		renderer:   renderer,
		log:        log,
		state:      models.StateIdle,
	}
}

// SetBroadcaster registers who gets each rendered dashboard.
func (s *DashboardService) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	s.broadcaster = b
	s.mu.Unlock()
}

// Refresh runs one cycle. Concurrent calls are serialized.
func (s *DashboardService) Refresh(ctx context.Context) (*models.Dashboard, error) {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	cycleID := uuid.NewString()
	log := s.log.With(zap.String("cycle_id", cycleID))
	s.setState(models.StateFetching)

	history, err := s.history.FetchHistory(ctx)
	if err != nil {
		log.Error("Error fetching history", zap.String("kind", ErrorKind(err)), zap.Error(err))
		s.setState(models.StateFailed)
		return nil, err
	}

	book, report := s.aggregator.Aggregate(history)
	if report.Skipped > 0 {
		log.Warn("skipped rounds without bets", zap.Int("skipped", report.Skipped), zap.Int("rounds", report.Rounds))
	}
	s.setState(models.StateAggregated)

	roster := s.renderer.RenderRoster(ctx, history, book)
	feed := s.renderer.RenderFeed(ctx, history)

	dashboard := &models.Dashboard{
		CycleID:    cycleID,
		State:      models.StateRendered,
		RenderedAt: time.Now(),
		Skipped:    report.Skipped,
		Roster:     roster,
		Feed:       feed,
	}

	s.mu.Lock()
	s.current = dashboard
	s.book = book
	s.state = models.StateRendered
	broadcaster := s.broadcaster
	s.mu.Unlock()

	log.Info("dashboard rendered",
		zap.Int("rounds", report.Rounds),
		zap.Int("players", book.Len()),
		zap.Int("feed_entries", len(feed)),
	)

	if broadcaster != nil {
		broadcaster.BroadcastDashboard(dashboard)
	}
	return dashboard, nil
}

// Snapshot returns the last published dashboard with the current state.
// Before the first successful cycle all views are empty.
func (s *DashboardService) Snapshot() models.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return models.Dashboard{
			State:  s.state,
			Roster: []models.RosterCard{},
			Feed:   []models.FeedEntry{},
		}
	}
	out := *s.current
	out.State = s.state
	return out
}

func (s *DashboardService) State() models.CycleState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Player renders the stats panel for address from the last published cycle.
func (s *DashboardService) Player(ctx context.Context, address string) (*models.PlayerDetail, error) {
	s.mu.RLock()
	book := s.book
	s.mu.RUnlock()

	return s.renderer.RenderPlayer(ctx, address, book)
}

// Stats returns the counters of the last published cycle.
func (s *DashboardService) Stats() map[string]models.PlayerStats {
	s.mu.RLock()
	book := s.book
	s.mu.RUnlock()

	return book.Snapshot()
}

func (s *DashboardService) setState(state models.CycleState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
