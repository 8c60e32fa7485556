package services_test

import (
	"context"
	"sync"
	"sync/atomic"

	"spin-history-dashboard/internal/models"
)

type fakeLookup struct {
	mu         sync.Mutex
	identities map[string]*models.ENSIdentity
	err        error
	calls      atomic.Int64
	perAddress map[string]int
	gate       chan struct{}
}

func newFakeLookup(identities map[string]*models.ENSIdentity) *fakeLookup {
	return &fakeLookup{
		identities: identities,
		perAddress: make(map[string]int),
	}
}

func (f *fakeLookup) Lookup(ctx context.Context, address string) (*models.ENSIdentity, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.perAddress[address]++
	gate := f.gate
	err := f.err
	identity, ok := f.identities[address]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return &models.ENSIdentity{}, nil
	}
	return identity, nil
}

func (f *fakeLookup) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeLookup) callsFor(address string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.perAddress[address]
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*models.ENSIdentity
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]*models.ENSIdentity)}
}

func (m *memoryStore) GetIdentity(ctx context.Context, address string) (*models.ENSIdentity, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, false, m.err
	}
	identity, ok := m.entries[address]
	return identity, ok, nil
}

func (m *memoryStore) StoreIdentity(ctx context.Context, address string, identity *models.ENSIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries[address] = identity
	return nil
}

func bet(player string, amount, winAmount float64) models.Bet {
	return models.Bet{Player: player, Amount: amount, WinAmount: winAmount, SpinResult: "7-7-7"}
}

func round(n int64, bets ...models.Bet) models.BetHistoryItem {
	return models.BetHistoryItem{Round: n, Timestamp: 1700000000000 + n*60000, Bets: bets}
}
