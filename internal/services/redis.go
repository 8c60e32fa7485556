package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"spin-history-dashboard/internal/config"
	"spin-history-dashboard/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisService is the shared identity store behind the in-process cache.
type RedisService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisService(ctx context.Context, cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.IdentityTTL
	if ttl <= 0 {
		ttl = TTLIdentity
	}

	return &RedisService{
		client: client,
		ttl:    ttl,
	}, nil
}

func identityKey(address string) string {
	return fmt.Sprintf(KeyIdentity, strings.ToLower(address))
}

// GetIdentity returns ok=false when the address has no stored identity.
func (s *RedisService) GetIdentity(ctx context.Context, address string) (*models.ENSIdentity, bool, error) {
	data, err := s.client.Get(ctx, identityKey(address)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get identity: %w", err)
	}

	var identity models.ENSIdentity
	if err := json.Unmarshal([]byte(data), &identity); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal identity: %w", err)
	}
	return &identity, true, nil
}

func (s *RedisService) StoreIdentity(ctx context.Context, address string, identity *models.ENSIdentity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}
	return s.client.Set(ctx, identityKey(address), data, s.ttl).Err()
}

func (s *RedisService) DeleteIdentity(ctx context.Context, address string) error {
	return s.client.Del(ctx, identityKey(address)).Err()
}

func (s *RedisService) Close() error {
	return s.client.Close()
}
