package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aegisshield/irregular-report/internal/config"
)

// RedisStore keeps exports in Redis with the ticket TTL as key expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisStore connects to the configured Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
		PoolSize: cfg.Redis.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Connected to redis ticket store", zap.String("addr", cfg.GetRedisAddr()))

	return &RedisStore{
		client: client,
		prefix: cfg.Redis.Prefix,
		logger: logger,
	}, nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, prefix string, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

func (s *RedisStore) key(ticket string) string {
	return s.prefix + ticket
}

// Put stores export under a fresh ticket.
func (s *RedisStore) Put(ctx context.Context, export *StoredExport, ttl time.Duration) (*StoredExport, error) {
	stored := *export
	stored.Ticket = newTicket()
	stored.CreatedAt = time.Now().UTC()
	stored.ExpiresAt = stored.CreatedAt.Add(ttl)

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}

	if err := s.client.Set(ctx, s.key(stored.Ticket), data, ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	s.logger.Debug("Export stored",
		zap.String("ticket", stored.Ticket),
		zap.String("export_id", stored.ExportID),
		zap.Duration("ttl", ttl),
	)

	return &stored, nil
}

// Take atomically reads and deletes the export stored under ticket.
func (s *RedisStore) Take(ctx context.Context, ticket string) (*StoredExport, error) {
	data, err := s.client.GetDel(ctx, s.key(ticket)).Bytes()
	return s.decode(data, err)
}

// Peek reads the export stored under ticket without redeeming it.
func (s *RedisStore) Peek(ctx context.Context, ticket string) (*StoredExport, error) {
	data, err := s.client.Get(ctx, s.key(ticket)).Bytes()
	return s.decode(data, err)
}

func (s *RedisStore) decode(data []byte, err error) (*StoredExport, error) {
	if errors.Is(err, redis.Nil) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	var stored StoredExport
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal export: %w", err)
	}
	return &stored, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
