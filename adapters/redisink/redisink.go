// Package redisink counts contract violations in Redis, keyed by the
// failing constraint's rendered form.
package redisink

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	covenant "github.com/covenant/covenant-go"
)

// Config holds Redis sink configuration.
type Config struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`

	// RecentSize bounds the per-prefix list of recent violation IDs.
	RecentSize int64 `json:"recent_size" yaml:"recent_size"`
}

// Sink increments a per-constraint counter and keeps a capped list of
// recent violation IDs.
type Sink struct {
	config *Config
	client *redis.Client
}

// NewSink creates a Redis-backed violation sink.
func NewSink(config *Config) (*Sink, error) {
	if config == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if config.Addr == "" {
		return nil, fmt.Errorf("addr is required")
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "covenant"
	}
	if config.RecentSize == 0 {
		config.RecentSize = 100
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	return &Sink{config: config, client: client}, nil
}

func (s *Sink) Record(ctx context.Context, v *covenant.Violation) error {
	counter := fmt.Sprintf("%s:count:%s", s.config.KeyPrefix, v.Constraint)
	recent := s.config.KeyPrefix + ":recent"

	pipe := s.client.TxPipeline()
	pipe.Incr(ctx, counter)
	pipe.LPush(ctx, recent, fmt.Sprintf("%s %s %s", v.ID, time.Now().UTC().Format(time.RFC3339), v.Location))
	pipe.LTrim(ctx, recent, 0, s.config.RecentSize-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording violation: %w", err)
	}
	return nil
}

// Count returns the number of violations recorded for a rendered
// constraint.
func (s *Sink) Count(ctx context.Context, rendered string) (int64, error) {
	n, err := s.client.Get(ctx, fmt.Sprintf("%s:count:%s", s.config.KeyPrefix, rendered)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

func (s *Sink) Close() error { return s.client.Close() }
