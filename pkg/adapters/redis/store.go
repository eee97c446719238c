package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "absher:"

// TranscriptStore implements ports.TranscriptStore using Redis lists.
// Each session is one list of JSON entries; a sorted set indexes sessions by expiry.
type TranscriptStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the store.
type Option func(*TranscriptStore)

// WithTTL expires a transcript ttl after its last append. Zero keeps it forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *TranscriptStore) {
		s.ttl = ttl
	}
}

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *TranscriptStore) {
		s.prefix = prefix
	}
}

// New connects to Redis at addr.
func New(addr, password string, db int, opts ...Option) *TranscriptStore {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *TranscriptStore {
	s := &TranscriptStore{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client returns the underlying client.
func (s *TranscriptStore) Client() *backend.Client {
	return s.client
}

func (s *TranscriptStore) key(sessionID string) string {
	return s.prefix + "transcript:" + sessionID
}

func (s *TranscriptStore) indexKey() string {
	return s.prefix + "transcripts"
}

// Ping checks connectivity.
func (s *TranscriptStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Append adds an entry to the session's transcript.
func (s *TranscriptStore) Append(ctx context.Context, sessionID string, entry ports.TranscriptEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript entry: %w", err)
	}

	score := math.Inf(1)
	if s.ttl > 0 {
		score = float64(time.Now().Add(s.ttl).Unix())
	}

	key := s.key(sessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sessionID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append transcript entry: %w", err)
	}
	return nil
}

// List returns the transcript in append order.
func (s *TranscriptStore) List(ctx context.Context, sessionID string) ([]ports.TranscriptEntry, error) {
	raw, err := s.client.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	entries := make([]ports.TranscriptEntry, 0, len(raw))
	for _, item := range raw {
		var e ports.TranscriptEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("corrupt transcript entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Sessions returns the ids of transcripts that have not expired.
// Expired index members are removed lazily.
func (s *TranscriptStore) Sessions(ctx context.Context) ([]string, error) {
	if s.ttl > 0 {
		now := strconv.FormatInt(time.Now().Unix(), 10)
		if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", "("+now).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune transcript index: %w", err)
		}
	}
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	return ids, nil
}

// Close closes the client.
func (s *TranscriptStore) Close() error {
	return s.client.Close()
}
