// Package session keeps login state in Redis behind an opaque cookie token.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindProvider Kind = "provider"
	KindUser     Kind = "user"
)

type Session struct {
	Token     string `json:"-"`
	Kind      Kind   `json:"kind"`
	SubjectID string `json:"subject_id"`
	Email     string `json:"email"`
}

func (s *Session) LogFields() logrus.Fields {
	if s == nil {
		return logrus.Fields{}
	}
	return logrus.Fields{"session_kind": string(s.Kind), "subject_id": s.SubjectID}
}

type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, kind Kind, subjectID, email string) (*Session, error) {
	sess := &Session{
		Token:     uuid.New().String(),
		Kind:      kind,
		SubjectID: subjectID,
		Email:     email,
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, key(sess.Token), payload, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

// Get returns (nil, nil) for an unknown or expired token.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := s.client.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	sess := &Session{}
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	sess.Token = token
	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, key(token)).Err()
}

func key(token string) string {
	return "session:" + token
}
