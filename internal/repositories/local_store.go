package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrCorruptValue = errors.New("stored value is corrupt")

// DecodeFunc turns a stored document into a value.
type DecodeFunc[T any] func(data []byte) (T, error)

// LocalStore keeps one JSON value under a fixed key of a KVRepository.
// Reads of a missing key yield the default value.
type LocalStore[T any] struct {
	kv     KVRepository
	key    string
	def    T
	decode DecodeFunc[T]
}

func NewLocalStore[T any](kv KVRepository, key string, def T) *LocalStore[T] {
	return &LocalStore[T]{
		kv:  kv,
		key: key,
		def: def,
		decode: func(data []byte) (T, error) {
			var v T
			err := json.Unmarshal(data, &v)
			return v, err
		},
	}
}

// WithDecoder replaces the plain JSON decoder, e.g. to migrate older shapes.
func (s *LocalStore[T]) WithDecoder(decode DecodeFunc[T]) *LocalStore[T] {
	if decode != nil {
		s.decode = decode
	}
	return s
}

func (s *LocalStore[T]) Key() string { return s.key }

// Get returns the stored value. A value that cannot be decoded yields the
// default together with an error wrapping ErrCorruptValue.
func (s *LocalStore[T]) Get(ctx context.Context) (T, error) {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return s.def, err
	}
	if !ok {
		return s.def, nil
	}
	v, err := s.decode(data)
	if err != nil {
		return s.def, fmt.Errorf("%w: %s: %w", ErrCorruptValue, s.key, err)
	}
	return v, nil
}

// Set writes v in full, replacing whatever was stored.
func (s *LocalStore[T]) Set(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.key, err)
	}
	return s.kv.Put(ctx, s.key, data)
}

// Quarantine copies the raw stored value to a timestamped backup key and
// resets the key to the default value, so the backup is taken only once.
// It returns the backup key, or "" when nothing is stored.
func (s *LocalStore[T]) Quarantine(ctx context.Context) (string, error) {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil || !ok {
		return "", err
	}
	if !json.Valid(data) {
		wrapped, err := json.Marshal(string(data))
		if err != nil {
			return "", err
		}
		data = wrapped
	}
	backup := fmt.Sprintf("%s.corrupt-%d", s.key, time.Now().UTC().UnixNano())
	if err := s.kv.Put(ctx, backup, data); err != nil {
		return "", err
	}
	if err := s.Set(ctx, s.def); err != nil {
		return backup, fmt.Errorf("resetting %s: %w", s.key, err)
	}
	return backup, nil
}
