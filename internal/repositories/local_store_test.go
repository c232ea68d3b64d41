package repositories

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovateai/internal/tests/mocks"
)

type counter struct {
	Count int `json:"count"`
}

func TestLocalStore_MissingKeyYieldsDefault(t *testing.T) {
	store := NewLocalStore(mocks.NewMemoryKV(), "counter", counter{Count: 7})

	v, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, counter{Count: 7}, v)
}

func TestLocalStore_SetThenGet(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMemoryKV()
	store := NewLocalStore(kv, "counter", counter{})

	require.NoError(t, store.Set(ctx, counter{Count: 3}))

	v, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, counter{Count: 3}, v)
	assert.JSONEq(t, `{"count":3}`, string(kv.Raw("counter")))
}

func TestLocalStore_CorruptValueFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, "counter", []byte(`{"count":`)))
	store := NewLocalStore(kv, "counter", counter{Count: 1})

	v, err := store.Get(ctx)

	assert.ErrorIs(t, err, ErrCorruptValue)
	assert.Equal(t, counter{Count: 1}, v)
}

func TestLocalStore_CustomDecoder(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, "counter", []byte(`42`)))
	store := NewLocalStore(kv, "counter", counter{}).WithDecoder(func(data []byte) (counter, error) {
		if string(data) == "42" {
			return counter{Count: 42}, nil
		}
		return counter{}, errors.New("unexpected")
	})

	v, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, v.Count)
}

func TestLocalStore_ReadErrorIsReturned(t *testing.T) {
	boom := errors.New("disk gone")
	kv := &mocks.KVRepositoryMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, bool, error) {
			return nil, false, boom
		},
	}

	_, err := NewLocalStore(kv, "counter", counter{}).Get(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLocalStore_QuarantineKeepsRawValue(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, "counter", []byte(`not json`)))
	store := NewLocalStore(kv, "counter", counter{})

	backup, err := store.Quarantine(ctx)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(backup, "counter.corrupt-"))
	assert.Equal(t, `"not json"`, string(kv.Raw(backup)))
	assert.JSONEq(t, `{"count":0}`, string(kv.Raw("counter")))
}

func TestLocalStore_QuarantineResetsKey(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, "counter", []byte(`{"count":`)))
	store := NewLocalStore(kv, "counter", counter{Count: 5})

	_, err := store.Get(ctx)
	require.ErrorIs(t, err, ErrCorruptValue)
	_, err = store.Quarantine(ctx)
	require.NoError(t, err)

	v, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, counter{Count: 5}, v)
	assert.Len(t, kv.Keys(), 2)
}

func TestLocalStore_QuarantineNothingStored(t *testing.T) {
	backup, err := NewLocalStore(mocks.NewMemoryKV(), "counter", counter{}).Quarantine(context.Background())
	require.NoError(t, err)
	assert.Empty(t, backup)
}
