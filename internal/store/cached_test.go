package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/registration-api/internal/models"
)

type countingStore struct {
	Store
	gets    atomic.Int32
	records map[string]models.Registration
	err     error
	delay   time.Duration
}

func (c *countingStore) GetByID(ctx context.Context, id string) (models.Registration, bool, error) {
	c.gets.Add(1)
	time.Sleep(c.delay)
	if c.err != nil {
		return models.Registration{}, false, c.err
	}
	r, ok := c.records[id]
	return r, ok, nil
}

func (c *countingStore) Insert(ctx context.Context, f models.RegistrationFields) (models.Registration, error) {
	r := models.Registration{ID: "new-id", RegistrationFields: f}
	c.records[r.ID] = r
	return r, nil
}

func TestCached_ServesHitsFromMemory(t *testing.T) {
	backend := &countingStore{records: map[string]models.Registration{
		"id-1": {ID: "id-1", RegistrationFields: models.RegistrationFields{FullName: "Jane Doe"}},
	}}
	c := NewCached(backend, time.Minute)

	for i := 0; i < 3; i++ {
		reg, ok, err := c.GetByID(context.Background(), "id-1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Jane Doe", reg.FullName)
	}
	assert.Equal(t, int32(1), backend.gets.Load())
}

func TestCached_DoesNotCacheMisses(t *testing.T) {
	backend := &countingStore{records: map[string]models.Registration{}}
	c := NewCached(backend, time.Minute)

	for i := 0; i < 2; i++ {
		_, ok, err := c.GetByID(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, int32(2), backend.gets.Load())
}

func TestCached_PropagatesErrors(t *testing.T) {
	backend := &countingStore{err: storageErr("get by id", errors.New("disk on fire"))}
	c := NewCached(backend, time.Minute)

	_, _, err := c.GetByID(context.Background(), "id-1")
	assert.True(t, IsStorageError(err))
}

func TestCached_CollapsesConcurrentMisses(t *testing.T) {
	backend := &countingStore{
		records: map[string]models.Registration{"id-1": {ID: "id-1"}},
		delay:   50 * time.Millisecond,
	}
	c := NewCached(backend, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := c.GetByID(context.Background(), "id-1")
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	assert.Less(t, backend.gets.Load(), int32(10))
}

func TestCached_InsertPrimesCache(t *testing.T) {
	backend := &countingStore{records: map[string]models.Registration{}}
	c := NewCached(backend, time.Minute)

	reg, err := c.Insert(context.Background(), models.RegistrationFields{FullName: "Jane Doe"})
	require.NoError(t, err)

	_, ok, err := c.GetByID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(0), backend.gets.Load())
}
