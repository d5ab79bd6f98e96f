package store

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/gdg-garage/registration-api/internal/models"
)

// Cached serves card lookups from memory. Registrations are never updated
// once written, so a cached record cannot go stale; only hits are cached.
type Cached struct {
	Store
	cache *gocache.Cache
	group singleflight.Group
}

func NewCached(next Store, ttl time.Duration) *Cached {
	return &Cached{
		Store: next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

type lookup struct {
	registration models.Registration
	found        bool
}

func (c *Cached) GetByID(ctx context.Context, id string) (models.Registration, bool, error) {
	if v, ok := c.cache.Get(id); ok {
		if registration, ok := v.(models.Registration); ok {
			return registration, true, nil
		}
	}

	v, err, _ := c.group.Do(id, func() (any, error) {
		registration, found, err := c.Store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			c.cache.SetDefault(id, registration)
		}
		return lookup{registration: registration, found: found}, nil
	})
	if err != nil {
		return models.Registration{}, false, err
	}

	res := v.(lookup)
	return res.registration, res.found, nil
}

func (c *Cached) Insert(ctx context.Context, fields models.RegistrationFields) (models.Registration, error) {
	registration, err := c.Store.Insert(ctx, fields)
	if err != nil {
		return registration, err
	}
	c.cache.SetDefault(registration.ID, registration)
	return registration, nil
}
