package memory

import (
	"time"

	"spiritual-guidance-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const catalogKey = "service_types:enabled"

// CatalogCache keeps the enabled service-type list in memory so the hot
// session-start path does not hit the database for pricing on every request.
type CatalogCache struct {
	cache *cache.Cache
}

func NewCatalogCache() *CatalogCache {
	// Create a cache with a default expiration time of 5 minutes, and which
	// purges expired items every 10 minutes
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &CatalogCache{
		cache: c,
	}
}

func (r *CatalogCache) SaveAll(types []*entity.ServiceType) {
	r.cache.Set(catalogKey, types, cache.DefaultExpiration)
	for _, t := range types {
		r.cache.Set("service_type:"+t.Name, t, cache.DefaultExpiration)
	}
}

func (r *CatalogCache) GetAll() ([]*entity.ServiceType, bool) {
	if x, found := r.cache.Get(catalogKey); found {
		return x.([]*entity.ServiceType), true
	}
	return nil, false
}

func (r *CatalogCache) GetByName(name string) (*entity.ServiceType, bool) {
	if x, found := r.cache.Get("service_type:" + name); found {
		return x.(*entity.ServiceType), true
	}
	return nil, false
}

func (r *CatalogCache) Invalidate() {
	r.cache.Flush()
}
