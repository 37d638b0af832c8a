package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ProviderStatus is the last observed state of an external provider.
type ProviderStatus struct {
	Provider    string
	Healthy     bool
	LastLatency time.Duration
	LastError   string
	ObservedAt  time.Time
}

// ProviderHealthStore tracks recent provider outcomes so callers can skip a
// provider that just failed instead of paying the timeout again.
type ProviderHealthStore struct {
	cache *cache.Cache
}

func NewProviderHealthStore() *ProviderHealthStore {
	// Entries expire after 30 seconds so a failing provider is retried soon
	c := cache.New(30*time.Second, 1*time.Minute)
	return &ProviderHealthStore{
		cache: c,
	}
}

func (r *ProviderHealthStore) Record(provider string, healthy bool, latency time.Duration, errMsg string) {
	r.cache.Set(provider, &ProviderStatus{
		Provider:    provider,
		Healthy:     healthy,
		LastLatency: latency,
		LastError:   errMsg,
		ObservedAt:  time.Now(),
	}, cache.DefaultExpiration)
}

func (r *ProviderHealthStore) Get(provider string) (*ProviderStatus, bool) {
	if x, found := r.cache.Get(provider); found {
		return x.(*ProviderStatus), true
	}
	return nil, false
}

// MarkedUnhealthy reports whether the provider failed within the expiry
// window. A missing entry counts as healthy.
func (r *ProviderHealthStore) MarkedUnhealthy(provider string) bool {
	status, found := r.Get(provider)
	return found && !status.Healthy
}
