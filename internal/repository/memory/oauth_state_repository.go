package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const OAuthStateTTL = 10 * time.Minute

// OAuthStateRepository keeps the anti-forgery state of in-flight Google
// sign-ins. Each state can be consumed once.
type OAuthStateRepository struct {
	cache *cache.Cache
}

func NewOAuthStateRepository() *OAuthStateRepository {
	return &OAuthStateRepository{
		cache: cache.New(OAuthStateTTL, 5*time.Minute),
	}
}

func (r *OAuthStateRepository) Save(state string) {
	r.cache.Set(state, struct{}{}, cache.DefaultExpiration)
}

// Consume reports whether state was issued and not yet used or expired.
func (r *OAuthStateRepository) Consume(state string) bool {
	if state == "" {
		return false
	}
	if _, found := r.cache.Get(state); !found {
		return false
	}
	r.cache.Delete(state)
	return true
}
