package memory

import (
	"time"

	"neurax-chat-be/internal/constant"

	"github.com/patrickmn/go-cache"
)

const presenceKey = "mood"

// PresenceRepository stores the current companion mood. Moods with a TTL fall
// back to idle once they expire, which gives the decay-to-idle behavior for
// free.
type PresenceRepository struct {
	cache *cache.Cache
}

func NewPresenceRepository() *PresenceRepository {
	return &PresenceRepository{
		cache: cache.New(cache.NoExpiration, time.Second),
	}
}

// Set records a mood. A zero ttl keeps it until the next Set.
func (r *PresenceRepository) Set(mood string, ttl time.Duration) {
	if ttl <= 0 {
		r.cache.Set(presenceKey, mood, cache.NoExpiration)
		return
	}
	r.cache.Set(presenceKey, mood, ttl)
}

func (r *PresenceRepository) Current() string {
	if v, ok := r.cache.Get(presenceKey); ok {
		if mood, ok := v.(string); ok {
			return mood
		}
	}
	return constant.MoodIdle
}
