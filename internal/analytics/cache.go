package analytics

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// CacheValidity is how long a cached analytics result stays usable.
const CacheValidity = 5 * time.Minute

// CacheKey is the composite identity of one cached result: who, which
// period, and which program filter.
type CacheKey struct {
	UserID    string
	Scope     string // "2024", "2024-12", or "from..to"
	ProgramID string
}

func (k CacheKey) String() string {
	programID := k.ProgramID
	if programID == "" {
		programID = "all"
	}
	return fmt.Sprintf("%s|%s|%s", k.UserID, k.Scope, programID)
}

// MonthScope is the cache scope string for one calendar month.
func MonthScope(year int, month time.Month) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

func YearScope(year int) string {
	return fmt.Sprintf("%d", year)
}

type cacheEnvelope struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Data      json.RawMessage `json:"data"`
}

// Cache memoizes analytics results as JSON in freecache. Validity is
// decided at read time from the stored fetchedAt; the freecache TTL is
// just a backstop that lets stale entries fall out on their own.
type Cache struct {
	store *freecache.Cache
	nowFn func() time.Time
}

func NewCache(sizeBytes int, nowFn func() time.Time) *Cache {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Cache{
		store: freecache.NewCache(sizeBytes),
		nowFn: nowFn,
	}
}

// Get loads a still-valid entry into dst and reports whether it found one.
func (c *Cache) Get(key CacheKey, dst any) bool {
	cached, err := c.store.Get([]byte(key.String()))
	if err != nil {
		// freecache returns ErrNotFound for both missing and evicted
		return false
	}

	var envelope cacheEnvelope
	if err := json.Unmarshal(cached, &envelope); err != nil {
		log.Errorf("analytics cache, unmarshal envelope for %s: %s", key, err)
		return false
	}
	if c.nowFn().Sub(envelope.FetchedAt) >= CacheValidity {
		return false
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		log.Errorf("analytics cache, unmarshal data for %s: %s", key, err)
		return false
	}
	return true
}

func (c *Cache) Set(key CacheKey, fetchedAt time.Time, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Errorf("analytics cache, marshal data for %s: %s", key, err)
		return
	}
	envelope, err := json.Marshal(cacheEnvelope{
		FetchedAt: fetchedAt,
		Data:      data,
	})
	if err != nil {
		log.Errorf("analytics cache, marshal envelope for %s: %s", key, err)
		return
	}

	if err := c.store.Set([]byte(key.String()), envelope, int(CacheValidity.Seconds())); err != nil {
		log.Errorf("analytics cache, set %s: %s", key, err)
	}
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.store.Clear()
}
