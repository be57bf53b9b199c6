package cache

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/spaceshelter/orbitar-sub001/internal/logging"
)

// StoragePrefix namespaces persisted cache entries in the key-value store.
const StoragePrefix = "cache:"

// Storage is the persisted layer behind the local cache. GetItem returns
// (nil, nil) for an absent key.
type Storage interface {
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
}

type localRecord struct {
	Deps  []any           `json:"deps"`
	Value json.RawMessage `json:"value"`
}

type memoryRecord struct {
	deps  []any
	value any
}

// LocalCache is a memoized-value store keyed by (name, dependency tuple).
// A cached entry is valid only while a freshly supplied tuple matches the
// recorded one element-wise; any length or element mismatch is a miss, not
// an error. The in-memory table is consulted first; on a memory miss the
// persisted layer is tried and, when it deserializes, repopulates memory.
//
// Callers render the last-cached (possibly stale) value immediately while a
// live fetch is in flight, then write the fresh value back.
type LocalCache struct {
	mu      sync.Mutex
	entries map[string]memoryRecord
	storage Storage
	log     logging.Logger
}

// NewLocalCache constructs a cache over the given persisted layer.
// storage may be nil for a memory-only cache.
func NewLocalCache(storage Storage, log logging.Logger) *LocalCache {
	return &LocalCache{
		entries: make(map[string]memoryRecord),
		storage: storage,
		log:     log,
	}
}

// Clear drops every in-memory entry. The persisted layer is reset
// separately by the storage owner.
func (c *LocalCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryRecord)
}

// Read returns the cached value for (name, deps), or (nil, false) on a miss.
func (c *LocalCache) Read(ctx context.Context, name string, deps []any) (any, bool) {
	c.mu.Lock()
	rec, ok := c.entries[name]
	c.mu.Unlock()

	if !ok {
		loaded, found := c.loadPersisted(ctx, name)
		if !found {
			return nil, false
		}
		rec = loaded
	}

	if !depsMatch(rec.deps, deps) {
		return nil, false
	}
	return rec.value, true
}

// Write stores value under (name, deps). The in-memory table is always
// updated; the persisted layer only when every dependency is a primitive,
// so object-valued tuples never produce stale persisted comparisons.
// Persistence failures are logged and swallowed.
func (c *LocalCache) Write(ctx context.Context, name string, deps []any, value any) {
	depsCopy := make([]any, len(deps))
	copy(depsCopy, deps)

	c.mu.Lock()
	c.entries[name] = memoryRecord{deps: depsCopy, value: value}
	c.mu.Unlock()

	if c.storage == nil {
		return
	}
	for _, dep := range deps {
		if !isPrimitive(dep) {
			return
		}
	}

	data, err := json.Marshal(struct {
		Deps  []any `json:"deps"`
		Value any   `json:"value"`
	}{Deps: depsCopy, Value: value})
	if err != nil {
		c.log.Warn(ctx, "cache entry not serializable", "name", name, "error", err)
		return
	}
	if err := c.storage.SetItem(ctx, StoragePrefix+name, data); err != nil {
		c.log.Warn(ctx, "cache entry not persisted", "name", name, "error", err)
	}
}

// Get reads (name, deps) and decodes the value into T. Values recovered from
// the persisted layer are JSON-decoded on first access; values written in
// this process are type-asserted directly.
func Get[T any](ctx context.Context, c *LocalCache, name string, deps []any) (T, bool) {
	var zero T
	value, ok := c.Read(ctx, name, deps)
	if !ok {
		return zero, false
	}
	if raw, isRaw := value.(json.RawMessage); isRaw {
		var decoded T
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return zero, false
		}
		c.mu.Lock()
		if rec, held := c.entries[name]; held {
			rec.value = decoded
			c.entries[name] = rec
		}
		c.mu.Unlock()
		return decoded, true
	}
	typed, isT := value.(T)
	if !isT {
		return zero, false
	}
	return typed, true
}

func (c *LocalCache) loadPersisted(ctx context.Context, name string) (memoryRecord, bool) {
	if c.storage == nil {
		return memoryRecord{}, false
	}
	data, err := c.storage.GetItem(ctx, StoragePrefix+name)
	if err != nil || data == nil {
		return memoryRecord{}, false
	}
	var rec localRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt persisted entries are treated as misses.
		return memoryRecord{}, false
	}
	if rec.Deps == nil || rec.Value == nil {
		return memoryRecord{}, false
	}
	mem := memoryRecord{deps: rec.Deps, value: rec.Value}
	c.mu.Lock()
	c.entries[name] = mem
	c.mu.Unlock()
	return mem, true
}

func depsMatch(recorded, supplied []any) bool {
	if len(recorded) != len(supplied) {
		return false
	}
	for i := range recorded {
		if !depEqual(recorded[i], supplied[i]) {
			return false
		}
	}
	return true
}

// depEqual compares a single dependency element. Primitives compare by
// value (numeric types are normalized first, so an int written this run
// matches the float64 a JSON round trip yields); everything else compares
// by strict identity, matching only when both elements are the same
// comparable value.
func depEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum || bNum {
		return aNum && bNum && af == bf
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

func isPrimitive(dep any) bool {
	switch dep.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
