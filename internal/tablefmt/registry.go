package tablefmt

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]TableInfo)
	registryMu sync.RWMutex
)

// TableInfo describes a registered table layout.
type TableInfo struct {
	Key     string   // Unique identifier: "driver_statistics"
	Label   string   // Display name
	Columns []string // Header names in declaration order
	Kinds   []Kind   // Codec kind per column
}

// Register records the layout of s under key.
// Panics if a table with the same key is already registered.
func Register[T any](key, label string, s *Schema[T]) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("table already registered: %s", key))
	}

	kinds := make([]Kind, len(s.columns))
	for i, c := range s.columns {
		kinds[i] = c.Kind
	}

	registry[key] = TableInfo{
		Key:     key,
		Label:   label,
		Columns: s.Names(),
		Kinds:   kinds,
	}
}

// Lookup returns a table layout by key.
func Lookup(key string) (TableInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	info, ok := registry[key]
	return info, ok
}

// Tables returns all registered layouts sorted by key.
func Tables() []TableInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TableInfo, 0, len(registry))
	for _, info := range registry {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}
