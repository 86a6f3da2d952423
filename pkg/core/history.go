package core

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/lunahealth/cyclecare-go/pkg/kvstore"
)

// historyKey is the key-value store key holding the serialized history log.
const historyKey = "food_history"

// DefaultHistoryLimit is the maximum number of retained analyses when no
// limit is configured.
const DefaultHistoryLimit = 100

// HistoryLog owns the ordered collection of food-analysis results.
//
// The log is append-only and newest-first. On overflow the oldest entries
// are evicted, never the new one rejected. Items are immutable after
// insertion. The log is the sole writer of the history key.
type HistoryLog struct {
	// store is the backing key-value store.
	store kvstore.Store

	// items holds the analyses, most recent first.
	items []FoodAnalysisItem

	// limit is the maximum retained size.
	limit int

	// mu protects concurrent access to the items.
	mu sync.RWMutex
}

// NewHistoryLog creates a HistoryLog backed by the given key-value store.
//
// limit caps the retained size; values below 1 fall back to
// DefaultHistoryLimit. Malformed or missing stored data yields an empty
// history, never an error.
func NewHistoryLog(store kvstore.Store, limit int) *HistoryLog {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}

	l := &HistoryLog{
		store: store,
		items: []FoodAnalysisItem{},
		limit: limit,
	}

	data, err := store.Get(context.Background(), historyKey)
	if err != nil {
		if err != kvstore.ErrKeyNotFound {
			log.Printf("cyclecare: history load failed, starting empty: %v", err)
		}
		return l
	}

	var loaded []FoodAnalysisItem
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Printf("cyclecare: history parse failed, starting empty: %v", err)
		return l
	}
	if len(loaded) > limit {
		loaded = loaded[:limit]
	}
	l.items = loaded
	return l
}

// List returns the analyses, most recent first. Reading never mutates.
func (l *HistoryLog) List() []FoodAnalysisItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]FoodAnalysisItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of retained analyses.
func (l *HistoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Append prepends the item and persists the truncated list.
//
// The compatibility invariant is enforced on the way in: a score of 80 or
// above clears the alternatives list. When the log exceeds its limit the
// oldest entries are evicted.
func (l *HistoryLog) Append(item FoodAnalysisItem) {
	if item.PCOSCompatibility >= 80 {
		item.Alternatives = []string{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = append([]FoodAnalysisItem{item}, l.items...)
	if len(l.items) > l.limit {
		l.items = l.items[:l.limit]
	}
	l.persistLocked()
}

// Reset empties the log and removes the persisted record. Used on logout.
func (l *HistoryLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = []FoodAnalysisItem{}
	if err := l.store.Delete(context.Background(), historyKey); err != nil {
		log.Printf("cyclecare: history delete failed: %v", err)
	}
}

// persistLocked writes the full list under the history key.
// Callers must hold mu.
func (l *HistoryLog) persistLocked() {
	data, err := json.Marshal(l.items)
	if err != nil {
		log.Printf("cyclecare: history marshal failed: %v", err)
		return
	}
	if err := l.store.Set(context.Background(), historyKey, data); err != nil {
		log.Printf("cyclecare: history write failed: %v", err)
	}
}
