package amazonapi

import "sync"

// Record is anything the accumulator can hold. Key returns the
// deduplication key: the ASIN for listings and details, the review ID for
// reviews.
type Record interface {
	Key() string
}

// Accumulator is an insertion-ordered mapping from record key to record.
// A run's orchestrator owns it exclusively; workers only append through
// Put. Duplicate keys are resolved last-write-wins in place, so a record
// keeps the slot of its first appearance.
type Accumulator struct {
	mu    sync.Mutex
	index map[string]int
	items []Record
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{index: make(map[string]int)}
}

// Put inserts or replaces the record under its key. It reports whether the
// key was already present.
func (a *Accumulator) Put(rec Record) bool {
	if rec == nil || rec.Key() == "" {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if i, ok := a.index[rec.Key()]; ok {
		a.items[i] = rec
		return true
	}
	a.index[rec.Key()] = len(a.items)
	a.items = append(a.items, rec)
	return false
}

// Get returns the record stored under key.
func (a *Accumulator) Get(key string) (Record, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i, ok := a.index[key]
	if !ok {
		return nil, false
	}
	return a.items[i], true
}

// Len returns the number of distinct records held.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}

// Records returns the held records in insertion order. The returned slice
// is a copy; mutating it does not affect the accumulator.
func (a *Accumulator) Records() []Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Record, len(a.items))
	copy(out, a.items)
	return out
}
