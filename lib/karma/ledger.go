// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karma

import (
	"fmt"
	"sort"
	"sync"
)

// Store persists the complete item list. The ledger calls Save with
// every item on each mutation; implementations must replace the stored
// contents atomically so that concurrent readers never observe a
// partial write.
type Store interface {
	Save(items []Item) error
}

// Ledger tracks karma standings backed by a Store. All methods are
// safe for concurrent use: one mutex serializes every
// read-modify-write cycle, including the persist, so updates reach
// the store in a total order.
type Ledger struct {
	mu    sync.Mutex
	items map[string]*Item
	store Store
}

// NewLedger builds a ledger over previously loaded items, typically
// the result of a store load at service startup.
func NewLedger(items []Item, store Store) *Ledger {
	ledger := &Ledger{
		items: make(map[string]*Item, len(items)),
		store: store,
	}
	for _, item := range items {
		copied := item
		ledger.items[item.Name] = &copied
	}
	return ledger
}

// Increment awards name one plus, creating the record if absent, and
// persists the updated ledger. Returns the item after the update.
func (l *Ledger) Increment(name string) (Item, error) {
	return l.bump(name, 1, 0)
}

// Decrement charges name one minus, creating the record if absent,
// and persists the updated ledger. Returns the item after the update.
func (l *Ledger) Decrement(name string) (Item, error) {
	return l.bump(name, 0, 1)
}

func (l *Ledger) bump(name string, pluses, minuses int) (Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, existed := l.items[name]
	if !existed {
		item = &Item{Name: name}
		l.items[name] = item
	}
	item.Pluses += pluses
	item.Minuses += minuses

	if err := l.store.Save(l.snapshotLocked()); err != nil {
		// The file still holds the previous state; roll the memory
		// side back so the two never diverge.
		item.Pluses -= pluses
		item.Minuses -= minuses
		if !existed {
			delete(l.items, name)
		}
		return Item{}, fmt.Errorf("saving ledger: %w", err)
	}
	return *item, nil
}

// Get returns the item for name and whether it is tracked.
func (l *Ledger) Get(name string) (Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	item, ok := l.items[name]
	if !ok {
		return Item{}, false
	}
	return *item, true
}

// Items returns a snapshot of every tracked item, sorted by name.
func (l *Ledger) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Len returns the number of tracked items.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// snapshotLocked copies the item map into a name-sorted slice. Sorted
// output keeps saved files deterministic for a given ledger state.
// Callers must hold mu.
func (l *Ledger) snapshotLocked() []Item {
	items := make([]Item, 0, len(l.items))
	for _, item := range l.items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
