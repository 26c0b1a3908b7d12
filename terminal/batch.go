package terminal

import "iter"

// Item is one event in a Batch with its claim flag
type Item struct {
	Event   Event
	claimed bool
}

// Claim marks the item handled so later handlers skip it.
// Claiming twice is a programming fault
func (it *Item) Claim() {
	if it.claimed {
		panic(ErrAlreadyClaimed)
	}
	it.claimed = true
}

// Claimed reports whether a handler has taken the item
func (it *Item) Claimed() bool {
	return it.claimed
}

// Batch holds the events drained in one main-loop iteration.
// Handlers iterate it in priority order, claiming what they handle.
// Events must not be added while an iteration is in progress
type Batch struct {
	items []Item
}

// NewBatch creates a batch with room for n events
func NewBatch(n int) *Batch {
	return &Batch{items: make([]Item, 0, n)}
}

// Add appends an unclaimed event
func (b *Batch) Add(ev Event) {
	b.items = append(b.items, Item{Event: ev})
}

// Clear empties the batch, keeping capacity
func (b *Batch) Clear() {
	clear(b.items)
	b.items = b.items[:0]
}

// Len returns the number of events, claimed or not
func (b *Batch) Len() int {
	return len(b.items)
}

// Unclaimed returns the number of events not yet claimed
func (b *Batch) Unclaimed() int {
	n := 0
	for i := range b.items {
		if !b.items[i].claimed {
			n++
		}
	}
	return n
}

// All yields unclaimed items in arrival order. The claim flag is checked
// as each item is reached, so claims made during iteration are honoured
func (b *Batch) All() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for i := range b.items {
			it := &b.items[i]
			if it.claimed {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}
