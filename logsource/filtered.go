package logsource

// Filtered is the visible subset of a Store under a Chain. It implements
// the line source a scroll view displays
type Filtered struct {
	store   *Store
	chain   *Chain
	index   []int // store positions of visible lines; unused when the chain passes all
	scanned int   // store lines already considered
}

// NewFiltered indexes store under chain
func NewFiltered(store *Store, chain *Chain) *Filtered {
	f := &Filtered{store: store}
	f.SetChain(chain)
	return f
}

// Chain returns the active chain
func (f *Filtered) Chain() *Chain { return f.chain }

// Store returns the underlying store
func (f *Filtered) Store() *Store { return f.store }

// SetChain replaces the chain and rebuilds the index
func (f *Filtered) SetChain(chain *Chain) {
	f.chain = chain
	f.Rebuild()
}

// Rebuild re-scans the whole store
func (f *Filtered) Rebuild() {
	f.index = f.index[:0]
	f.scanned = 0
	f.Extend()
}

// Extend considers store lines appended since the last call and returns
// the number that became visible
func (f *Filtered) Extend() int {
	n := f.store.Len()
	if f.scanned > n {
		// store was reset underneath
		f.index = f.index[:0]
		f.scanned = 0
	}
	if f.chain.PassAll() {
		added := n - f.scanned
		f.scanned = n
		return added
	}
	before := len(f.index)
	for i := f.scanned; i < n; i++ {
		if f.chain.Match(f.store.Line(i)) {
			f.index = append(f.index, i)
		}
	}
	f.scanned = n
	return len(f.index) - before
}

// Len returns the number of visible lines
func (f *Filtered) Len() int {
	if f.chain.PassAll() {
		return f.scanned
	}
	return len(f.index)
}

// Line returns visible line i
func (f *Filtered) Line(i int) string {
	return f.store.Line(f.SourceIndex(i))
}

// SourceIndex returns the store position of visible line i
func (f *Filtered) SourceIndex(i int) int {
	if f.chain.PassAll() {
		return i
	}
	return f.index[i]
}

// IndexOf returns the first visible line at or after store position pos,
// or Len() when there is none
func (f *Filtered) IndexOf(pos int) int {
	if f.chain.PassAll() {
		return min(pos, f.scanned)
	}
	lo, hi := 0, len(f.index)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.index[mid] < pos {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
