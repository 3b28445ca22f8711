package slidecache

// Intent says what should happen when a fetch completes.
type Intent int

const (
	// PrefetchOnly stores the result without displaying it.
	PrefetchOnly Intent = iota
	// PresentImmediately displays the result as soon as it arrives.
	PresentImmediately
)

func (i Intent) String() string {
	if i == PresentImmediately {
		return "present"
	}
	return "prefetch"
}

// Fetch is the bookkeeping for one in-flight fetch.
type Fetch struct {
	Intent Intent
	// Ticket identifies the fetch that owns the entry. A completion carrying
	// another ticket has been superseded.
	Ticket uint64
}

// Pending tracks at most one in-flight fetch per key.
type Pending[K comparable] struct {
	entries map[K]Fetch
}

// NewPending returns an empty table.
func NewPending[K comparable]() *Pending[K] {
	return &Pending[K]{entries: make(map[K]Fetch)}
}

// RequestPresent records that key should be displayed when loaded. It reports
// true when no fetch was in flight, in which case the caller must issue one
// using ticket. Otherwise the existing fetch is upgraded to present
// immediately and keeps its ticket.
func (p *Pending[K]) RequestPresent(key K, ticket uint64) bool {
	if f, ok := p.entries[key]; ok {
		f.Intent = PresentImmediately
		p.entries[key] = f
		return false
	}
	p.entries[key] = Fetch{Intent: PresentImmediately, Ticket: ticket}
	return true
}

// RequestPrefetch records a speculative fetch for key. It reports true when
// the caller must issue the fetch using ticket. An existing entry is left
// untouched, so a present-immediately intent is never downgraded.
func (p *Pending[K]) RequestPrefetch(key K, ticket uint64) bool {
	if _, ok := p.entries[key]; ok {
		return false
	}
	p.entries[key] = Fetch{Intent: PrefetchOnly, Ticket: ticket}
	return true
}

// Reassign moves the entry for key to a new ticket, keeping its intent. It
// creates a prefetch-only entry when none exists.
func (p *Pending[K]) Reassign(key K, ticket uint64) {
	f := p.entries[key]
	f.Ticket = ticket
	p.entries[key] = f
}

// Lookup returns the entry for key.
func (p *Pending[K]) Lookup(key K) (Fetch, bool) {
	f, ok := p.entries[key]
	return f, ok
}

// Remove deletes the entry for key.
func (p *Pending[K]) Remove(key K) {
	delete(p.entries, key)
}

// Clear deletes every entry.
func (p *Pending[K]) Clear() {
	clear(p.entries)
}

// Len returns the number of entries.
func (p *Pending[K]) Len() int {
	return len(p.entries)
}
