package intake

// KeyFunc maps a URL to the identity used for de-duplication, e.g. a
// site's canonical URL. ok is false when the URL has no such identity,
// in which case the normalized URL itself is used.
type KeyFunc func(rawURL string) (key string, ok bool)

// Queue is a FIFO of import URLs with de-duplication.
type Queue struct {
	items   []string
	seen    map[string]bool
	keyFunc KeyFunc
	idx     int // current read position
}

// NewQueue creates an empty Queue. keyFunc may be nil.
func NewQueue(keyFunc KeyFunc) *Queue {
	return &Queue{
		seen:    make(map[string]bool),
		keyFunc: keyFunc,
	}
}

// Add enqueues a URL unless an equivalent one was added before. It
// reports whether the URL was enqueued.
func (q *Queue) Add(rawURL string) bool {
	u := NormalizeURL(rawURL)
	if u == "" {
		return false
	}

	key := u
	if q.keyFunc != nil {
		if k, ok := q.keyFunc(u); ok {
			key = k
		}
	}
	if q.seen[key] {
		return false
	}
	q.seen[key] = true
	q.items = append(q.items, u)
	return true
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed URL and advances the pointer.
func (q *Queue) Next() string {
	u := q.items[q.idx]
	q.idx++
	return u
}

// Len returns the number of unique URLs added.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns every queued URL in insertion order.
func (q *Queue) All() []string {
	return q.items
}
