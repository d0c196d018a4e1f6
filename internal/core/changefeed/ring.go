package changefeed

import "github.com/cespare/xxhash/v2"

// ringKey identifies an emitted item: a 64-bit hash of the whole id plus its timestamp
type ringKey struct {
	id uint64
	t  uint64
}

func keyFor(k Key) ringKey {
	return ringKey{id: xxhash.Sum64String(k.ID), t: k.PublishedAt}
}

// ring is a fixed capacity circular buffer; the oldest key is overwritten once full
type ring struct {
	buf  []ringKey
	next int
	size int
}

func newRing(capacity int) *ring {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &ring{buf: make([]ringKey, capacity)}
}

func (r *ring) has(k ringKey) bool {
	for i := 0; i < r.size; i++ {
		if r.buf[i] == k {
			return true
		}
	}
	return false
}

func (r *ring) add(k ringKey) {
	r.buf[r.next] = k
	r.next = (r.next + 1) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	}
}
