package forecast

import "iter"

// cursor buffers the head of one source so it can be compared without
// being consumed.
type cursor[T any] struct {
	head T
	next func() (T, bool)
	stop func()
}

// Stream merges a dynamic set of locally ordered lazy sequences into one
// globally ordered sequence.
//
// Sources live in a slot arena: a dense slice of cursors where freed
// indexes are recycled through a freelist, so slot ids stay small and
// reusable over a long-running merge no matter how many sources come and
// go. Selection scans every live slot, which is linear per emitted value;
// an accepted cost since sources are expected to number in the tens while
// add and drop stay O(1).
//
// Add may be called while All is being consumed, including from within
// the consumer's own iteration step; that is the whole point: it lets the
// consumer feed new sources back into the merge it is draining. A Stream
// is single-use: once All terminates (or the consumer breaks), build a
// new Stream to merge again.
type Stream[T any] struct {
	// AllowLate admits sources whose first value precedes the last
	// emitted value. Such a source breaks global ordering: its values are
	// still all emitted eventually, but with no ordering guarantee
	// relative to values already handed out. When false (the default) a
	// late source is discarded wholesale, non-late values included,
	// because re-admitting it would require reordering values already
	// emitted.
	AllowLate bool

	less    func(a, b T) bool
	slots   []*cursor[T] // nil entries are free slots
	free    []int        // stack of free slot indexes
	last    T            // last emitted value
	emitted bool         // false before the first emission
}

// NewStream returns a Stream ordering values with less, primed with the
// given sources.
func NewStream[T any](less func(a, b T) bool, sources ...iter.Seq[T]) *Stream[T] {
	s := &Stream[T]{less: less}
	for _, src := range sources {
		s.Add(src)
	}
	return s
}

// Add inserts a new source into the merge.
//
// The source's first value is peeked immediately: an exhausted source is
// discarded without taking a slot, and a late one (first value before the
// last emitted value) is discarded entirely unless AllowLate is set. An
// admitted source reuses a freed slot when one exists.
func (s *Stream[T]) Add(seq iter.Seq[T]) {
	next, stop := iter.Pull(seq)
	head, ok := next()
	if !ok {
		stop()
		return
	}
	if s.emitted && !s.AllowLate && s.less(head, s.last) {
		stop()
		return
	}
	c := &cursor[T]{head: head, next: next, stop: stop}
	if n := len(s.free); n > 0 {
		i := s.free[n-1]
		s.free = s.free[:n-1]
		s.slots[i] = c
		return
	}
	s.slots = append(s.slots, c)
}

// All returns the merged sequence. It repeatedly emits the minimum
// buffered head among live slots (ties broken by lowest slot id), then
// advances that slot's source, freeing the slot once the source is
// exhausted. It terminates when no live slot remains.
//
// In the default reject-late mode, once a value has been emitted no later
// Add can ever cause a smaller value to be emitted: the sequence is
// non-decreasing for its whole lifetime, by construction.
func (s *Stream[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer s.Close()
		for {
			min := -1
			for i, c := range s.slots {
				if c == nil {
					continue
				}
				if min < 0 || s.less(c.head, s.slots[min].head) {
					min = i
				}
			}
			if min < 0 {
				return
			}
			c := s.slots[min]
			s.last, s.emitted = c.head, true
			if !yield(c.head) {
				return
			}
			// The yield above may have Add-ed sources; the next scan
			// picks them up.
			if head, ok := c.next(); ok {
				c.head = head
			} else {
				c.stop()
				s.slots[min] = nil
				s.free = append(s.free, min)
			}
		}
	}
}

// Close releases every remaining source. It is called by All on
// termination, and makes breaking out of All safe for sources holding
// resources in their iterator.
func (s *Stream[T]) Close() {
	for i, c := range s.slots {
		if c == nil {
			continue
		}
		c.stop()
		s.slots[i] = nil
		s.free = append(s.free, i)
	}
}
