package vector

// buffer is the exclusively owned backing storage of a Vector. All
// allocation, element transfer and release goes through it so the
// bookkeeping lives in one place.
type buffer[T any] struct {
	slots []T
}

func allocate[T any](n int) buffer[T] {
	if n <= 0 {
		return buffer[T]{}
	}
	return buffer[T]{slots: make([]T, n)}
}

func (b buffer[T]) capacity() int {
	return len(b.slots)
}

// copyTo copies the first n slots into dst and returns the number copied.
func (b buffer[T]) copyTo(dst buffer[T], n int) int {
	return copy(dst.slots[:n], b.slots[:n])
}

// release drops the storage. Safe to call on an already released buffer.
func (b *buffer[T]) release() {
	b.slots = nil
}

// Stats counts the storage work a vector has done since construction.
type Stats struct {
	Allocations   int `json:"allocations"`
	Reallocations int `json:"reallocations"`
	ElementCopies int `json:"element_copies"`
	Appends       int `json:"appends"`
}

// CopiesPerAppend is the amortized number of element copies paid for each
// appended element.
func (s Stats) CopiesPerAppend() float64 {
	if s.Appends == 0 {
		return 0
	}
	return float64(s.ElementCopies) / float64(s.Appends)
}
