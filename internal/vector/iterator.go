package vector

// cursor is the position logic shared by every iterator flavour. step is +1
// for forward traversal and -1 for reverse.
type cursor[T any] struct {
	v    *Vector[T]
	pos  int
	step int
	gen  uint64
}

func (v *Vector[T]) cursorAt(pos, step int) cursor[T] {
	return cursor[T]{v: v, pos: pos, step: step, gen: v.gen}
}

// Index returns the logical index the iterator points at. End is Len and
// REnd is -1.
func (c cursor[T]) Index() int {
	return c.pos
}

func (c *cursor[T]) advance(n int) {
	c.pos += n * c.step
}

func (c cursor[T]) slot() *T {
	if c.gen != c.v.gen {
		panic(ErrInvalidated)
	}
	if c.pos < 0 || c.pos >= c.v.size {
		panic(ErrSentinel)
	}
	return &c.v.buf.slots[c.pos]
}

func (c cursor[T]) same(o cursor[T]) bool {
	return c.v == o.v && c.pos == o.pos
}

// Iterator walks a vector and allows writes through Ref and Set.
type Iterator[T any] struct {
	cursor[T]
}

// Inc advances one step and returns the advanced iterator.
func (it *Iterator[T]) Inc() Iterator[T] {
	it.advance(1)
	return *it
}

// PostInc advances one step and returns the iterator as it was before.
func (it *Iterator[T]) PostInc() Iterator[T] {
	prev := *it
	it.advance(1)
	return prev
}

// Add returns an iterator n steps further in the traversal direction.
func (it Iterator[T]) Add(n int) Iterator[T] {
	it.advance(n)
	return it
}

// Sub returns an iterator n steps back against the traversal direction.
func (it Iterator[T]) Sub(n int) Iterator[T] {
	it.advance(-n)
	return it
}

func (it Iterator[T]) Value() T    { return *it.slot() }
func (it Iterator[T]) Ref() *T     { return it.slot() }
func (it Iterator[T]) Set(value T) { *it.slot() = value }

// Equal reports whether both iterators point at the same position.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.same(o.cursor)
}

// ConstIterator walks a vector read-only.
type ConstIterator[T any] struct {
	cursor[T]
}

func (it *ConstIterator[T]) Inc() ConstIterator[T] {
	it.advance(1)
	return *it
}

func (it *ConstIterator[T]) PostInc() ConstIterator[T] {
	prev := *it
	it.advance(1)
	return prev
}

func (it ConstIterator[T]) Add(n int) ConstIterator[T] {
	it.advance(n)
	return it
}

func (it ConstIterator[T]) Sub(n int) ConstIterator[T] {
	it.advance(-n)
	return it
}

func (it ConstIterator[T]) Value() T { return *it.slot() }

func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool {
	return it.same(o.cursor)
}

func (v *Vector[T]) Begin() Iterator[T] { return Iterator[T]{v.cursorAt(0, 1)} }
func (v *Vector[T]) End() Iterator[T]   { return Iterator[T]{v.cursorAt(v.size, 1)} }

func (v *Vector[T]) CBegin() ConstIterator[T] { return ConstIterator[T]{v.cursorAt(0, 1)} }
func (v *Vector[T]) CEnd() ConstIterator[T]   { return ConstIterator[T]{v.cursorAt(v.size, 1)} }

func (v *Vector[T]) RBegin() Iterator[T] { return Iterator[T]{v.cursorAt(v.size-1, -1)} }
func (v *Vector[T]) REnd() Iterator[T]   { return Iterator[T]{v.cursorAt(-1, -1)} }

func (v *Vector[T]) CRBegin() ConstIterator[T] { return ConstIterator[T]{v.cursorAt(v.size-1, -1)} }
func (v *Vector[T]) CREnd() ConstIterator[T]   { return ConstIterator[T]{v.cursorAt(-1, -1)} }
