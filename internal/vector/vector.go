package vector

import (
	"iter"
	"math"
)

const (
	// DefaultCapacity is the slot count of a vector built by New.
	DefaultCapacity = 20
	// DefaultGrowth is the multiplicative growth factor.
	DefaultGrowth = 2.0
)

type Vector[T any] struct {
	buf    buffer[T]
	size   int
	growth float64
	gen    uint64
	stats  Stats
}

type options struct {
	capacity int
	growth   float64
}

type Option func(*options)

// InitialCapacity sets the capacity New allocates.
func InitialCapacity(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.capacity = n
		}
	}
}

// GrowthFactor sets the multiplicative growth factor. Factors that fail
// ValidateGrowth are ignored.
func GrowthFactor(f float64) Option {
	return func(o *options) {
		if ValidateGrowth(f) == nil {
			o.growth = f
		}
	}
}

// ValidateGrowth reports ErrBadGrowth for factors that cannot keep appends
// amortized constant time.
func ValidateGrowth(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 1 {
		return ErrBadGrowth
	}
	return nil
}

func buildOptions(capacity int, opts []Option) options {
	o := options{capacity: capacity, growth: DefaultGrowth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newVector[T any](o options, capacity int) *Vector[T] {
	v := &Vector[T]{growth: o.growth}
	v.adopt(allocate[T](capacity))
	return v
}

// New returns an empty vector with DefaultCapacity slots.
func New[T any](opts ...Option) *Vector[T] {
	o := buildOptions(DefaultCapacity, opts)
	return newVector[T](o, o.capacity)
}

// sizedCapacity is the storage a sized or list constructor allocates for
// count elements. Appends grow once Len+1 reaches Cap, so count appends only
// fit when the storage is larger than count.
func sizedCapacity(count int) int {
	if count <= 0 {
		return 0
	}
	return count * 2
}

// WithCapacity returns an empty vector able to take count appends without
// reallocating. It reserves only; Len is 0.
func WithCapacity[T any](count int, opts ...Option) *Vector[T] {
	n := sizedCapacity(count)
	o := buildOptions(n, opts)
	return newVector[T](o, max(n, o.capacity))
}

// WithLen returns a vector holding count zero-valued elements.
func WithLen[T any](count int, opts ...Option) *Vector[T] {
	var zero T
	return Filled(count, zero, opts...)
}

// Filled returns a vector holding count copies of value.
func Filled[T any](count int, value T, opts ...Option) *Vector[T] {
	v := WithCapacity[T](count, opts...)
	for i := 0; i < count; i++ {
		v.buf.slots[i] = value
	}
	v.size = max(count, 0)
	v.stats.Appends += v.size
	return v
}

// Of returns a vector holding values in order.
func Of[T any](values ...T) *Vector[T] {
	v := WithCapacity[T](len(values))
	v.stats.ElementCopies += copy(v.buf.slots, values)
	v.size = len(values)
	v.stats.Appends += v.size
	return v
}

// Move transfers src's storage into a new vector without copying elements.
// src is left empty with no storage.
func Move[T any](src *Vector[T]) *Vector[T] {
	v := &Vector[T]{growth: src.factor()}
	v.MoveFrom(src)
	return v
}

// Clone returns a deep copy with independent storage.
func (v *Vector[T]) Clone() *Vector[T] {
	c := &Vector[T]{growth: v.factor()}
	c.CopyFrom(v)
	return c
}

// CopyFrom replaces v's contents with a copy of src's. The new storage is
// fully populated before v's old storage is dropped, and assigning a vector
// to itself does nothing.
func (v *Vector[T]) CopyFrom(src *Vector[T]) {
	if v == src {
		return
	}
	next := allocate[T](src.buf.capacity())
	copied := src.buf.copyTo(next, src.size)

	v.buf.release()
	v.adopt(next)
	v.size = src.size
	v.stats.ElementCopies += copied
}

// MoveFrom takes ownership of src's storage, releasing v's own. src is left
// empty with no storage. Moving a vector into itself does nothing.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.buf.release()
	v.buf, v.size = src.buf, src.size
	v.gen++

	src.buf = buffer[T]{}
	src.size = 0
	src.gen++
}

// Release drops the storage. The vector stays usable and regrows on the
// next append. Calling Release twice is harmless.
func (v *Vector[T]) Release() {
	v.buf.release()
	v.size = 0
	v.gen++
}

func (v *Vector[T]) adopt(b buffer[T]) {
	v.buf = b
	v.gen++
	if b.capacity() > 0 {
		v.stats.Allocations++
	}
}

func (v *Vector[T]) factor() float64 {
	if v.growth == 0 {
		return DefaultGrowth
	}
	return v.growth
}

// Index returns a pointer to element i without checking it against Len.
// Passing i >= Len is a caller error.
func (v *Vector[T]) Index(i int) *T {
	return &v.buf.slots[i]
}

// Get returns element i without checking it against Len.
func (v *Vector[T]) Get(i int) T {
	return v.buf.slots[i]
}

// At returns a pointer to element i, or an *IndexError wrapping
// ErrOutOfRange when i is not a live index.
func (v *Vector[T]) At(i int) (*T, error) {
	if i < 0 || i >= v.size {
		return nil, &IndexError{Op: "at", Index: i, Size: v.size}
	}
	return &v.buf.slots[i], nil
}

// Front returns the first element. It panics with ErrEmpty on an empty vector.
func (v *Vector[T]) Front() *T {
	if v.size == 0 {
		panic(ErrEmpty)
	}
	return &v.buf.slots[0]
}

// Back returns the last element. It panics with ErrEmpty on an empty vector.
func (v *Vector[T]) Back() *T {
	if v.size == 0 {
		panic(ErrEmpty)
	}
	return &v.buf.slots[v.size-1]
}

func (v *Vector[T]) Empty() bool  { return v.size == 0 }
func (v *Vector[T]) Len() int     { return v.size }
func (v *Vector[T]) Cap() int     { return v.buf.capacity() }
func (v *Vector[T]) MaxSize() int { return math.MaxInt }
func (v *Vector[T]) Stats() Stats { return v.stats }

// Slice returns the live elements. The slice aliases the vector's storage
// and is invalidated by the same operations that invalidate iterators.
func (v *Vector[T]) Slice() []T {
	return v.buf.slots[:v.size:v.size]
}

// Reserve grows the storage to exactly n slots when n exceeds Cap.
// Live elements are staged into a scratch buffer sized to Len, then copied
// into the new storage; the old storage is dropped only once the new one
// holds every element.
func (v *Vector[T]) Reserve(n int) {
	if n <= v.buf.capacity() {
		return
	}

	staging := allocate[T](v.size)
	defer staging.release()
	v.stats.ElementCopies += v.buf.copyTo(staging, v.size)

	next := allocate[T](n)
	v.stats.ElementCopies += staging.copyTo(next, v.size)
	if v.size > 0 {
		v.stats.Allocations++
	}

	v.buf.release()
	v.adopt(next)
	v.stats.Reallocations++
}

// grow reserves room for at least need elements following the growth factor.
func (v *Vector[T]) grow(need int) {
	c := v.buf.capacity()
	next := DefaultCapacity
	if c > 0 {
		next = max(int(float64(c)*v.factor()), c+1)
	}
	v.Reserve(max(next, need))
}

// PushBack appends value, growing the storage first when the append would
// meet or exceed Cap.
func (v *Vector[T]) PushBack(value T) {
	if v.size+1 >= v.buf.capacity() {
		v.grow(v.size + 1)
	}
	v.buf.slots[v.size] = value
	v.size++
	v.gen++
	v.stats.Appends++
}

// EmplaceBack appends an element built in place by init. The slot handed to
// init holds the zero value.
func (v *Vector[T]) EmplaceBack(init func(*T)) {
	if v.size+1 >= v.buf.capacity() {
		v.grow(v.size + 1)
	}
	slot := &v.buf.slots[v.size]
	var zero T
	*slot = zero
	if init != nil {
		init(slot)
	}
	v.size++
	v.gen++
	v.stats.Appends++
}

// PopBack drops the last element. It panics with ErrEmpty on an empty vector.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		panic(ErrEmpty)
	}
	v.truncate(v.size - 1)
}

// Clear drops every element and keeps the storage.
func (v *Vector[T]) Clear() {
	v.truncate(0)
}

func (v *Vector[T]) truncate(n int) {
	clear(v.buf.slots[n:v.size])
	v.size = n
	v.gen++
}

// Resize sets Len to count, appending zero values or truncating.
func (v *Vector[T]) Resize(count int) {
	var zero T
	v.ResizeWith(count, zero)
}

// ResizeWith sets Len to count, appending copies of value or truncating.
func (v *Vector[T]) ResizeWith(count int, value T) {
	if count < 0 {
		count = 0
	}
	if count <= v.size {
		v.truncate(count)
		return
	}
	if count >= v.buf.capacity() {
		v.grow(count)
	}
	for i := v.size; i < count; i++ {
		v.buf.slots[i] = value
	}
	v.stats.Appends += count - v.size
	v.size = count
	v.gen++
}

// Swap exchanges elements i and j. Both must be live indices.
func (v *Vector[T]) Swap(i, j int) {
	v.buf.slots[i], v.buf.slots[j] = v.buf.slots[j], v.buf.slots[i]
}

// Assign replaces the contents with count copies of value.
func (v *Vector[T]) Assign(count int, value T) {
	v.Clear()
	for i := 0; i < count; i++ {
		v.PushBack(value)
	}
}

// AssignValues replaces the contents with values in order.
func (v *Vector[T]) AssignValues(values ...T) {
	v.Clear()
	for _, value := range values {
		v.PushBack(value)
	}
}

// All yields index/value pairs front to back.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.buf.slots[i]) {
				return
			}
		}
	}
}

// Backward yields index/value pairs back to front.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if i >= v.size {
				continue
			}
			if !yield(i, v.buf.slots[i]) {
				return
			}
		}
	}
}

// Values yields the elements front to back.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(v.buf.slots[i]) {
				return
			}
		}
	}
}
