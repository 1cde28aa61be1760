// Package vector provides a generic dynamic array.
//
// A [Vector] owns a single contiguous buffer whose capacity is always at
// least its length. Elements in [0, Len) are live; slots in [Len, Cap) are
// allocated but logically absent.
//
//   - Construction: [New], [WithCapacity], [WithLen], [Filled], [Of]
//   - Copy and move: [Vector.Clone], [Vector.CopyFrom], [Move], [Vector.MoveFrom]
//   - Access: [Vector.Index] (unchecked), [Vector.At] (checked)
//   - Growth: [Vector.Reserve], [Vector.PushBack], [Vector.EmplaceBack]
//   - Iteration: [Iterator] and [ConstIterator] in both directions
//
// # Example
//
//	v := vector.Of(10, 20, 30)
//	v.PushBack(40)
//	for it := v.Begin(); !it.Equal(v.End()); it.Inc() {
//		fmt.Println(it.Value())
//	}
//
// # Preconditions
//
// Only [Vector.At] reports bad input through an error. Index, Swap and Get
// trust the caller. Front, Back and PopBack panic with [ErrEmpty] on an empty
// vector instead of underflowing.
//
// # Iterator Invalidation
//
// Any operation that reallocates the buffer or changes the length
// invalidates every outstanding iterator. Dereferencing an invalidated
// iterator panics with [ErrInvalidated].
//
// # Thread Safety
//
// Vector instances are NOT thread-safe. Callers sharing a vector between
// goroutines must serialize access themselves.
package vector
