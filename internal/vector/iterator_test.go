package vector_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynvec/internal/vector"
)

var _ = Describe("Iterator", func() {
	var v *vector.Vector[int]

	BeforeEach(func() {
		v = vector.Of(10, 20, 30)
	})

	It("walks forward from begin to end", func() {
		var got []int
		for it := v.Begin(); !it.Equal(v.End()); it.Inc() {
			got = append(got, it.Value())
		}
		Expect(got).To(Equal([]int{10, 20, 30}))
	})

	It("walks backward from rbegin to rend", func() {
		var got []int
		for it := v.RBegin(); !it.Equal(v.REnd()); it.Inc() {
			got = append(got, it.Value())
		}
		Expect(got).To(Equal([]int{30, 20, 10}))
	})

	It("walks read-only in both directions", func() {
		var fwd, back []int
		for it := v.CBegin(); !it.Equal(v.CEnd()); it.Inc() {
			fwd = append(fwd, it.Value())
		}
		for it := v.CRBegin(); !it.Equal(v.CREnd()); it.Inc() {
			back = append(back, it.Value())
		}
		Expect(fwd).To(Equal([]int{10, 20, 30}))
		Expect(back).To(Equal([]int{30, 20, 10}))
	})

	It("writes through a mutable iterator", func() {
		for it := v.Begin(); !it.Equal(v.End()); it.Inc() {
			*it.Ref() *= 2
		}
		v.RBegin().Set(0)
		Expect(v.Slice()).To(Equal([]int{20, 40, 0}))
	})

	It("distinguishes pre and post increment", func() {
		it := v.Begin()
		prev := it.PostInc()
		Expect(prev.Value()).To(Equal(10))
		Expect(it.Value()).To(Equal(20))

		next := it.Inc()
		Expect(next.Value()).To(Equal(30))
		Expect(next.Equal(it)).To(BeTrue())

		rit := v.CRBegin()
		rprev := rit.PostInc()
		Expect(rprev.Value()).To(Equal(30))
		Expect(rit.Value()).To(Equal(20))
	})

	It("jumps by offsets in the traversal direction", func() {
		Expect(v.Begin().Add(2).Value()).To(Equal(30))
		Expect(v.End().Sub(1).Value()).To(Equal(30))
		Expect(v.Begin().Add(3).Equal(v.End())).To(BeTrue())

		Expect(v.RBegin().Add(2).Value()).To(Equal(10))
		Expect(v.REnd().Sub(1).Value()).To(Equal(10))
		Expect(v.CRBegin().Add(3).Equal(v.CREnd())).To(BeTrue())
	})

	It("compares by position", func() {
		Expect(v.Begin().Equal(v.Begin())).To(BeTrue())
		Expect(v.Begin().Equal(v.End())).To(BeFalse())
		Expect(v.Begin().Index()).To(Equal(0))
		Expect(v.End().Index()).To(Equal(3))
		Expect(v.REnd().Index()).To(Equal(-1))

		other := v.Clone()
		Expect(v.Begin().Equal(other.Begin())).To(BeFalse())
	})

	It("yields begin equal to end on an empty vector", func() {
		e := vector.New[int]()
		Expect(e.Begin().Equal(e.End())).To(BeTrue())
		Expect(e.RBegin().Equal(e.REnd())).To(BeTrue())
	})

	It("refuses to dereference sentinels", func() {
		Expect(func() { v.End().Value() }).To(PanicWith(vector.ErrSentinel))
		Expect(func() { v.REnd().Value() }).To(PanicWith(vector.ErrSentinel))
		Expect(func() { v.CEnd().Value() }).To(PanicWith(vector.ErrSentinel))
	})

	DescribeTable("invalidation after mutation",
		func(mutate func(*vector.Vector[int])) {
			it := v.Begin()
			mutate(v)
			Expect(func() { it.Value() }).To(PanicWith(vector.ErrInvalidated))
		},
		Entry("push back", func(v *vector.Vector[int]) { v.PushBack(1) }),
		Entry("pop back", func(v *vector.Vector[int]) { v.PopBack() }),
		Entry("clear", func(v *vector.Vector[int]) { v.Clear() }),
		Entry("resize", func(v *vector.Vector[int]) { v.Resize(10) }),
		Entry("reserve", func(v *vector.Vector[int]) { v.Reserve(1000) }),
		Entry("move", func(v *vector.Vector[int]) { vector.Move(v) }),
	)

	It("survives in-place writes", func() {
		it := v.Begin()
		v.Swap(0, 2)
		*v.Index(1) = 99
		Expect(it.Value()).To(Equal(30))
	})
})
