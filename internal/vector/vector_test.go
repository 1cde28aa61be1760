package vector_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynvec/internal/vector"
)

func contents[T any](v *vector.Vector[T]) []T {
	out := make([]T, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		p, err := v.At(i)
		Expect(err).NotTo(HaveOccurred())
		out = append(out, *p)
	}
	return out
}

var _ = Describe("Vector", func() {
	Describe("construction", func() {
		It("starts empty with the default capacity", func() {
			v := vector.New[int]()
			Expect(v.Len()).To(Equal(0))
			Expect(v.Empty()).To(BeTrue())
			Expect(v.Cap()).To(Equal(vector.DefaultCapacity))
		})

		It("honours an initial capacity option", func() {
			v := vector.New[int](vector.InitialCapacity(3))
			Expect(v.Cap()).To(Equal(3))
		})

		It("reserves without filling for WithCapacity", func() {
			v := vector.WithCapacity[string](50)
			Expect(v.Len()).To(Equal(0))
			Expect(v.Cap()).To(BeNumerically(">=", 50))
		})

		DescribeTable("takes count appends without reallocating",
			func(build func(n int) *vector.Vector[int], n int) {
				v := build(n)
				lenBefore := v.Len()
				for i := 0; i < n; i++ {
					v.PushBack(i)
				}
				Expect(v.Len()).To(Equal(lenBefore + n))
				Expect(v.Stats().Reallocations).To(Equal(0))
			},
			Entry("WithCapacity(1)", func(n int) *vector.Vector[int] { return vector.WithCapacity[int](n) }, 1),
			Entry("WithCapacity(10)", func(n int) *vector.Vector[int] { return vector.WithCapacity[int](n) }, 10),
			Entry("WithCapacity(1000)", func(n int) *vector.Vector[int] { return vector.WithCapacity[int](n) }, 1000),
			Entry("Of, cleared", func(n int) *vector.Vector[int] {
				v := vector.Of(1, 2, 3)
				v.Clear()
				return v
			}, 3),
			Entry("WithLen, cleared", func(n int) *vector.Vector[int] {
				v := vector.WithLen[int](n)
				v.Clear()
				return v
			}, 8),
			Entry("Filled, cleared", func(n int) *vector.Vector[int] {
				v := vector.Filled(n, 7)
				v.Clear()
				return v
			}, 5),
		)

		It("fills zero values for WithLen", func() {
			v := vector.WithLen[int](4)
			Expect(contents(v)).To(Equal([]int{0, 0, 0, 0}))
		})

		It("fills copies of a value", func() {
			v := vector.Filled(3, "x")
			Expect(contents(v)).To(Equal([]string{"x", "x", "x"}))
			Expect(v.Cap()).To(BeNumerically(">=", 3))
		})

		It("copies an initializer list in order", func() {
			v := vector.Of(1, 2, 3)
			Expect(contents(v)).To(Equal([]int{1, 2, 3}))
			Expect(v.Cap()).To(BeNumerically(">=", v.Len()))
		})

		It("treats the zero value as an empty vector", func() {
			var v vector.Vector[int]
			Expect(v.Empty()).To(BeTrue())
			v.PushBack(7)
			Expect(contents(&v)).To(Equal([]int{7}))
		})
	})

	Describe("copy and move", func() {
		It("clones into independent storage", func() {
			a := vector.Of(1, 2, 3)
			b := a.Clone()
			b.PushBack(4)
			*b.Index(0) = 100

			Expect(contents(a)).To(Equal([]int{1, 2, 3}))
			Expect(contents(b)).To(Equal([]int{100, 2, 3, 4}))
		})

		It("copy-assigns over existing contents", func() {
			a := vector.Of(1, 2, 3)
			b := vector.Of(9, 9, 9, 9, 9)
			b.CopyFrom(a)
			a.PushBack(4)

			Expect(contents(b)).To(Equal([]int{1, 2, 3}))
			Expect(a.Len()).To(Equal(4))
		})

		It("leaves a vector untouched on self-assignment", func() {
			a := vector.Of(5, 6, 7)
			a.CopyFrom(a)
			Expect(contents(a)).To(Equal([]int{5, 6, 7}))
			a.PushBack(8)
			Expect(contents(a)).To(Equal([]int{5, 6, 7, 8}))
		})

		It("moves storage and empties the source", func() {
			a := vector.Of(1, 2, 3)
			before := a.Stats().ElementCopies
			b := vector.Move(a)

			Expect(contents(b)).To(Equal([]int{1, 2, 3}))
			Expect(a.Len()).To(Equal(0))
			Expect(a.Cap()).To(Equal(0))
			Expect(a.Stats().ElementCopies).To(Equal(before))
		})

		It("keeps a moved-from vector usable", func() {
			a := vector.Of(1, 2)
			b := vector.New[int]()
			b.MoveFrom(a)
			a.PushBack(3)

			Expect(contents(a)).To(Equal([]int{3}))
			Expect(contents(b)).To(Equal([]int{1, 2}))
		})

		It("ignores self-move", func() {
			a := vector.Of(1, 2)
			a.MoveFrom(a)
			Expect(contents(a)).To(Equal([]int{1, 2}))
		})

		It("releases storage idempotently", func() {
			a := vector.Of(1, 2)
			a.Release()
			a.Release()
			Expect(a.Len()).To(Equal(0))
			Expect(a.Cap()).To(Equal(0))
		})
	})

	Describe("element access", func() {
		It("reports out of range past the live elements", func() {
			v := vector.Of(1, 2, 3)
			for _, i := range []int{3, 4, 100, -1} {
				_, err := v.At(i)
				Expect(errors.Is(err, vector.ErrOutOfRange)).To(BeTrue())

				var ie *vector.IndexError
				Expect(errors.As(err, &ie)).To(BeTrue())
				Expect(ie.Index).To(Equal(i))
				Expect(ie.Size).To(Equal(3))
			}
		})

		It("reports out of range for slots beyond Len but within Cap", func() {
			v := vector.WithCapacity[int](10)
			v.PushBack(1)
			_, err := v.At(1)
			Expect(err).To(MatchError(vector.ErrOutOfRange))
		})

		It("allows mutation through At", func() {
			v := vector.Of(1, 2, 3)
			p, err := v.At(1)
			Expect(err).NotTo(HaveOccurred())
			*p = 20
			Expect(v.Get(1)).To(Equal(20))
		})

		It("exposes front and back", func() {
			v := vector.Of(1, 2, 3)
			Expect(*v.Front()).To(Equal(1))
			Expect(*v.Back()).To(Equal(3))
			*v.Back() = 30
			Expect(contents(v)).To(Equal([]int{1, 2, 30}))
		})

		It("panics on front and back of an empty vector", func() {
			v := vector.New[int]()
			Expect(func() { v.Front() }).To(PanicWith(vector.ErrEmpty))
			Expect(func() { v.Back() }).To(PanicWith(vector.ErrEmpty))
		})

		It("reports a max size of the largest int", func() {
			Expect(vector.New[byte]().MaxSize()).To(BeNumerically(">", 1<<31))
		})
	})

	Describe("growth", func() {
		DescribeTable("push back N elements",
			func(n int) {
				v := vector.New[int]()
				for i := 0; i < n; i++ {
					v.PushBack(i)
				}
				Expect(v.Len()).To(Equal(n))
				Expect(v.Cap()).To(BeNumerically(">=", n))
				for _, i := range []int{0, n / 2, n - 1} {
					if i < 0 || i >= n {
						continue
					}
					Expect(v.Get(i)).To(Equal(i))
				}
			},
			Entry("none", 0),
			Entry("one", 1),
			Entry("hundred", 100),
			Entry("hundred thousand", 100000),
		)

		It("keeps element copies linear in the number of appends", func() {
			for _, factor := range []float64{1.5, 2, 3} {
				v := vector.New[int](vector.GrowthFactor(factor))
				const n = 50000
				for i := 0; i < n; i++ {
					v.PushBack(i)
				}
				st := v.Stats()
				Expect(st.Appends).To(Equal(n))
				Expect(st.ElementCopies).To(BeNumerically("<", 8*n))
				Expect(st.CopiesPerAppend()).To(BeNumerically("<", 8))
			}
		})

		It("ignores growth factors that do not grow", func() {
			v := vector.New[int](vector.InitialCapacity(2), vector.GrowthFactor(1))
			for i := 0; i < 10; i++ {
				v.PushBack(i)
			}
			Expect(v.Len()).To(Equal(10))
			Expect(vector.ValidateGrowth(1)).To(MatchError(vector.ErrBadGrowth))
			Expect(vector.ValidateGrowth(1.25)).To(Succeed())
		})

		It("preserves every element across reserve", func() {
			v := vector.Of("a", "b", "c")
			v.Reserve(100)
			Expect(v.Cap()).To(Equal(100))
			Expect(contents(v)).To(Equal([]string{"a", "b", "c"}))
			Expect(v.Stats().Reallocations).To(Equal(1))
		})

		It("does nothing when reserving less than the capacity", func() {
			v := vector.WithCapacity[int](10)
			v.Reserve(5)
			Expect(v.Cap()).To(Equal(20))
			Expect(v.Stats().Reallocations).To(Equal(0))
		})

		It("emplaces in place", func() {
			type point struct{ X, Y int }
			v := vector.New[point]()
			v.EmplaceBack(func(p *point) { p.X, p.Y = 1, 2 })
			v.EmplaceBack(nil)
			Expect(contents(v)).To(Equal([]point{{1, 2}, {0, 0}}))
		})
	})

	Describe("mutation", func() {
		It("pops the last element", func() {
			v := vector.Of(1, 2, 3)
			v.PopBack()
			Expect(contents(v)).To(Equal([]int{1, 2}))
		})

		It("panics when popping an empty vector", func() {
			v := vector.New[int]()
			Expect(v.PopBack).To(PanicWith(vector.ErrEmpty))
			Expect(v.Len()).To(Equal(0))
		})

		It("clears without dropping storage", func() {
			v := vector.Of(1, 2, 3)
			capBefore := v.Cap()
			v.Clear()
			Expect(v.Empty()).To(BeTrue())
			Expect(v.Len()).To(Equal(0))
			Expect(v.Cap()).To(Equal(capBefore))

			reallocs := v.Stats().Reallocations
			want := make([]int, 0, capBefore)
			for i := 0; i < capBefore-1; i++ {
				v.PushBack(i)
				want = append(want, i)
			}
			Expect(v.Stats().Reallocations).To(Equal(reallocs))
			Expect(v.Cap()).To(Equal(capBefore))
			Expect(contents(v)).To(Equal(want))
		})

		It("grows with zero values on resize", func() {
			v := vector.Of(1, 2)
			v.Resize(4)
			Expect(contents(v)).To(Equal([]int{1, 2, 0, 0}))
		})

		It("grows with a given value on resize", func() {
			v := vector.Of(1, 2)
			v.ResizeWith(5, 7)
			Expect(contents(v)).To(Equal([]int{1, 2, 7, 7, 7}))
		})

		It("truncates on resize", func() {
			v := vector.Of(1, 2, 3)
			v.Resize(1)
			Expect(contents(v)).To(Equal([]int{1}))
			v.PushBack(9)
			Expect(contents(v)).To(Equal([]int{1, 9}))
		})

		It("swaps two elements", func() {
			v := vector.Of(1, 2, 3)
			v.Swap(0, 2)
			Expect(contents(v)).To(Equal([]int{3, 2, 1}))
		})

		It("assigns copies regardless of prior content", func() {
			v := vector.Of(1, 2, 3, 4, 5)
			v.Assign(3, 7)
			Expect(contents(v)).To(Equal([]int{7, 7, 7}))
		})

		It("assigns a literal sequence", func() {
			v := vector.Of(9)
			v.AssignValues(4, 5, 6)
			Expect(contents(v)).To(Equal([]int{4, 5, 6}))
		})

		It("returns a view of the live elements", func() {
			v := vector.WithCapacity[int](10)
			v.AssignValues(1, 2)
			Expect(v.Slice()).To(Equal([]int{1, 2}))
			Expect(cap(v.Slice())).To(Equal(2))
		})
	})

	Describe("range functions", func() {
		It("yields forward and backward", func() {
			v := vector.Of(10, 20, 30)

			var fwd, back []int
			for _, x := range v.All() {
				fwd = append(fwd, x)
			}
			for _, x := range v.Backward() {
				back = append(back, x)
			}
			Expect(fwd).To(Equal([]int{10, 20, 30}))
			Expect(back).To(Equal([]int{30, 20, 10}))
		})

		It("stops early", func() {
			v := vector.Of(1, 2, 3, 4)
			var seen []int
			for x := range v.Values() {
				if x == 3 {
					break
				}
				seen = append(seen, x)
			}
			Expect(seen).To(Equal([]int{1, 2}))
		})
	})
})
