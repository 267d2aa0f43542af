package projectile_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/projectile"
)

var _ = Describe("Trail", func() {
	pt := func(i int) kinematics.Vec2 { return kinematics.Vec2{X: float64(i), Y: -float64(i)} }

	It("keeps insertion order below capacity", func() {
		tr := projectile.NewTrail(5)
		for i := 0; i < 3; i++ {
			tr.Push(pt(i))
		}
		Expect(tr.Points()).To(Equal([]kinematics.Vec2{pt(0), pt(1), pt(2)}))
	})

	It("evicts the oldest points first once full", func() {
		const capacity, extra = 8, 5
		tr := projectile.NewTrail(capacity)
		for i := 0; i < capacity+extra; i++ {
			tr.Push(pt(i))
			Expect(tr.Len()).To(BeNumerically("<=", capacity))
		}

		points := tr.Points()
		Expect(points).To(HaveLen(capacity))
		for i, p := range points {
			Expect(p).To(Equal(pt(i + extra)))
		}
	})

	It("replaces the newest point", func() {
		tr := projectile.NewTrail(3)
		tr.ReplaceLast(pt(9))
		Expect(tr.Points()).To(Equal([]kinematics.Vec2{pt(9)}))

		for i := 0; i < 4; i++ {
			tr.Push(pt(i))
		}
		tr.ReplaceLast(pt(7))
		last, ok := tr.Last()
		Expect(ok).To(BeTrue())
		Expect(last).To(Equal(pt(7)))
		Expect(tr.Points()).To(Equal([]kinematics.Vec2{pt(1), pt(2), pt(7)}))
	})

	It("returns copies", func() {
		tr := projectile.NewTrail(2)
		tr.Push(pt(1))
		points := tr.Points()
		points[0] = pt(5)
		Expect(tr.Points()[0]).To(Equal(pt(1)))
	})

	It("clamps capacity to at least one", func() {
		tr := projectile.NewTrail(0)
		Expect(tr.Cap()).To(Equal(1))
		tr.Push(pt(1))
		tr.Push(pt(2))
		Expect(tr.Points()).To(Equal([]kinematics.Vec2{pt(2)}))
	})

	It("empties on reset", func() {
		tr := projectile.NewTrail(4)
		tr.Push(pt(1))
		tr.Reset()
		Expect(tr.Len()).To(BeZero())
		_, ok := tr.Last()
		Expect(ok).To(BeFalse())
	})

	It("caps the simulation trail", func() {
		s := projectile.New(10)
		s.Launch(5, 80, -1000)
		for i := 0; i < 50; i++ {
			s.Update(0.01, 1)
		}
		Expect(s.Trail()).To(HaveLen(10))
		Expect(s.TrailCapacity()).To(Equal(10))
	})
})
