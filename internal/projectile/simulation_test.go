package projectile_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/projectile"
)

var _ = Describe("Simulation", func() {
	var s *projectile.Simulation

	BeforeEach(func() {
		s = projectile.New(projectile.DefaultTrailCapacity)
	})

	Context("before any launch", func() {
		It("is stopped at the origin", func() {
			Expect(s.Status()).To(Equal(projectile.Stopped))
			Expect(s.Position().IsZero()).To(BeTrue())
			Expect(s.Trail()).To(BeEmpty())
		})

		It("ignores updates", func() {
			s.Update(0.5, 1)
			Expect(s.Elapsed()).To(BeZero())
		})

		It("treats toggle pause as a no-op", func() {
			before := s.Snapshot()
			s.TogglePause()
			Expect(s.Snapshot()).To(Equal(before))
			Expect(s.Status()).To(Equal(projectile.Stopped))
		})
	})

	Context("after launch", func() {
		BeforeEach(func() {
			s.Launch(20, 45, 0)
		})

		It("is running with the trail seeded at the origin", func() {
			Expect(s.Status()).To(Equal(projectile.Running))
			Expect(s.Trail()).To(Equal([]kinematics.Vec2{{}}))
			Expect(s.Speed()).To(BeNumerically("~", 20, 1e-9))
		})

		It("solves impact time and range with the simulation gravity", func() {
			tf, ok := s.ImpactTime()
			Expect(ok).To(BeTrue())
			Expect(tf).To(BeNumerically("~", 2*20*math.Sin(math.Pi/4)/9.81, 1e-12))
			Expect(s.Range()).To(BeNumerically("~", 400/9.81, 1e-9))
		})

		It("evaluates the closed form at the elapsed time", func() {
			for i := 0; i < 37; i++ {
				s.Update(1.0/60, 1)
			}
			v0 := s.InitialVelocity()
			Expect(s.Position()).To(Equal(kinematics.PositionAt(v0, s.Gravity(), s.Elapsed())))
			Expect(s.Velocity()).To(Equal(kinematics.VelocityAt(v0, s.Gravity(), s.Elapsed())))
		})

		It("scales elapsed time by the speed multiplier", func() {
			s.Update(0.1, 2.5)
			Expect(s.Elapsed()).To(BeNumerically("~", 0.25, 1e-12))
		})

		It("freezes while paused and resumes after a second toggle", func() {
			s.Update(0.1, 1)
			s.TogglePause()
			Expect(s.Status()).To(Equal(projectile.Paused))

			before := s.Snapshot()
			s.Update(0.1, 1)
			Expect(s.Snapshot()).To(Equal(before))

			s.TogglePause()
			Expect(s.Status()).To(Equal(projectile.Running))
			s.Update(0.1, 1)
			Expect(s.Elapsed()).To(BeNumerically("~", 0.2, 1e-12))
		})

		It("stops without clearing the last frame", func() {
			s.Update(0.5, 1)
			pos := s.Position()
			trail := s.Trail()

			s.Stop()
			Expect(s.Status()).To(Equal(projectile.Stopped))
			Expect(s.Position()).To(Equal(pos))
			Expect(s.Trail()).To(Equal(trail))

			s.Update(0.5, 1)
			Expect(s.Position()).To(Equal(pos))
		})

		It("clears a pause when stopped", func() {
			s.TogglePause()
			s.Stop()
			Expect(s.Status()).To(Equal(projectile.Stopped))
			s.TogglePause()
			Expect(s.Status()).To(Equal(projectile.Stopped))
		})

		It("resets everything on relaunch", func() {
			s.Update(1, 1)
			s.Launch(10, 30, 0)
			Expect(s.Elapsed()).To(BeZero())
			Expect(s.Position().IsZero()).To(BeTrue())
			Expect(s.Trail()).To(HaveLen(1))
			Expect(s.Status()).To(Equal(projectile.Running))
		})
	})

	DescribeTable("impact snap is independent of frame dt",
		func(dt float64) {
			s.Launch(20, 45, kinematics.DisplacementFromSpeeds(20, 20, kinematics.StandardGravity))
			tf, ok := s.ImpactTime()
			Expect(ok).To(BeTrue())

			frames := 0
			for s.Status() != projectile.Stopped && frames < 10000 {
				s.Update(dt, 1)
				frames++
			}

			Expect(s.Status()).To(Equal(projectile.Stopped))
			Expect(frames).To(BeNumerically("<=", int(math.Ceil(tf/dt))+1))
			Expect(s.Elapsed()).To(Equal(tf))
			Expect(s.Position()).To(Equal(kinematics.Vec2{X: s.Range(), Y: 0}))
			Expect(s.Velocity().X).To(Equal(s.InitialVelocity().X))
			Expect(s.Velocity().Y).To(BeNumerically("~", -s.InitialVelocity().Y, 1e-12))

			last := s.Trail()[len(s.Trail())-1]
			Expect(last).To(Equal(s.Position()))
		},
		Entry("60 fps", 1.0/60),
		Entry("10 fps", 1.0/10),
		Entry("1 fps", 1.0),
	)

	Context("with no reachable impact", func() {
		BeforeEach(func() {
			dy := kinematics.DisplacementFromSpeeds(10, 15, kinematics.StandardGravity)
			s.Launch(10, 10, dy)
		})

		It("has no impact time or range", func() {
			_, ok := s.ImpactTime()
			Expect(ok).To(BeFalse())
			Expect(s.Range()).To(BeZero())
		})

		It("keeps running indefinitely", func() {
			for i := 0; i < 600; i++ {
				s.Update(0.1, 1)
			}
			Expect(s.Status()).To(Equal(projectile.Running))
			Expect(s.Elapsed()).To(BeNumerically("~", 60, 1e-9))
		})
	})

	It("treats a zero flight time as no impact", func() {
		s.Launch(10, 0, 0)
		_, ok := s.ImpactTime()
		Expect(ok).To(BeFalse())
		s.Update(0.5, 1)
		Expect(s.Status()).To(Equal(projectile.Running))
	})

	It("accepts a non-positive speed without an impact", func() {
		s.Launch(0, 45, 0)
		_, ok := s.ImpactTime()
		Expect(ok).To(BeFalse())
		Expect(s.Status()).To(Equal(projectile.Running))
	})
})
