package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/projectile"
	"github.com/san-kum/trajsim/internal/session"
	"github.com/san-kum/trajsim/internal/viewport"
)

func ptr(v float64) *float64 { return &v }

var _ = Describe("Session", func() {
	var s *session.Session

	BeforeEach(func() {
		s = session.New(session.DefaultSettings())
	})

	Describe("launching", func() {
		It("refuses to launch without an initial speed", func() {
			Expect(s.Apply(session.Launch)).To(MatchError(kinematics.ErrInvalidSpeed))
			Expect(s.Simulation().Status()).To(Equal(projectile.Stopped))
		})

		It("refuses to launch with a non-positive speed", func() {
			s.SetInputs(ptr(0), nil)
			Expect(s.Apply(session.Launch)).To(MatchError(kinematics.ErrInvalidSpeed))
			s.SetInputs(ptr(-4), nil)
			Expect(s.Apply(session.Launch)).To(MatchError(kinematics.ErrInvalidSpeed))
		})

		It("launches with the final speed defaulting to the initial speed", func() {
			s.SetInputs(ptr(30), nil)
			Expect(s.Apply(session.Launch)).To(Succeed())
			Expect(s.Simulation().Status()).To(Equal(projectile.Running))

			tf, ok := s.Simulation().ImpactTime()
			Expect(ok).To(BeTrue())
			want, _ := kinematics.SolveTimeOfFlight(30, session.DefaultAngle, 0, kinematics.StandardGravity)
			Expect(tf).To(Equal(want))
		})

		It("uses the final speed to derive the landing height", func() {
			s.SetInputs(ptr(30), ptr(20))
			Expect(s.Apply(session.Launch)).To(Succeed())

			dy := kinematics.DisplacementFromSpeeds(30, 20, kinematics.StandardGravity)
			tf, _ := s.Simulation().ImpactTime()
			want, _ := kinematics.SolveTimeOfFlight(30, session.DefaultAngle, dy, kinematics.StandardGravity)
			Expect(tf).To(Equal(want))
		})
	})

	Describe("commands", func() {
		It("clamps the angle", func() {
			s.SetAngle(120)
			Expect(s.Angle()).To(Equal(89.9))
			s.Apply(session.AngleUp)
			Expect(s.Angle()).To(Equal(89.9))

			s.SetAngle(0.5)
			s.Apply(session.AngleDown)
			Expect(s.Angle()).To(BeZero())
		})

		It("turns the angle by wheel notches", func() {
			s.Scroll(2)
			Expect(s.Angle()).To(Equal(48.0))
			s.Scroll(-4)
			Expect(s.Angle()).To(Equal(42.0))
		})

		It("steps and clamps the speed multiplier", func() {
			s.Apply(session.SpeedUp)
			Expect(s.Multiplier()).To(BeNumerically("~", 1.5, 1e-12))
			for i := 0; i < 10; i++ {
				s.Apply(session.SpeedUp)
			}
			Expect(s.Multiplier()).To(Equal(5.0))
			for i := 0; i < 20; i++ {
				s.Apply(session.SlowDown)
			}
			Expect(s.Multiplier()).To(Equal(0.1))
		})

		It("toggles overlays", func() {
			Expect(s.ShowTrail()).To(BeTrue())
			Expect(s.ShowVectors()).To(BeTrue())
			s.Apply(session.ToggleTrail)
			s.Apply(session.ToggleVectors)
			Expect(s.ShowTrail()).To(BeFalse())
			Expect(s.ShowVectors()).To(BeFalse())
		})

		It("pauses and stops the simulation", func() {
			s.SetInputs(ptr(20), nil)
			Expect(s.Apply(session.Launch)).To(Succeed())
			s.Apply(session.TogglePause)
			Expect(s.Simulation().Status()).To(Equal(projectile.Paused))
			s.Apply(session.Stop)
			Expect(s.Simulation().Status()).To(Equal(projectile.Stopped))
		})

		It("rejects unknown commands", func() {
			Expect(s.Apply(session.Command(99))).NotTo(Succeed())
			Expect(session.Command(99).String()).To(Equal("unknown"))
			Expect(session.Launch.String()).To(Equal("launch"))
		})
	})

	Describe("frames", func() {
		It("uses the default view when nothing is of interest", func() {
			f := s.Step(1.0 / 60)
			Expect(f.HasInput()).To(BeFalse())
			Expect(f.Transform.Scale).To(Equal(viewport.DefaultScale))
			Expect(f.ShowProjectile).To(BeFalse())
			Expect(f.Trajectory).To(BeEmpty())
		})

		It("reports no solution without failing", func() {
			s.SetInputs(ptr(10), ptr(15))
			s.SetAngle(10)
			f := s.Step(1.0 / 60)
			Expect(f.HasInput()).To(BeTrue())
			Expect(f.HasSolution()).To(BeFalse())
			Expect(f.SolutionErr).To(MatchError(kinematics.ErrNoSolution))
			Expect(f.Trajectory).To(BeEmpty())
		})

		It("fits the reference trajectory into the usable area", func() {
			s.SetInputs(ptr(30), nil)
			f := s.Frame()
			Expect(f.HasSolution()).To(BeTrue())
			Expect(f.Trajectory).To(HaveLen(session.DefaultSettings().Samples + 1))

			set := session.DefaultSettings()
			const slack = 1e-6
			usable := viewport.Rect{
				X: set.Margins.Left - slack,
				Y: set.Margins.Top - slack,
				W: set.Area.W - set.Margins.Left - set.Margins.Right + 2*slack,
				H: set.Area.H - set.Margins.Top - set.Margins.Bottom + 2*slack,
			}
			for _, p := range f.Trajectory {
				Expect(usable.Contains(p)).To(BeTrue(), "point %+v", p)
			}
			Expect(f.Landing).To(Equal(f.Trajectory[len(f.Trajectory)-1]))
		})

		It("advances the simulation by the scaled frame time", func() {
			s.SetInputs(ptr(30), nil)
			Expect(s.Apply(session.Launch)).To(Succeed())
			s.Apply(session.SpeedUp)

			f := s.Step(0.1)
			Expect(f.Sim.Elapsed).To(BeNumerically("~", 0.15, 1e-12))
			Expect(f.Sim.Status).To(Equal(projectile.Running))
			Expect(f.ShowProjectile).To(BeTrue())
			Expect(f.Trail).To(HaveLen(2))
			Expect(f.ShowVector).To(BeTrue())
			Expect(f.Projectile).To(Equal(f.Transform.WorldToScreen(f.Sim.Position)))
		})

		It("hides the trail and vectors when toggled off", func() {
			s.SetInputs(ptr(30), nil)
			Expect(s.Apply(session.Launch)).To(Succeed())
			s.Apply(session.ToggleTrail)
			s.Apply(session.ToggleVectors)

			f := s.Step(0.1)
			Expect(f.Trail).To(BeNil())
			Expect(f.ShowVector).To(BeFalse())
		})

		It("keeps the last position visible after impact", func() {
			s.SetInputs(ptr(20), nil)
			Expect(s.Apply(session.Launch)).To(Succeed())
			var f session.Frame
			for i := 0; i < 10 && s.Simulation().Status() != projectile.Stopped; i++ {
				f = s.Step(1)
			}
			Expect(f.Sim.Status).To(Equal(projectile.Stopped))
			Expect(f.ShowProjectile).To(BeTrue())
			Expect(f.ShowVector).To(BeFalse())
			Expect(f.Sim.Position.X).To(BeNumerically("~", f.Solution.Range, 1e-9))
		})

		It("follows layout changes", func() {
			area := viewport.Rect{X: 0, Y: 0, W: 160, H: 80}
			m := viewport.Margins{Left: 4, Right: 2, Top: 2, Bottom: 4}
			s.SetLayout(area, m)
			f := s.Frame()
			Expect(f.Area).To(Equal(area))
			Expect(f.Transform).To(Equal(viewport.Default(area, m)))
		})
	})
})
