// Package kinematics provides the closed-form projectile equations used by
// both the reference trajectory and the live simulation.
//
// Everything here is a pure function of its inputs:
//
//   - [DisplacementFromSpeeds]: landing height offset implied by a launch and impact speed
//   - [SolveTimeOfFlight]: larger root of the vertical motion equation
//   - [SampleTrajectory]: lazy, restartable sequence of time-uniform points
//   - [Solve]: the above composed into a [FlightSolution]
//
// # No Solution
//
// When no real root exists the solver reports it rather than failing:
//
//	sol, err := kinematics.Solve(params, 300)
//	if errors.Is(err, kinematics.ErrNoSolution) {
//	    // show "no solution", keep running
//	}
package kinematics
