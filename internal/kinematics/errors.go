package kinematics

import "errors"

var (
	// ErrNoSolution indicates the requested landing height cannot be reached
	// in forward time for the given speed and angle.
	ErrNoSolution = errors.New("kinematics: no solution for given angle and speeds")

	// ErrInvalidSpeed indicates a non-positive or non-finite launch speed.
	ErrInvalidSpeed = errors.New("kinematics: initial speed must be positive")
)
