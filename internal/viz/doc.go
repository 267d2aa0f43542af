// Package viz provides the terminal front end for trajsim.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the interactive application driving a session.Session once per tick
//   - [Canvas]: Braille-based pixel canvas with per-cell layer colors
//   - [Theme]: color schemes for the plot layers
//
// # Key Bindings
//
//	Space - Launch
//	P     - Pause/Resume
//	R     - Stop
//	Up/Dn - Angle (mouse wheel too)
//	+/-   - Simulation speed
//	V     - Toggle velocity vector
//	T     - Toggle trail
//	Tab   - Edit initial/final speed
//	C     - Cycle color themes
//	?     - Show help overlay
package viz
