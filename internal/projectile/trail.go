package projectile

import "github.com/san-kum/trajsim/internal/kinematics"

// DefaultTrailCapacity is the number of recent positions kept for rendering.
const DefaultTrailCapacity = 200

// Trail is a fixed-capacity FIFO of positions. Once full, each Push evicts
// the oldest entry.
type Trail struct {
	buf   []kinematics.Vec2
	start int
	n     int
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{buf: make([]kinematics.Vec2, capacity)}
}

func (t *Trail) Len() int { return t.n }
func (t *Trail) Cap() int { return len(t.buf) }

func (t *Trail) Push(p kinematics.Vec2) {
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

// Last returns the newest entry.
func (t *Trail) Last() (kinematics.Vec2, bool) {
	if t.n == 0 {
		return kinematics.Vec2{}, false
	}
	return t.buf[(t.start+t.n-1)%len(t.buf)], true
}

// ReplaceLast overwrites the newest entry, or pushes when empty.
func (t *Trail) ReplaceLast(p kinematics.Vec2) {
	if t.n == 0 {
		t.Push(p)
		return
	}
	t.buf[(t.start+t.n-1)%len(t.buf)] = p
}

// Points returns a copy ordered oldest first.
func (t *Trail) Points() []kinematics.Vec2 {
	out := make([]kinematics.Vec2, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

func (t *Trail) Reset() {
	t.start, t.n = 0, 0
}
