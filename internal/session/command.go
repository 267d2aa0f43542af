package session

// Command is a discrete user action.
type Command int

const (
	Launch Command = iota
	TogglePause
	Stop
	SpeedUp
	SlowDown
	AngleUp
	AngleDown
	ToggleVectors
	ToggleTrail
)

var commandNames = map[Command]string{
	Launch:        "launch",
	TogglePause:   "toggle_pause",
	Stop:          "stop",
	SpeedUp:       "speed_up",
	SlowDown:      "slow_down",
	AngleUp:       "angle_up",
	AngleDown:     "angle_down",
	ToggleVectors: "toggle_vectors",
	ToggleTrail:   "toggle_trail",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}
