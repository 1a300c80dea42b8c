package core

// Button is a digital input on a GameCube controller.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonZ
	ButtonL
	ButtonR
	ButtonStart
	ButtonDLeft
	ButtonDRight
	ButtonDDown
	ButtonDUp

	buttonCount
)

// String returns the button's conventional name.
func (b Button) String() string {
	names := [...]string{"A", "B", "X", "Y", "Z", "L", "R", "START",
		"D_LEFT", "D_RIGHT", "D_DOWN", "D_UP"}
	if int(b) < len(names) {
		return names[b]
	}
	return "UNKNOWN"
}

// StickPos is a normalized analog stick position. Both axes cover
// [0, 1], with (0.5, 0.5) as the neutral position.
type StickPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ControllerState is the physical controller state captured by a
// pre-frame record.
type ControllerState struct {
	MainStick StickPos        `json:"mainStick"`
	CStick    StickPos        `json:"cStick"`
	Button    map[Button]bool `json:"buttons"`
}

// NewControllerState returns a ControllerState with every button released
// and both sticks neutral.
func NewControllerState() ControllerState {
	buttons := make(map[Button]bool, buttonCount)
	for b := Button(0); b < buttonCount; b++ {
		buttons[b] = false
	}
	return ControllerState{
		MainStick: StickPos{X: 0.5, Y: 0.5},
		CStick:    StickPos{X: 0.5, Y: 0.5},
		Button:    buttons,
	}
}
