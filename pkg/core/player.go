package core

// Position is an (x, y) point in stage coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerState is the decoded state of a single controller port within
// one frame. Gameplay fields come from pre/post-frame records; the
// cursor, selection, and controller-status fields are only meaningful
// while a menu scene is active.
type PlayerState struct {
	Character      Character   `json:"character"`
	X              float64     `json:"x"`
	Y              float64     `json:"y"`
	Percent        int         `json:"percent"`
	ShieldStrength float64     `json:"shieldStrength"`
	Stock          uint8       `json:"stock"`
	FacingRight    bool        `json:"facingRight"`
	Action         ActionState `json:"action"`
	ActionFrame    int         `json:"actionFrame"`

	Invulnerable        bool  `json:"invulnerable"`
	InvulnerabilityLeft int   `json:"invulnerabilityLeft"`
	Hitlag              bool  `json:"hitlag"`
	HitstunFramesLeft   int   `json:"hitstunFramesLeft"`
	JumpsLeft           uint8 `json:"jumpsLeft"`
	OnGround            bool  `json:"onGround"`
	OffStage            bool  `json:"offStage"`
	MoonwalkWarning     bool  `json:"moonwalkWarning"`
	Interruptible       bool  `json:"interruptible"`

	SpeedAirXSelf    float64 `json:"speedAirXSelf"`
	SpeedYSelf       float64 `json:"speedYSelf"`
	SpeedXAttack     float64 `json:"speedXAttack"`
	SpeedYAttack     float64 `json:"speedYAttack"`
	SpeedGroundXSelf float64 `json:"speedGroundXSelf"`

	ECBTop    Position `json:"ecbTop"`
	ECBBottom Position `json:"ecbBottom"`
	ECBLeft   Position `json:"ecbLeft"`
	ECBRight  Position `json:"ecbRight"`

	Costume  uint8 `json:"costume"`
	CPULevel int   `json:"cpuLevel"`

	Controller ControllerState `json:"controller"`

	// Menu-only fields.
	CursorX            float64          `json:"cursorX"`
	CursorY            float64          `json:"cursorY"`
	CharacterSelected  Character        `json:"characterSelected"`
	CoinDown           bool             `json:"coinDown"`
	ControllerStatus   ControllerStatus `json:"controllerStatus"`
	IsHoldingCPUSlider bool             `json:"isHoldingCpuSlider"`
}

// NewPlayerState returns a PlayerState with the documented defaults for
// fields that are meaningful before their first record arrives.
func NewPlayerState() *PlayerState {
	return &PlayerState{
		Character:         UnknownCharacter,
		CharacterSelected: UnknownCharacter,
		Action:            UnknownAnimation,
		ShieldStrength:    60,
		OnGround:          true,
		ControllerStatus:  ControllerUnplugged,
		Controller:        NewControllerState(),
	}
}

// Projectile is one entry of a snapshot's item list.
type Projectile struct {
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	XSpeed  float64        `json:"xSpeed"`
	YSpeed  float64        `json:"ySpeed"`
	Owner   int            `json:"owner"` // port 1-4, or NoOwner
	Subtype ProjectileType `json:"subtype"`
}
