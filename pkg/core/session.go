package core

import "time"

// SessionPlayer describes one occupied port as reported at game start.
type SessionPlayer struct {
	Port     int   `json:"port"`
	Costume  uint8 `json:"costume"`
	IsCPU    bool  `json:"isCpu"`
	CPULevel int   `json:"cpuLevel"`
}

// SessionMeta describes a game session as learned from the start-of-game
// record.
type SessionMeta struct {
	SLPVersion     string          `json:"slpVersion"`
	LegacyBookends bool            `json:"legacyBookends"`
	Stage          Stage           `json:"stage"`
	StartedAt      time.Time       `json:"startedAt"`
	Players        []SessionPlayer `json:"players,omitempty"`
}
