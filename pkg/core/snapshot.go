package core

import "sort"

// Snapshot is one fully-decoded frame of a session: every player's
// state keyed by controller port, the frame's projectiles, and the
// menu fields for non-gameplay scenes. The engine hands out exactly
// one Snapshot per completed frame, in strictly increasing frame order.
type Snapshot struct {
	Frame     int32     `json:"frame"`
	Stage     Stage     `json:"stage"`
	MenuScene MenuScene `json:"menuScene"`
	SubMenu   SubMenu   `json:"subMenu"`

	// Players is keyed by controller port (1-4). An entry exists once
	// any record referenced that port during the frame.
	Players map[int]*PlayerState `json:"players"`

	// Projectiles is append-only within a frame, one entry per
	// item-update record.
	Projectiles []Projectile `json:"projectiles"`

	// Distance is the Euclidean distance between the two
	// lowest-numbered active ports, computed at the frame bookend.
	Distance float64 `json:"distance"`

	// Menu-only fields.
	MenuSelection      uint8   `json:"menuSelection"`
	StageSelectCursorX float64 `json:"stageSelectCursorX"`
	StageSelectCursorY float64 `json:"stageSelectCursorY"`
	ReadyToStart       bool    `json:"readyToStart"`
}

// NewSnapshot returns an empty in-progress snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Frame:     FrameNotStarted,
		MenuScene: SceneInGame,
		SubMenu:   UnknownSubmenu,
		Players:   make(map[int]*PlayerState),
	}
}

// Player returns the state for the given port, creating it on first
// reference. Ports outside 1-4 are never created by the decoders.
func (s *Snapshot) Player(port int) *PlayerState {
	if p, ok := s.Players[port]; ok {
		return p
	}
	p := NewPlayerState()
	s.Players[port] = p
	return p
}

// ActivePorts returns the snapshot's populated ports in ascending order.
func (s *Snapshot) ActivePorts() []int {
	ports := make([]int, 0, len(s.Players))
	for port := range s.Players {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports
}
