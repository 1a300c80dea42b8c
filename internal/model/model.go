package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&RecorderInfo{},
	&Session{},
	&SessionPlayer{},
	&GameFrame{},
	&MenuFrame{},
	&DecodePerformance{},
}

// RecorderInfo contains information about the recorder instance
type RecorderInfo struct {
	gorm.Model
	InstanceName string `json:"instanceName" gorm:"size:127"`
	Description  string `json:"description" gorm:"size:255"`
}

func (RecorderInfo) TableName() string {
	return "recorder_infos"
}

// Session is one game from start record to end record
type Session struct {
	gorm.Model
	SLPVersion     string    `json:"slpVersion" gorm:"size:15"`
	LegacyBookends bool      `json:"legacyBookends"`
	StageName      string    `json:"stageName" gorm:"size:63"`
	StartedAt      time.Time `json:"startedAt"`
	EndedAt        time.Time `json:"endedAt"`
	FrameCount     uint      `json:"frameCount"`

	Players []SessionPlayer `json:"players" gorm:"foreignKey:SessionID"`
}

func (Session) TableName() string {
	return "sessions"
}

// SessionPlayer is one occupied controller port within a session
type SessionPlayer struct {
	gorm.Model
	SessionID uint  `json:"sessionId" gorm:"index"`
	Port      int   `json:"port"`
	Costume   uint8 `json:"costume"`
	IsCPU     bool  `json:"isCpu"`
	CPULevel  int   `json:"cpuLevel"`
}

func (SessionPlayer) TableName() string {
	return "session_players"
}

// GameFrame is one finalized gameplay frame. Player and projectile
// detail goes into JSON columns rather than per-field tables; queries
// against the recordings are read-mostly and frame-granular.
type GameFrame struct {
	gorm.Model
	SessionID   uint           `json:"sessionId" gorm:"index"`
	FrameIndex  int32          `json:"frameIndex" gorm:"index"`
	Distance    float64        `json:"distance"`
	Players     datatypes.JSON `json:"players"`
	Projectiles datatypes.JSON `json:"projectiles"`
}

func (GameFrame) TableName() string {
	return "game_frames"
}

// MenuFrame is one finalized menu-scene frame
type MenuFrame struct {
	gorm.Model
	SessionID  uint           `json:"sessionId" gorm:"index"`
	FrameIndex int32          `json:"frameIndex"`
	Scene      string         `json:"scene" gorm:"size:31"`
	SubMenu    uint8          `json:"subMenu"`
	Players    datatypes.JSON `json:"players"`
}

func (MenuFrame) TableName() string {
	return "menu_frames"
}

// DecodePerformance is a periodic sample of decode throughput
type DecodePerformance struct {
	gorm.Model
	SessionID      uint    `json:"sessionId" gorm:"index"`
	FramesDecoded  uint    `json:"framesDecoded"`
	BytesConsumed  uint64  `json:"bytesConsumed"`
	FramesPerSec   float64 `json:"framesPerSec"`
	PendingBacklog int     `json:"pendingBacklog"`
}

func (DecodePerformance) TableName() string {
	return "decode_performances"
}
