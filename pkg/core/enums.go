package core

// Stage identifies a tournament-legal stage by its in-game ID.
// StageNone stands in for "no stage selected" or an unmapped ID.
type Stage uint16

const (
	StageNone             Stage = 0
	StageFountainOfDreams Stage = 2
	StagePokemonStadium   Stage = 3
	StageYoshisStory      Stage = 8
	StageDreamland        Stage = 28
	StageBattlefield      Stage = 31
	StageFinalDestination Stage = 32
)

// String returns a readable stage name.
func (s Stage) String() string {
	switch s {
	case StageFountainOfDreams:
		return "FOUNTAIN_OF_DREAMS"
	case StagePokemonStadium:
		return "POKEMON_STADIUM"
	case StageYoshisStory:
		return "YOSHIS_STORY"
	case StageDreamland:
		return "DREAMLAND"
	case StageBattlefield:
		return "BATTLEFIELD"
	case StageFinalDestination:
		return "FINAL_DESTINATION"
	case StageNone:
		return "NO_STAGE"
	default:
		return "UNKNOWN_STAGE"
	}
}

// Character is Melee's internal character ID, the one carried by
// post-frame records. CSS records carry external IDs instead; see
// tables.CharacterFromCSS for the conversion.
type Character uint8

const (
	Mario          Character = 0x00
	Fox            Character = 0x01
	CaptainFalcon  Character = 0x02
	DonkeyKong     Character = 0x03
	Kirby          Character = 0x04
	Bowser         Character = 0x05
	Link           Character = 0x06
	Sheik          Character = 0x07
	Ness           Character = 0x08
	Peach          Character = 0x09
	Popo           Character = 0x0a
	Nana           Character = 0x0b
	Pikachu        Character = 0x0c
	Samus          Character = 0x0d
	Yoshi          Character = 0x0e
	Jigglypuff     Character = 0x0f
	Mewtwo         Character = 0x10
	Luigi          Character = 0x11
	Marth          Character = 0x12
	Zelda          Character = 0x13
	YoungLink      Character = 0x14
	DrMario        Character = 0x15
	Falco          Character = 0x16
	Pichu          Character = 0x17
	GameAndWatch   Character = 0x18
	Ganondorf      Character = 0x19
	Roy            Character = 0x1a

	CharacterNone    Character = 0xfe
	UnknownCharacter Character = 0xff
)

// ActionState is an in-game animation/action ID from post-frame records.
type ActionState uint16

// Action states the engine treats specially. The full catalog runs to
// 0x17e; anything past that is reported as UnknownAnimation.
const (
	ActionOnHaloDescent ActionState = 0x0c
	ActionOnHaloWait    ActionState = 0x0d
	ActionStanding      ActionState = 0x0e
	ActionTurning       ActionState = 0x12
	ActionDashing       ActionState = 0x14
	ActionKneeBend      ActionState = 0x18

	// First and last of the contiguous standard (A-button) attack block.
	ActionNeutralAttack1 ActionState = 0x2c
	ActionDownAir        ActionState = 0x42

	ActionEdgeCatching ActionState = 0xfc

	UnknownAnimation ActionState = 0xffff
)

// MenuScene is the major scene reported by menu-frame records.
type MenuScene uint16

const (
	ScenePressStart      MenuScene = iota // title screen
	SceneMainMenu                         // main menu tree
	SceneCharacterSelect                  // local CSS
	SceneStageSelect                      // stage select screen
	SceneInGame                           // gameplay transition
	SceneOnlineCSS                        // Slippi online CSS
	SceneUnknown
)

// String returns a readable scene name.
func (m MenuScene) String() string {
	switch m {
	case ScenePressStart:
		return "PRESS_START"
	case SceneMainMenu:
		return "MAIN_MENU"
	case SceneCharacterSelect:
		return "CHARACTER_SELECT"
	case SceneStageSelect:
		return "STAGE_SELECT"
	case SceneInGame:
		return "IN_GAME"
	case SceneOnlineCSS:
		return "SLIPPI_ONLINE_CSS"
	default:
		return "UNKNOWN_MENU"
	}
}

// SubMenu is the sub-state ID within a menu scene, as reported by the
// menu-frame record. UnknownSubmenu stands in for unmapped or absent IDs.
type SubMenu uint8

const (
	SubMenuOnlineCSS SubMenu = 0x00
	SubMenuNameEntry SubMenu = 0x05
	UnknownSubmenu   SubMenu = 0xff
)

// ControllerStatus is a port's plug state on the character select screen.
type ControllerStatus uint8

const (
	ControllerHuman     ControllerStatus = 0
	ControllerCPU       ControllerStatus = 1
	ControllerDemo      ControllerStatus = 2
	ControllerUnplugged ControllerStatus = 3
)

// ProjectileType identifies an item/projectile subtype. Unmapped IDs
// resolve to UnknownProjectile.
type ProjectileType uint16

const UnknownProjectile ProjectileType = 0xffff

// NoOwner is the owner-port sentinel for projectiles with no owning player.
const NoOwner = -1

// FrameNotStarted is the frame-index sentinel a snapshot carries before
// any gameplay record has been folded into it.
const FrameNotStarted int32 = -10000
