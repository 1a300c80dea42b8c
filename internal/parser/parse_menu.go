package parser

import (
	"github.com/AndrewAXue/libmelee/internal/tables"
	"github.com/AndrewAXue/libmelee/pkg/core"
)

// Menu-frame record offsets. Every read in this path tolerates a short
// trailing buffer: older protocol revisions send fewer bytes, and each
// missing field resolves to its documented default.
const (
	menuScene        = 0x1
	menuCursorBase   = 0x3 // per-port x/y float pairs, stride 8
	menuReady        = 0x23
	menuStageID      = 0x24
	menuStatusBase   = 0x25 // per-port controller status bytes
	menuCharBase     = 0x29 // per-port selected-character bytes
	menuCoinBase     = 0x2d // per-port coin bytes, doubles as slider flags
	menuStageCursorX = 0x31
	menuStageCursorY = 0x35
	menuFrameCount   = 0x39
	menuSubMenu      = 0x3d
	menuSelection    = 0x3e
	menuCostume      = 0x3f
	menuNametag      = 0x40
)

// Raw scene IDs carried by the menu-frame record.
const (
	sceneIDPressStart   = 0x0000
	sceneIDMainMenu     = 0x0001
	sceneIDCSS          = 0x0002
	sceneIDOnlineCSS    = 0x0008
	sceneIDStageSelect  = 0x0102
	sceneIDStageSelect2 = 0x0108
	sceneIDInGame       = 0x0202
)

// coinDownValue is the raw coin byte marking a placed selection coin.
const coinDownValue = 2

// Nametag-byte values disambiguating the online CSS sub-state.
const (
	nametagOnlineCSS = 0x00
	nametagNameEntry = 0x05
)

// sceneFromID maps a raw scene ID to the internal MenuScene.
func sceneFromID(id uint16) core.MenuScene {
	switch id {
	case sceneIDPressStart:
		return core.ScenePressStart
	case sceneIDMainMenu:
		return core.SceneMainMenu
	case sceneIDCSS:
		return core.SceneCharacterSelect
	case sceneIDStageSelect, sceneIDStageSelect2:
		return core.SceneStageSelect
	case sceneIDInGame:
		return core.SceneInGame
	case sceneIDOnlineCSS:
		return core.SceneOnlineCSS
	default:
		return core.SceneUnknown
	}
}

// ParseMenuFrame decodes a menu-frame record, the parallel decoding
// path for non-gameplay scenes. One record describes the whole scene,
// so the frame always completes after it.
func (p *Parser) ParseMenuFrame(snap *core.Snapshot, rec []byte) error {
	snap.MenuScene = sceneFromID(u16At(rec, menuScene))

	cssFamily := snap.MenuScene == core.SceneCharacterSelect ||
		snap.MenuScene == core.SceneOnlineCSS

	if cssFamily {
		// Every port is live on the select screen.
		for port := 1; port <= 4; port++ {
			snap.Player(port)
		}
		p.parseCSS(snap, rec)
	}

	if snap.MenuScene == core.SceneStageSelect {
		snap.Stage = tables.StageFromID(uint16(u8At(rec, menuStageID)))
		snap.StageSelectCursorX = f32AtOr(rec, menuStageCursorX, 0)
		snap.StageSelectCursorY = f32AtOr(rec, menuStageCursorY, 0)
	}

	snap.Frame = i32AtOr(rec, menuFrameCount, 0)

	if raw, ok := u8AtOk(rec, menuSubMenu); ok {
		snap.SubMenu = tables.SubMenuFromID(raw)
	} else {
		snap.SubMenu = core.UnknownSubmenu
	}
	snap.MenuSelection = u8AtOr(rec, menuSelection, 0)

	if snap.MenuScene == core.SceneOnlineCSS {
		p.parseOnlineCSS(snap, rec)
	}

	// A port that is not CPU-driven never keeps a CPU level.
	for _, port := range snap.ActivePorts() {
		if snap.Players[port].ControllerStatus != core.ControllerCPU {
			snap.Players[port].CPULevel = 0
		}
	}

	return nil
}

// parseCSS decodes the per-port character-select state shared by the
// local and online select screens.
func (p *Parser) parseCSS(snap *core.Snapshot, rec []byte) {
	for i := 0; i < 4; i++ {
		ps := snap.Player(i + 1)

		ps.ControllerStatus = core.ControllerStatus(u8AtOr(rec, menuStatusBase+i, uint8(core.ControllerUnplugged)))
		ps.CursorX = f32AtOr(rec, menuCursorBase+8*i, 0)
		ps.CursorY = f32AtOr(rec, menuCursorBase+8*i+4, 0)

		if raw, ok := u8AtOk(rec, menuCharBase+i); ok {
			ps.CharacterSelected = tables.CharacterFromCSS(raw)
		} else {
			ps.CharacterSelected = core.UnknownCharacter
		}

		ps.CoinDown = u8AtOr(rec, menuCoinBase+i, 0) == coinDownValue
	}

	snap.ReadyToStart = u8AtOr(rec, menuReady, 0) != 0
}

// parseOnlineCSS decodes the refinements only present on the Slippi
// online select screen: the shared costume byte, the name-entry
// disambiguator, and the CPU-level slider.
func (p *Parser) parseOnlineCSS(snap *core.Snapshot, rec []byte) {
	if costume, ok := u8AtOk(rec, menuCostume); ok {
		for port := 1; port <= 4; port++ {
			snap.Player(port).Costume = costume
		}
	}

	if tag, ok := u8AtOk(rec, menuNametag); ok {
		switch tag {
		case nametagNameEntry:
			snap.SubMenu = core.SubMenuNameEntry
		case nametagOnlineCSS:
			snap.SubMenu = core.SubMenuOnlineCSS
		}
	}

	for i := 0; i < 4; i++ {
		ps := snap.Player(i + 1)

		flag, ok := u8AtOk(rec, menuCoinBase+i)
		if !ok {
			continue
		}
		ps.IsHoldingCPUSlider = ps.CursorY < 0 && flag != 0

		if ps.IsHoldingCPUSlider {
			// The slider occupies a fixed horizontal band per port;
			// cursor x maps linearly onto levels 1-9.
			startX := -30.9 + 15.4*float64(i)
			ps.CPULevel = 1 + int((ps.CursorX-startX)/1.2)
		} else {
			ps.CPULevel = 1
		}
	}
}
