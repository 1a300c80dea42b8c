package parser

import (
	"github.com/AndrewAXue/libmelee/pkg/core"
)

// Pre-frame record offsets.
const (
	prePort    = 0x5
	preMainX   = 0x19
	preMainY   = 0x1d
	preCStickX = 0x21
	preCStickY = 0x25
	preButtons = 0x31
)

// Button bit positions in the pre-frame physical button bitmask.
var buttonMasks = map[core.Button]uint16{
	core.ButtonDLeft:  0x0001,
	core.ButtonDRight: 0x0002,
	core.ButtonDDown:  0x0004,
	core.ButtonDUp:    0x0008,
	core.ButtonZ:      0x0010,
	core.ButtonR:      0x0020,
	core.ButtonL:      0x0040,
	core.ButtonA:      0x0100,
	core.ButtonB:      0x0200,
	core.ButtonX:      0x0400,
	core.ButtonY:      0x0800,
	core.ButtonStart:  0x1000,
}

// normalizeStick rescales a raw analog axis from [-1, 1] to [0, 1].
func normalizeStick(raw float64) float64 {
	return raw/2 + 0.5
}

// ParsePreFrame decodes a pre-frame-update record: the physical
// controller state for one port, plus the costume and CPU level
// captured at game start.
func (p *Parser) ParsePreFrame(snap *core.Snapshot, rec []byte) error {
	port, err := p.portAt(rec, prePort)
	if err != nil {
		return err
	}
	ps := snap.Player(port)

	ps.Costume = p.costumes[port-1]
	ps.CPULevel = int(p.cpuLevels[port-1])

	ps.Controller.MainStick = core.StickPos{
		X: normalizeStick(f32At(rec, preMainX)),
		Y: normalizeStick(f32At(rec, preMainY)),
	}
	ps.Controller.CStick = core.StickPos{
		X: normalizeStick(f32At(rec, preCStickX)),
		Y: normalizeStick(f32At(rec, preCStickY)),
	}

	bits := u16At(rec, preButtons)
	for button, mask := range buttonMasks {
		ps.Controller.Button[button] = bits&mask != 0
	}

	return nil
}
