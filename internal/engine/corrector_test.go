package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AndrewAXue/libmelee/pkg/core"
)

func snapshotWithPlayer(frame int32, ps *core.PlayerState) *core.Snapshot {
	snap := core.NewSnapshot()
	snap.Frame = frame
	snap.Stage = core.StageBattlefield
	snap.Players[1] = ps
	return snap
}

func prevWithPlayer(frame int32, ps *core.PlayerState) *core.Snapshot {
	return snapshotWithPlayer(frame, ps)
}

func TestCorrectInvulnerability(t *testing.T) {
	tests := []struct {
		name     string
		frame    int32
		player   *core.PlayerState
		last     *core.PlayerState
		wantLeft int
	}{
		{
			name:     "countdown ticks once per frame",
			frame:    200,
			player:   &core.PlayerState{Action: core.ActionStanding},
			last:     &core.PlayerState{InvulnerabilityLeft: 50},
			wantLeft: 49,
		},
		{
			name:     "countdown floors at zero",
			frame:    200,
			player:   &core.PlayerState{Action: core.ActionStanding},
			last:     &core.PlayerState{InvulnerabilityLeft: 0},
			wantLeft: 0,
		},
		{
			name:     "halo wait grants respawn invulnerability",
			frame:    400,
			player:   &core.PlayerState{Action: core.ActionOnHaloWait},
			wantLeft: 120,
		},
		{
			name:     "halo descent after a stock loss",
			frame:    400,
			player:   &core.PlayerState{Action: core.ActionOnHaloDescent},
			wantLeft: 120,
		},
		{
			name:     "halo descent during the match intro",
			frame:    -80,
			player:   &core.PlayerState{Action: core.ActionOnHaloDescent},
			wantLeft: 0,
		},
		{
			name:     "first ledge-catch frame",
			frame:    500,
			player:   &core.PlayerState{Action: core.ActionEdgeCatching, ActionFrame: 1},
			wantLeft: 36,
		},
		{
			name:     "held ledge-catch keeps counting down",
			frame:    500,
			player:   &core.PlayerState{Action: core.ActionEdgeCatching, ActionFrame: 2},
			last:     &core.PlayerState{InvulnerabilityLeft: 36},
			wantLeft: 35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshotWithPlayer(tt.frame, tt.player)

			var prev *core.Snapshot
			if tt.last != nil {
				prev = prevWithPlayer(tt.frame-1, tt.last)
			}

			applyCorrections(snap, prev)

			assert.Equal(t, tt.wantLeft, tt.player.InvulnerabilityLeft)
		})
	}
}

func TestInvulnerableFlagStaysRaw(t *testing.T) {
	// The record's invulnerable bit and the derived countdown are
	// independent fields; the countdown never rewrites the flag.
	ticking := &core.PlayerState{Action: core.ActionStanding}
	snap := snapshotWithPlayer(200, ticking)
	applyCorrections(snap, prevWithPlayer(199, &core.PlayerState{InvulnerabilityLeft: 50}))
	assert.Equal(t, 49, ticking.InvulnerabilityLeft)
	assert.False(t, ticking.Invulnerable)

	flagged := &core.PlayerState{Action: core.ActionStanding, Invulnerable: true}
	snap = snapshotWithPlayer(200, flagged)
	applyCorrections(snap, nil)
	assert.Equal(t, 0, flagged.InvulnerabilityLeft)
	assert.True(t, flagged.Invulnerable)
}

func TestCorrectMoonwalk(t *testing.T) {
	tests := []struct {
		name   string
		player *core.PlayerState
		last   *core.PlayerState
		want   bool
	}{
		{
			name:   "dash entered from standing",
			player: &core.PlayerState{Action: core.ActionDashing},
			last:   &core.PlayerState{Action: core.ActionStanding},
			want:   true,
		},
		{
			name:   "dash entered from turn",
			player: &core.PlayerState{Action: core.ActionDashing},
			last:   &core.PlayerState{Action: core.ActionTurning},
			want:   false,
		},
		{
			name:   "continued dash stops warning",
			player: &core.PlayerState{Action: core.ActionDashing},
			last:   &core.PlayerState{Action: core.ActionDashing, MoonwalkWarning: true},
			want:   false,
		},
		{
			name:   "warning clears when the dash ends",
			player: &core.PlayerState{Action: core.ActionStanding, MoonwalkWarning: true},
			last:   &core.PlayerState{Action: core.ActionDashing, MoonwalkWarning: true},
			want:   false,
		},
		{
			name:   "no history",
			player: &core.PlayerState{Action: core.ActionDashing},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshotWithPlayer(300, tt.player)

			var prev *core.Snapshot
			if tt.last != nil {
				prev = prevWithPlayer(299, tt.last)
			}

			applyCorrections(snap, prev)

			assert.Equal(t, tt.want, tt.player.MoonwalkWarning)
		})
	}
}

func TestOffStage(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		ground bool
		want   bool
	}{
		{"past the edge and below", 70, -20, false, true},
		{"past the left edge and below", -70, -20, false, true},
		{"past the edge but high", 70, 30, false, false},
		{"below but inside the edge", 10, -20, false, false},
		{"grounded past the edge", 70, -20, true, false},
		{"center stage", 0, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := &core.PlayerState{Action: core.ActionStanding, X: tt.x, Y: tt.y, OnGround: tt.ground}
			snap := snapshotWithPlayer(300, ps)

			applyCorrections(snap, nil)

			assert.Equal(t, tt.want, ps.OffStage)
		})
	}
}

func TestOffStage_UnknownStageLeftAlone(t *testing.T) {
	ps := &core.PlayerState{Action: core.ActionStanding, X: 900, Y: -50}
	snap := snapshotWithPlayer(300, ps)
	snap.Stage = core.StageNone

	applyCorrections(snap, nil)

	assert.False(t, ps.OffStage)
}

func TestZeroIndexedActionFrame(t *testing.T) {
	fox := &core.PlayerState{Character: core.Fox, Action: core.ActionKneeBend, ActionFrame: 0}
	marth := &core.PlayerState{Character: core.Marth, Action: core.ActionKneeBend, ActionFrame: 0}

	snap := core.NewSnapshot()
	snap.Frame = 300
	snap.Stage = core.StageBattlefield
	snap.Players[1] = fox
	snap.Players[2] = marth

	applyCorrections(snap, nil)

	assert.Equal(t, 1, fox.ActionFrame)
	assert.Equal(t, 0, marth.ActionFrame)
}

func TestInterruptibleOnlyDuringStandardAttacks(t *testing.T) {
	attacking := &core.PlayerState{Action: core.ActionNeutralAttack1, Interruptible: true}
	idle := &core.PlayerState{Action: core.ActionStanding, Interruptible: true}

	snap := core.NewSnapshot()
	snap.Frame = 300
	snap.Stage = core.StageBattlefield
	snap.Players[1] = attacking
	snap.Players[2] = idle

	applyCorrections(snap, nil)

	assert.True(t, attacking.Interruptible)
	assert.False(t, idle.Interruptible)
}

func TestPairDistance(t *testing.T) {
	snap := core.NewSnapshot()
	assert.Zero(t, pairDistance(snap))

	snap.Players[2] = &core.PlayerState{X: 3, Y: 0}
	assert.Zero(t, pairDistance(snap))

	snap.Players[1] = &core.PlayerState{X: 0, Y: 4}
	assert.InDelta(t, 5, pairDistance(snap), 1e-9)

	// A third player never affects the pair.
	snap.Players[3] = &core.PlayerState{X: 100, Y: 100}
	assert.InDelta(t, 5, pairDistance(snap), 1e-9)
}
