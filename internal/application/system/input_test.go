package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/pogo/internal/domain/entity"
)

func TestVirtualInput_EdgesConsumedPerPoll(t *testing.T) {
	v := NewVirtualInput()

	v.SetMoveX(-3)
	v.PressJump()
	v.PressAttack()

	first := v.Poll()
	assert.Equal(t, entity.Input{MoveX: -1, JumpPressed: true, JumpHeld: true, AttackPressed: true, AttackHeld: true}, first)

	second := v.Poll()
	assert.Equal(t, entity.Input{MoveX: -1, JumpHeld: true, AttackHeld: true}, second)

	v.PressJump()
	assert.False(t, v.Poll().JumpPressed, "holding jump does not raise another edge")

	v.ReleaseJump()
	v.ReleaseAttack()
	v.PressJump()
	third := v.Poll()
	assert.True(t, third.JumpPressed)
	assert.False(t, third.AttackHeld)

	v.Reset()
	assert.Equal(t, entity.Input{}, v.Poll())
}

func TestMergeInputs(t *testing.T) {
	keyboard := InputFunc(func() entity.Input { return entity.Input{JumpHeld: true} })
	pad := InputFunc(func() entity.Input { return entity.Input{MoveX: 0.5, AttackPressed: true, AttackHeld: true} })
	touch := InputFunc(func() entity.Input { return entity.Input{MoveX: -1} })

	merged := MergeInputs(keyboard, nil, pad, touch)

	assert.Equal(t, entity.Input{MoveX: 0.5, JumpHeld: true, AttackPressed: true, AttackHeld: true}, merged)
	assert.Equal(t, entity.Input{}, MergeInputs())
}

func TestGamepadSource_Convert(t *testing.T) {
	tests := []struct {
		name  string
		pad   PadState
		wantX float64
	}{
		{"disconnected", PadState{StickX: 1}, 0},
		{"stick inside deadzone", PadState{Connected: true, StickX: 0.15}, 0},
		{"stick outside deadzone", PadState{Connected: true, StickX: -0.6}, -0.6},
		{"dpad overrides stick", PadState{Connected: true, StickX: 0.9, DPadLeft: true}, -1},
		{"dpad right", PadState{Connected: true, DPadRight: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GamepadSource{}
			assert.Equal(t, tt.wantX, g.convert(tt.pad).MoveX)
		})
	}
}

func TestGamepadSource_ButtonEdges(t *testing.T) {
	state := PadState{Connected: true, JumpHeld: true}
	g := &GamepadSource{Deadzone: 0.2, read: func() PadState { return state }}

	first := g.Poll()
	assert.True(t, first.JumpPressed)
	assert.True(t, first.JumpHeld)

	second := g.Poll()
	assert.False(t, second.JumpPressed)
	assert.True(t, second.JumpHeld)

	state = PadState{}
	assert.Equal(t, entity.Input{}, g.Poll())

	state = PadState{Connected: true, JumpHeld: true, AttackHeld: true}
	third := g.Poll()
	assert.True(t, third.JumpPressed, "disconnect resets edge tracking")
	assert.True(t, third.AttackPressed)
}
