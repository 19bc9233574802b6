package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/pogo/internal/domain/entity"
)

// DefaultDeadzone is the stick deadzone used when none is configured.
const DefaultDeadzone = 0.2

// InputSource produces one input snapshot per tick.
type InputSource interface {
	Poll() entity.Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func() entity.Input

// Poll calls f.
func (f InputFunc) Poll() entity.Input { return f() }

// MergeInputs polls every source once. The first non-zero move axis wins;
// buttons are ORed.
func MergeInputs(sources ...InputSource) entity.Input {
	var merged entity.Input
	for _, src := range sources {
		if src == nil {
			continue
		}
		in := src.Poll()
		if merged.MoveX == 0 && in.MoveX != 0 {
			merged.MoveX = max(-1, min(1, in.MoveX))
		}
		merged.JumpPressed = merged.JumpPressed || in.JumpPressed
		merged.JumpHeld = merged.JumpHeld || in.JumpHeld
		merged.AttackPressed = merged.AttackPressed || in.AttackPressed
		merged.AttackHeld = merged.AttackHeld || in.AttackHeld
	}
	return merged
}

// VirtualInput is a scripted or on-screen input source. Presses set an edge
// flag that is consumed by the next Poll.
type VirtualInput struct {
	state entity.Input
}

// NewVirtualInput creates an idle virtual input.
func NewVirtualInput() *VirtualInput {
	return &VirtualInput{}
}

// SetMoveX sets the move axis, clamped to [-1, 1].
func (v *VirtualInput) SetMoveX(x float64) {
	v.state.MoveX = max(-1, min(1, x))
}

// PressJump holds jump, raising the edge if it was released.
func (v *VirtualInput) PressJump() {
	if !v.state.JumpHeld {
		v.state.JumpPressed = true
	}
	v.state.JumpHeld = true
}

// ReleaseJump releases jump.
func (v *VirtualInput) ReleaseJump() {
	v.state.JumpHeld = false
}

// PressAttack holds attack, raising the edge if it was released.
func (v *VirtualInput) PressAttack() {
	if !v.state.AttackHeld {
		v.state.AttackPressed = true
	}
	v.state.AttackHeld = true
}

// ReleaseAttack releases attack.
func (v *VirtualInput) ReleaseAttack() {
	v.state.AttackHeld = false
}

// Poll returns the current state and clears the edge flags.
func (v *VirtualInput) Poll() entity.Input {
	snapshot := v.state
	v.state.JumpPressed = false
	v.state.AttackPressed = false
	return snapshot
}

// Reset releases everything.
func (v *VirtualInput) Reset() {
	v.state = entity.Input{}
}

// KeyboardSource reads the keyboard through ebiten.
type KeyboardSource struct{}

var (
	keysLeft   = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	keysRight  = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	keysJump   = []ebiten.Key{ebiten.KeySpace, ebiten.KeyZ, ebiten.KeyW, ebiten.KeyArrowUp}
	keysAttack = []ebiten.Key{ebiten.KeyX, ebiten.KeyJ}
)

// Poll reads the current keyboard state.
func (KeyboardSource) Poll() entity.Input {
	var in entity.Input
	if anyKeyPressed(keysLeft) {
		in.MoveX--
	}
	if anyKeyPressed(keysRight) {
		in.MoveX++
	}
	in.JumpHeld = anyKeyPressed(keysJump)
	in.JumpPressed = anyKeyJustPressed(keysJump)
	in.AttackHeld = anyKeyPressed(keysAttack)
	in.AttackPressed = anyKeyJustPressed(keysAttack)
	return in
}

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyKeyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// PadState is the raw state of one gamepad.
type PadState struct {
	Connected  bool
	StickX     float64
	DPadLeft   bool
	DPadRight  bool
	JumpHeld   bool
	AttackHeld bool
}

// GamepadSource reads the first connected standard-layout gamepad. Button
// edges are derived from the previous poll.
type GamepadSource struct {
	Deadzone float64

	read       func() PadState
	lastJump   bool
	lastAttack bool
}

// NewGamepadSource creates a gamepad source backed by ebiten.
func NewGamepadSource(deadzone float64) *GamepadSource {
	return &GamepadSource{Deadzone: deadzone, read: readEbitenPad}
}

// Poll reads the pad and converts it to an input snapshot.
func (g *GamepadSource) Poll() entity.Input {
	if g.read == nil {
		return entity.Input{}
	}
	return g.convert(g.read())
}

func (g *GamepadSource) convert(pad PadState) entity.Input {
	if !pad.Connected {
		g.lastJump = false
		g.lastAttack = false
		return entity.Input{}
	}

	deadzone := g.Deadzone
	if deadzone <= 0 {
		deadzone = DefaultDeadzone
	}

	var in entity.Input
	switch {
	case pad.DPadLeft:
		in.MoveX = -1
	case pad.DPadRight:
		in.MoveX = 1
	case math.Abs(pad.StickX) >= deadzone:
		in.MoveX = max(-1, min(1, pad.StickX))
	}

	in.JumpHeld = pad.JumpHeld
	in.AttackHeld = pad.AttackHeld
	in.JumpPressed = pad.JumpHeld && !g.lastJump
	in.AttackPressed = pad.AttackHeld && !g.lastAttack
	g.lastJump = pad.JumpHeld
	g.lastAttack = pad.AttackHeld
	return in
}

func readEbitenPad() PadState {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		pressed := func(b ebiten.StandardGamepadButton) bool {
			return ebiten.IsStandardGamepadButtonPressed(id, b)
		}
		return PadState{
			Connected:  true,
			StickX:     ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			DPadLeft:   pressed(ebiten.StandardGamepadButtonLeftLeft),
			DPadRight:  pressed(ebiten.StandardGamepadButtonLeftRight),
			JumpHeld:   pressed(ebiten.StandardGamepadButtonRightBottom) || pressed(ebiten.StandardGamepadButtonRightRight),
			AttackHeld: pressed(ebiten.StandardGamepadButtonRightLeft) || pressed(ebiten.StandardGamepadButtonRightTop),
		}
	}
	return PadState{}
}
