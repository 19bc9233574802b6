package replay

import "github.com/younwookim/pogo/internal/domain/entity"

// FormatVersion is written into every recording
const FormatVersion = "2.0"

// FrameInput records the merged input snapshot for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	MX float64 `json:"mx,omitempty"` // Move axis
	JP bool    `json:"jp,omitempty"` // JumpPressed
	JH bool    `json:"jh,omitempty"` // JumpHeld
	AP bool    `json:"ap,omitempty"` // AttackPressed
	AH bool    `json:"ah,omitempty"` // AttackHeld
}

// NewFrameInput converts an input snapshot for frame f
func NewFrameInput(f int, in entity.Input) FrameInput {
	return FrameInput{
		F:  f,
		MX: in.MoveX,
		JP: in.JumpPressed,
		JH: in.JumpHeld,
		AP: in.AttackPressed,
		AH: in.AttackHeld,
	}
}

// Input converts the frame back into an input snapshot
func (fi FrameInput) Input() entity.Input {
	return entity.Input{
		MoveX:         fi.MX,
		JumpPressed:   fi.JP,
		JumpHeld:      fi.JH,
		AttackPressed: fi.AP,
		AttackHeld:    fi.AH,
	}
}

// ReplayData contains all data needed to replay a level session
type ReplayData struct {
	Version   string       `json:"version"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
