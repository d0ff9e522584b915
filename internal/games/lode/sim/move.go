package sim

// Move is the kind of movement a character is performing or has queued.
type Move uint8

const (
	MoveNone Move = iota
	MoveLeft
	MoveRight
	MoveClimbUp
	MoveClimbDown
	MoveFall
	MoveDigLeft
	MoveDigRight
	MoveDigTowardFacing // request only, resolved by the hero
	MoveClimbOut        // pursuer leaving a hole
	MoveRespawn         // pursuer waiting at its respawn point
)

// String returns a human-readable name for the move.
func (m Move) String() string {
	switch m {
	case MoveNone:
		return "None"
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	case MoveClimbUp:
		return "ClimbUp"
	case MoveClimbDown:
		return "ClimbDown"
	case MoveFall:
		return "Fall"
	case MoveDigLeft:
		return "DigLeft"
	case MoveDigRight:
		return "DigRight"
	case MoveDigTowardFacing:
		return "DigTowardFacing"
	case MoveClimbOut:
		return "ClimbOut"
	case MoveRespawn:
		return "Respawn"
	default:
		return "Unknown"
	}
}

// Reverse returns the opposite direction, or MoveNone if there is none.
func (m Move) Reverse() Move {
	switch m {
	case MoveLeft:
		return MoveRight
	case MoveRight:
		return MoveLeft
	case MoveClimbUp:
		return MoveClimbDown
	case MoveClimbDown:
		return MoveClimbUp
	default:
		return MoveNone
	}
}

// IsDig reports whether the move is a committed dig.
func (m Move) IsDig() bool {
	return m == MoveDigLeft || m == MoveDigRight
}
