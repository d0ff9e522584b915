package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionStop
	ActionDigLeft
	ActionDigRight
	ActionDig // dig on the side the hero faces
	ActionPause
	ActionNextLevel
	ActionPrevLevel
	ActionSkipForward // ten levels ahead
	ActionSkipBack    // ten levels back
	ActionNextIncomplete
	ActionSuicide
	ActionRestart
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:           "None",
	ActionLeft:           "Left",
	ActionRight:          "Right",
	ActionUp:             "Up",
	ActionDown:           "Down",
	ActionStop:           "Stop",
	ActionDigLeft:        "DigLeft",
	ActionDigRight:       "DigRight",
	ActionDig:            "Dig",
	ActionPause:          "Pause",
	ActionNextLevel:      "NextLevel",
	ActionPrevLevel:      "PrevLevel",
	ActionSkipForward:    "SkipForward",
	ActionSkipBack:       "SkipBack",
	ActionNextIncomplete: "NextIncomplete",
	ActionSuicide:        "Suicide",
	ActionRestart:        "Restart",
	ActionQuit:           "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
