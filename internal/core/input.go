package core

// InputKind tags the variant carried by an Input.
type InputKind int

const (
	InputNone           InputKind = iota
	InputMove                     // request a heading change
	InputForceNextLevel           // debug: jump to the next level
	InputPause                    // toggle pause
	InputQuit                     // end the session
)

// Input is a semantic intent produced by the platform from a key press.
// Only InputMove uses Dir.
type Input struct {
	Kind InputKind
	Dir  Direction
}

// Move returns a heading-change intent.
func Move(d Direction) Input {
	return Input{Kind: InputMove, Dir: d}
}

// ForceNextLevel returns the level-skip intent.
func ForceNextLevel() Input {
	return Input{Kind: InputForceNextLevel}
}

// Pause returns the pause toggle intent.
func Pause() Input {
	return Input{Kind: InputPause}
}

// Quit returns the quit intent.
func Quit() Input {
	return Input{Kind: InputQuit}
}

// String returns a human-readable name for the intent.
func (in Input) String() string {
	switch in.Kind {
	case InputMove:
		return "move " + in.Dir.String()
	case InputForceNextLevel:
		return "next level"
	case InputPause:
		return "pause"
	case InputQuit:
		return "quit"
	default:
		return "none"
	}
}
