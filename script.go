package cutscene

// A Script is a Task built from plain streams. Use a *Script
// when a task needs no state beyond its streams.
//
//	script := &cutscene.Script{
//		Name:      "intro",
//		Skippable: true,
//		Steps: func(yield func(cutscene.Wait) bool) {
//			showTitle()
//			if !yield(cutscene.Seconds(2)) {
//				return
//			}
//			hideTitle()
//		},
//		EndSteps: func(yield func(cutscene.Wait) bool) {
//			unlockInput()
//		},
//	}
type Script struct {
	Name      string
	Skippable bool

	// Steps is the Body stream.
	Steps Stream

	// SkipSteps replaces Steps when the script is skipped.
	SkipSteps Stream

	// EndSteps runs after Steps or SkipSteps finish.
	EndSteps Stream
}

func (script *Script) CanSkip() bool { return script.Skippable }
func (script *Script) Body() Stream  { return orEmpty(script.Steps) }
func (script *Script) Skip() Stream  { return orEmpty(script.SkipSteps) }
func (script *Script) End() Stream   { return orEmpty(script.EndSteps) }

// String returns Name, or "script" if it is empty.
func (script *Script) String() string {
	if script.Name == "" {
		return "script"
	}
	return script.Name
}

func orEmpty(stream Stream) Stream {
	if stream == nil {
		return empty
	}
	return stream
}

func empty(func(Wait) bool) {}
