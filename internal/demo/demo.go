// Package demo has a few scenes that exercise the scheduler end to
// end: a camera pan, a dialogue and a loading gate that cannot be
// skipped.
package demo

import (
	"errors"
	"fmt"
	"io"

	"github.com/nvlled/cutscene"
	"github.com/tanema/gween/ease"
)

// FramesPerLine is how long each dialogue line stays up.
const FramesPerLine = 30

var dialogue = []string{
	"Guard: Halt! Who goes there?",
	"Hero: Just a traveller.",
	"Guard: ...Fine. Move along.",
}

// Stage is the state the scenes act on.
type Stage struct {
	CameraX  float32
	Progress float32
	Lines    []string

	// Out receives every line as it is said. May be nil.
	Out io.Writer
}

func (st *Stage) say(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	st.Lines = append(st.Lines, line)
	if st.Out != nil {
		fmt.Fprintln(st.Out, line)
	}
}

// Play starts the intro and the loading gate. The dialogue is
// started by the intro when it ends.
func Play(sched *cutscene.Scheduler, st *Stage) error {
	_, err1 := sched.Start(Intro(sched, st))
	_, err2 := sched.Start(Loading(sched, st))
	return errors.Join(err1, err2)
}

// Intro pans the camera, shows a title card, then hands over to
// the dialogue.
func Intro(sched *cutscene.Scheduler, st *Stage) *cutscene.Script {
	return &cutscene.Script{
		Name:      "intro",
		Skippable: true,
		Steps: func(yield func(cutscene.Wait) bool) {
			st.say("[intro] fade in")
			pan := cutscene.NewTween(0, 100, 1, ease.InOutQuad, sched.Now, func(x float32) {
				st.CameraX = x
			})
			if !yield(cutscene.OnSubroutine(pan)) {
				return
			}
			st.say("[intro] title card")
			yield(cutscene.Seconds(0.5))
		},
		SkipSteps: func(yield func(cutscene.Wait) bool) {
			st.CameraX = 100
			st.say("[intro] skipped")
		},
		EndSteps: func(yield func(cutscene.Wait) bool) {
			st.say("[intro] done")
			if _, err := sched.Start(Dialogue(st)); err != nil {
				st.say("[intro] %v", err)
			}
		},
	}
}

// Dialogue shows one line every FramesPerLine frames.
func Dialogue(st *Stage) *cutscene.Script {
	return &cutscene.Script{
		Name:      "dialogue",
		Skippable: true,
		Steps: func(yield func(cutscene.Wait) bool) {
			for _, line := range dialogue {
				st.say("%s", line)
				if !yield(cutscene.Frames(FramesPerLine)) {
					return
				}
			}
		},
		SkipSteps: func(yield func(cutscene.Wait) bool) {
			st.say("[dialogue] skipped")
		},
		EndSteps: func(yield func(cutscene.Wait) bool) {
			st.say("[dialogue] done")
		},
	}
}

// Loading fills a progress bar over one second and holds until it
// is full. It cannot be skipped, so it blocks global skips while
// it runs.
func Loading(sched *cutscene.Scheduler, st *Stage) *cutscene.Script {
	return &cutscene.Script{
		Name: "loading",
		Steps: func(yield func(cutscene.Wait) bool) {
			st.say("[loading] start")
			bar := cutscene.NewTween(0, 1, 1, ease.Linear, sched.Now, func(p float32) {
				st.Progress = p
			})
			full := cutscene.Until(func() bool { return st.Progress >= 1 })
			if !yield(cutscene.OnSubroutine(cutscene.All(bar, full))) {
				return
			}
			st.say("[loading] ready")
		},
	}
}

// SkipFrom returns a Loop.BeforeTick hook that requests a global
// skip on every frame from frame on, until one is granted.
// A negative frame never skips.
func SkipFrom(sched *cutscene.Scheduler, frame int64) func(int64) {
	granted := false
	return func(current int64) {
		if granted || frame < 0 || current < frame {
			return
		}
		granted = sched.SkipAll()
	}
}
