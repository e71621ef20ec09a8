package ecs

import (
	"github.com/nvlled/cutscene"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventType is the Donburi event type for scheduler lifecycle events.
var EventType = events.NewEventType[cutscene.Event]()

// Bridge publishes every lifecycle event of sched to world. Events
// are queued and delivered by ProcessEvents. Call cancel to stop
// forwarding.
func Bridge(world donburi.World, sched *cutscene.Scheduler) (cancel func()) {
	return sched.Subscribe(func(e cutscene.Event) {
		EventType.Publish(world, e)
	})
}
