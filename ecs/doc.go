// Package ecs forwards scheduler lifecycle events into a [Donburi]
// world, so ECS systems can react to cutscenes starting, being
// skipped and ending.
//
// Usage:
//
//	cancel := ecs.Bridge(world, sched)
//	defer cancel()
//	ecs.EventType.Subscribe(world, func(w donburi.World, e cutscene.Event) {
//		if e.Kind == cutscene.EventStopped {
//			unlockPlayer(w)
//		}
//	})
//	...
//	ecs.EventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
