// Package eventloop provides the single dispatch context the session controller runs on.
//
// # Model
//
// All controller state is mutated from callbacks executed one at a time by a [Loop].
// Blocking work (network calls) runs off-loop through [Go], which posts its completion back onto the loop,
// so suspension happens only at those boundaries.
//
// # Scheduling
//
// A [Scheduler] runs a callback on the loop after a delay and returns a [Handle].
// Cancel guarantees the callback never runs afterwards, even if the timer already fired and the callback is queued.
// [TimerScheduler] uses [time.AfterFunc]; tests use a manual scheduler that advances virtual time.
//
// # Implementations
//
//   - [Queue] : unbounded FIFO loop, drained by [Queue.Run] or pumped into another event system with [Queue.Pop]
//   - [TimerScheduler] : wall-clock scheduler posting onto any [Loop]
package eventloop
