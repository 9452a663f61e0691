package editor

import "time"

// Repeater grants key auto-repeat while a session is open.
//
// The resource is process-wide in most hosts, so a session acquires it on
// Open and releases it exactly once on Stop.
type Repeater interface {
	AcquireRepeat(delay, interval time.Duration) (RepeatHandle, error)
}

// RepeatHandle restores the host's previous repeat behavior on Release.
type RepeatHandle interface {
	Release()
}

// RepeaterFunc adapts a function to Repeater.
type RepeaterFunc func(delay, interval time.Duration) (RepeatHandle, error)

func (f RepeaterFunc) AcquireRepeat(delay, interval time.Duration) (RepeatHandle, error) {
	return f(delay, interval)
}

// ReleaseFunc adapts a function to RepeatHandle.
type ReleaseFunc func()

func (f ReleaseFunc) Release() { f() }
