// Package fetch models the lifecycle of one asynchronous resource fetch.
//
// A Resource moves through Levels driven only by discrete events:
//
//	{initial, prompted, success, failure} --Request--> fetching
//	fetching --Succeed--> success
//	fetching --Fail--> failure
//	any --Prompt--> prompted
//
// Request increments the resource's sequence number. Receives tagged with a
// sequence (non-zero seq) are dropped unless they match the latest request;
// untagged receives (seq 0) are applied to whatever request is in flight.
// Receives are only accepted while fetching. There are no timers: a resource
// stays fetching until a matching receive arrives.
package fetch

import "fmt"

// Level is the lifecycle status of one resource.
type Level int

const (
	Initial Level = iota
	Prompted
	Fetching
	Success
	Failure
)

func (l Level) String() string {
	switch l {
	case Initial:
		return "initial"
	case Prompted:
		return "prompted"
	case Fetching:
		return "fetching"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Settled reports whether the last request cycle has completed.
func (l Level) Settled() bool {
	return l == Success || l == Failure
}

// Resource is the fetch state of one resource along with its last
// successful payload. It is a value type; transitions return a new value.
type Resource[T any] struct {
	Level Level
	Seq   uint64
	Data  T
}

// Request starts a new request cycle.
func (r Resource[T]) Request() Resource[T] {
	r.Level = Fetching
	r.Seq++
	return r
}

// Prompt marks the resource as needing a fetch because something it
// depends on changed. Any in-flight receive is dropped once prompted.
func (r Resource[T]) Prompt() Resource[T] {
	r.Level = Prompted
	return r
}

// Succeed completes the in-flight request with data. ok is false when the
// receive was rejected, in which case r is returned unchanged.
func (r Resource[T]) Succeed(seq uint64, data T) (Resource[T], bool) {
	if !r.Accepts(seq) {
		return r, false
	}
	r.Level = Success
	r.Data = data
	return r, true
}

// Fail completes the in-flight request with an error. Data from the last
// success is kept.
func (r Resource[T]) Fail(seq uint64) (Resource[T], bool) {
	if !r.Accepts(seq) {
		return r, false
	}
	r.Level = Failure
	return r, true
}

// Accepts reports whether a receive tagged seq would be applied.
func (r Resource[T]) Accepts(seq uint64) bool {
	if r.Level != Fetching {
		return false
	}
	return seq == 0 || seq == r.Seq
}
