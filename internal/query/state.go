package query

import "time"

// State is the finite state of a query result. The states are mutually
// exclusive: a Result never carries both data and an error.
type State int

// Query states.
const (
	// StateIdle means the query's guard condition is not met yet; no
	// request was issued, there is no data and no error.
	StateIdle State = iota
	// StateLoading means a request is in flight and no data exists yet.
	StateLoading
	// StateSuccess means data is present.
	StateSuccess
	// StateError means the request failed (after the automatic retry) and
	// any previous data has been discarded.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of running a query, independent of any rendering
// framework.
type Result[T any] struct {
	State     State
	Data      T
	Err       error
	FetchedAt time.Time
}

// IdleResult is the initial state: no key enabled yet.
func IdleResult[T any]() Result[T] {
	return Result[T]{State: StateIdle}
}

// LoadingResult marks a request in flight.
func LoadingResult[T any]() Result[T] {
	return Result[T]{State: StateLoading}
}

// SuccessResult carries fetched data and its fetch time.
func SuccessResult[T any](data T, fetchedAt time.Time) Result[T] {
	return Result[T]{State: StateSuccess, Data: data, FetchedAt: fetchedAt}
}

// ErrorResult carries only the failure; partial data is discarded.
func ErrorResult[T any](err error) Result[T] {
	return Result[T]{State: StateError, Err: err}
}

// Loaded reports whether the result carries usable data.
func (r Result[T]) Loaded() bool {
	return r.State == StateSuccess
}
