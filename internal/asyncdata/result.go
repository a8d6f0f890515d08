package asyncdata

import "fmt"

type State int

const (
	Pending State = iota
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is what a view renders from: data, an error, or a pending marker.
// Data is the zero value unless the load resolved.
type Result[T any] struct {
	Data    T
	Err     error
	Pending bool
}

// Ready reports whether Data holds a resolved value.
func (r Result[T]) Ready() bool {
	return !r.Pending && r.Err == nil
}

// KeyTypeError means two loaders with different result types share a key.
type KeyTypeError struct {
	Key  string
	Have any
	Want any
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("cache key %q holds %T, not %T", e.Key, e.Have, e.Want)
}

type outcome struct {
	value   any
	err     error
	pending bool
}

func typed[T any](key string, o outcome) Result[T] {
	if o.pending {
		return Result[T]{Pending: true}
	}
	if o.err != nil {
		return Result[T]{Err: o.err}
	}
	if o.value == nil {
		var zero T
		return Result[T]{Data: zero}
	}
	v, ok := o.value.(T)
	if !ok {
		var want T
		return Result[T]{Err: &KeyTypeError{Key: key, Have: o.value, Want: want}}
	}
	return Result[T]{Data: v}
}
