package pipeline

import "fmt"

// Unit is the payload of a sink's result and the input of a source.
type Unit = struct{}

// Result is the outcome of one stage invocation: either a produced value or
// Absent, which stops the rest of the chain. The zero Result is Absent, so
// two Absent results of the same type compare equal.
type Result[T any] struct {
	value    T
	produced bool
}

// Produced returns a Result carrying v.
func Produced[T any](v T) Result[T] {
	return Result[T]{value: v, produced: true}
}

// Absent returns the no-value Result.
func Absent[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the payload and true, or the zero value and false when r is Absent.
func (r Result[T]) Get() (T, bool) { return r.value, r.produced }

// IsAbsent reports whether r carries no value.
func (r Result[T]) IsAbsent() bool { return !r.produced }

// OrElse returns the payload, or def when r is Absent.
func (r Result[T]) OrElse(def T) T {
	if !r.produced {
		return def
	}
	return r.value
}

func (r Result[T]) String() string {
	if !r.produced {
		return "Absent"
	}
	return fmt.Sprintf("Produced(%v)", r.value)
}

// Map applies f to the payload of r. Absent stays Absent and f is not called.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.produced {
		return Absent[U]()
	}
	return Produced(f(r.value))
}

// Fold eliminates r: onValue receives the payload, onAbsent handles Absent.
func Fold[T, R any](r Result[T], onValue func(T) R, onAbsent func() R) R {
	if !r.produced {
		return onAbsent()
	}
	return onValue(r.value)
}

func erase[T any](r Result[T]) Result[any] {
	if !r.produced {
		return Absent[any]()
	}
	return Produced[any](r.value)
}

// narrow converts a type-erased result back. A nil payload (a typed nil that
// went through an interface) narrows to the zero value of T.
func narrow[T any](r Result[any]) Result[T] {
	if !r.produced {
		return Absent[T]()
	}
	v, _ := r.value.(T)
	return Produced(v)
}

func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
