// Package pipeline: stock stages for common pipeline patterns.

package pipeline

// Pass returns a transform that passes its input through unchanged.
// Useful as a placeholder or as a point to attach a Label for observers.
func Pass[T any]() Transform[T, T] {
	return func(in T) Result[T] { return Produced(in) }
}

// Tap returns a transform that calls fn(in) then passes in through unchanged.
// Use for side effects without changing the value.
func Tap[T any](fn func(T)) Transform[T, T] {
	return func(in T) Result[T] {
		fn(in)
		return Produced(in)
	}
}

// Filter returns a transform that passes in through only if keep(in) is true.
// Otherwise it yields Absent and the rest of the pipeline does not run.
func Filter[T any](keep func(T) bool) Transform[T, T] {
	return func(in T) Result[T] {
		if !keep(in) {
			return Absent[T]()
		}
		return Produced(in)
	}
}

// Constant returns a transform that ignores its input and always yields value.
func Constant[I, O any](value O) Transform[I, O] {
	return func(I) Result[O] { return Produced(value) }
}

// Emit returns a source that always yields value.
func Emit[O any](value O) Source[O] {
	return func() Result[O] { return Produced(value) }
}

// Discard returns a sink that accepts and drops every value.
func Discard[I any]() Sink[I] {
	return func(I) Result[Unit] { return Produced(Unit{}) }
}

// Try adapts a fallible function. A non-nil error yields Absent; onErr, if
// non-nil, is told about it first. The error itself never leaves the stage.
func Try[I, O any](fn func(I) (O, error), onErr func(I, error)) Transform[I, O] {
	return func(in I) Result[O] {
		out, err := fn(in)
		if err != nil {
			if onErr != nil {
				onErr(in, err)
			}
			return Absent[O]()
		}
		return Produced(out)
	}
}

// MapSlice returns a transform that converts []T to []U using convert for
// each element. If any element converts to Absent, the whole result is Absent.
func MapSlice[T, U any](convert Transform[T, U]) Transform[[]T, []U] {
	return func(slice []T) Result[[]U] {
		out := make([]U, 0, len(slice))
		for _, v := range slice {
			u, ok := convert(v).Get()
			if !ok {
				return Absent[[]U]()
			}
			out = append(out, u)
		}
		return Produced(out)
	}
}

// FilterSlice returns a transform that keeps only the elements of []T for
// which keep(v) is true.
func FilterSlice[T any](keep func(T) bool) Transform[[]T, []T] {
	return func(slice []T) Result[[]T] {
		out := make([]T, 0, len(slice))
		for _, v := range slice {
			if keep(v) {
				out = append(out, v)
			}
		}
		return Produced(out)
	}
}
