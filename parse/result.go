package parse

// Status says whether a failure may be backtracked past.
type Status uint8

const (
	Uncommitted Status = iota
	Committed
)

// Or combines two statuses. Commit is sticky.
func (s Status) Or(other Status) Status {
	if s == Committed || other == Committed {
		return Committed
	}
	return Uncommitted
}

func (s Status) String() string {
	if s == Committed {
		return "committed"
	}
	return "uncommitted"
}

// Result is the outcome of running a parser.
//
// On success Err is nil, Value holds the parsed value, Consumed the number
// of tokens matched and Next the state just past them.
//
// On failure Err is set, Status is the explicit commit status and Consumed
// counts the tokens the failing branch got through before it failed. Or
// treats a failure with Consumed > 0 as committed.
type Result[T, V any] struct {
	Value    V
	Consumed int
	Next     State[T]
	Err      *Error
	Status   Status
}

// Success builds a successful result that consumed n tokens from s.
func Success[T, V any](v V, s State[T], n int) Result[T, V] {
	return Result[T, V]{Value: v, Consumed: n, Next: s.Advance(n)}
}

// Failure builds a failed result that consumed nothing.
func Failure[T, V any](err *Error, status Status) Result[T, V] {
	return Result[T, V]{Err: err, Status: status}
}

func (r Result[T, V]) OK() bool { return r.Err == nil }

// IsCommitted reports whether a failure must not be backtracked by Or.
func (r Result[T, V]) IsCommitted() bool {
	return r.Err != nil && (r.Status == Committed || r.Consumed > 0)
}

// Get returns the value, or the error of a failed result.
func (r Result[T, V]) Get() (V, error) {
	if r.Err != nil {
		var zero V
		return zero, r.Err
	}
	return r.Value, nil
}

// After accounts for n tokens consumed before this result's parser ran.
// For a success the state is unchanged since Next already sits past them.
func (r Result[T, V]) After(n int) Result[T, V] {
	r.Consumed += n
	return r
}

// Retype carries a failure over to a parser of another value type.
func Retype[W, T, V any](r Result[T, V]) Result[T, W] {
	return Result[T, W]{Consumed: r.Consumed, Err: r.Err, Status: r.Status}
}
