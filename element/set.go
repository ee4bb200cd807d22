package element

// Set is a membership test over tokens. Ranges, literal arrays and strings
// all implement it, so a combinator taking a Set accepts any of them as a
// character class.
type Set[T Element] interface {
	Contains(c T) bool
}

type closedRange[T Element] struct{ lo, hi T }

func (r closedRange[T]) Contains(c T) bool { return c >= r.lo && c <= r.hi }

type halfOpenRange[T Element] struct{ lo, hi T }

func (r halfOpenRange[T]) Contains(c T) bool { return c >= r.lo && c < r.hi }

type openRange[T Element] struct{ lo, hi T }

func (r openRange[T]) Contains(c T) bool { return c > r.lo && c < r.hi }

type atLeast[T Element] struct{ lo T }

func (r atLeast[T]) Contains(c T) bool { return c >= r.lo }

type atMost[T Element] struct{ hi T }

func (r atMost[T]) Contains(c T) bool { return c <= r.hi }

// Closed is the range lo..=hi.
func Closed[T Element](lo, hi T) Set[T] { return closedRange[T]{lo, hi} }

// HalfOpen is the range lo..hi, excluding hi.
func HalfOpen[T Element](lo, hi T) Set[T] { return halfOpenRange[T]{lo, hi} }

// Open excludes both bounds.
func Open[T Element](lo, hi T) Set[T] { return openRange[T]{lo, hi} }

func AtLeast[T Element](lo T) Set[T] { return atLeast[T]{lo} }

func AtMost[T Element](hi T) Set[T] { return atMost[T]{hi} }

// List is a fixed collection of tokens.
type List[T Element] []T

func (l List[T]) Contains(c T) bool {
	for _, e := range l {
		if e == c {
			return true
		}
	}
	return false
}

// Of returns the tokens as a List.
func Of[T Element](elems ...T) Set[T] { return List[T](elems) }

type chars[T Element] struct {
	ascii [128]bool
	other []rune
}

func (s *chars[T]) Contains(c T) bool {
	if c >= 0 && c < 128 {
		return s.ascii[c]
	}
	if IsByte[T]() {
		return false
	}
	for _, r := range s.other {
		if rune(c) == r {
			return true
		}
	}
	return false
}

// Chars treats every character of s as a member. For byte tokens only the
// ASCII characters of s can match.
func Chars[T Element](s string) Set[T] {
	set := &chars[T]{}
	for _, r := range s {
		if r >= 0 && r < 128 {
			set.ascii[r] = true
		} else {
			set.other = append(set.other, r)
		}
	}
	return set
}

// Func adapts a predicate.
type Func[T Element] func(c T) bool

func (f Func[T]) Contains(c T) bool { return f(c) }

type union[T Element] []Set[T]

func (u union[T]) Contains(c T) bool {
	for _, s := range u {
		if s.Contains(c) {
			return true
		}
	}
	return false
}

// Union contains every token contained by one of sets.
func Union[T Element](sets ...Set[T]) Set[T] { return union[T](sets) }

type complement[T Element] struct{ s Set[T] }

func (n complement[T]) Contains(c T) bool { return !n.s.Contains(c) }

// Not is the complement of s.
func Not[T Element](s Set[T]) Set[T] { return complement[T]{s} }
