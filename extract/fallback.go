package extract

// Strategy is a single named way of reading a value out of a document.
// Fn reports false when the layout it targets is absent, which hands
// control to the next strategy in the chain.
type Strategy[T any] struct {
	Name string
	Fn   func() (T, bool)
}

// first runs the chain in order and returns the first successful value.
// An exhausted chain returns the zero value and false; callers keep the
// field's default in that case.
func first[T any](chain ...Strategy[T]) (T, bool) {
	for _, s := range chain {
		if v, ok := s.Fn(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// textOK wraps a string result, succeeding only on non-empty text.
func textOK(s string) (string, bool) {
	s = cleanText(s)
	return s, s != ""
}
