package param

// Field binds a Spec to one field of the state struct S.
type Field[S any] struct {
	Spec
	Get func(*S) float64
	Put func(*S, float64)
}

// Table is an ordered set of fields over the state struct S.
type Table[S any] []Field[S]

// Lookup returns the field with the given name.
func (t Table[S]) Lookup(name string) (Field[S], bool) {
	for _, f := range t {
		if f.Name == name {
			return f, true
		}
	}
	return Field[S]{}, false
}

// Specs returns the parameter specs in table order.
func (t Table[S]) Specs() []Spec {
	out := make([]Spec, len(t))
	for i, f := range t {
		out[i] = f.Spec
	}
	return out
}

// Names returns the parameter names in table order.
func (t Table[S]) Names() []string {
	out := make([]string, len(t))
	for i, f := range t {
		out[i] = f.Name
	}
	return out
}

// Get reads a parameter from s by name.
func (t Table[S]) Get(s *S, name string) (float64, bool) {
	f, ok := t.Lookup(name)
	if !ok {
		return 0, false
	}
	return f.Get(s), true
}

// Set quantizes v according to the field spec and writes it into s.
// changed reports whether the stored value differs afterwards; ok is false
// for unknown names.
func (t Table[S]) Set(s *S, name string, v float64) (changed, ok bool) {
	f, found := t.Lookup(name)
	if !found {
		return false, false
	}
	q := f.Quantize(v)
	if f.Get(s) == q {
		return false, true
	}
	f.Put(s, q)
	return true, true
}

// Defaults returns a state with every field set to its default.
func (t Table[S]) Defaults() S {
	var s S
	for _, f := range t {
		f.Put(&s, f.Range.Default)
	}
	return s
}
