package parse

// Result holds the bound values of one successful invocation: one
// entry per declared option, one entry per satisfied positional
// argument. A Result belongs to a single invocation and is never
// shared.
type Result struct {
	Options   map[string]interface{}
	Arguments map[string]interface{}
}

// Value returns the binding with the given name, looking first among
// options, then among arguments. The second return reports whether
// the binding exists.
func (r *Result) Value(name string) (interface{}, bool) {
	if v, ok := r.Options[name]; ok {
		return v, ok
	}
	v, ok := r.Arguments[name]
	return v, ok
}

// Has reports whether the named binding is present. Optional
// arguments the user left out are not present.
func (r *Result) Has(name string) bool {
	_, ok := r.Value(name)
	return ok
}

// String returns the named binding as a string, or "" when the
// binding is absent, nil, or not a string.
func (r *Result) String(name string) string {
	v, _ := r.Value(name)
	s, _ := v.(string)
	return s
}

// Bool returns the named binding as a bool, or false.
func (r *Result) Bool(name string) bool {
	v, _ := r.Value(name)
	b, _ := v.(bool)
	return b
}

// Int returns the named binding as an int, or 0.
func (r *Result) Int(name string) int {
	v, _ := r.Value(name)
	n, _ := v.(int)
	return n
}

// Strings returns the accumulator of a repeatable argument as a
// string slice. Non-string elements are skipped.
func (r *Result) Strings(name string) []string {
	v, _ := r.Value(name)
	list, _ := v.([]interface{})
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringMap returns the accumulator of a repeatable argument with a
// map-typed accumulator as a string map. Non-string values are
// skipped.
func (r *Result) StringMap(name string) map[string]string {
	v, _ := r.Value(name)
	m, _ := v.(map[string]interface{})
	out := make(map[string]string, len(m))
	for k, e := range m {
		if s, ok := e.(string); ok {
			out[k] = s
		}
	}
	return out
}
