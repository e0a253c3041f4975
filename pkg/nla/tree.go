package nla

// Attr is one decoded attribute node.
type Attr struct {
	// ID is the 14-bit attribute identifier.
	ID uint16

	// Flags carries the two reserved type-field bits exactly as seen
	// on the wire; they round-trip untouched.
	Flags uint16

	// Name is the short schema name, empty for identifiers the schema
	// does not know.
	Name string

	// Value is the decoded payload: a scalar, string, []byte, a
	// nested Tree, a codec-specific value, or raw bytes for opaque
	// payloads.
	Value any
}

// Tree is an ordered attribute list, one nesting level of a message.
// Order is wire order and is significant: selector attributes must
// precede the attributes they type.
type Tree []Attr

// Get returns the first attribute with the given short name.
func (t Tree) Get(name string) (Attr, bool) {
	for _, a := range t {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// GetAll returns every attribute with the given short name, in tree
// order.
func (t Tree) GetAll(name string) []Attr {
	var out []Attr
	for _, a := range t {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}

// ByID returns the first attribute with the given identifier.
func (t Tree) ByID(id uint16) (Attr, bool) {
	for _, a := range t {
		if a.ID == id {
			return a, true
		}
	}
	return Attr{}, false
}

// Value returns the value of the named attribute, or nil when absent.
func (t Tree) Value(name string) any {
	if a, ok := t.Get(name); ok {
		return a.Value
	}
	return nil
}

// Set replaces the value of the named attribute in place, appending a
// new node when the name is absent. The appended node carries no
// identifier; EncodeTree resolves it through the schema by name.
func (t *Tree) Set(name string, v any) {
	for i := range *t {
		if (*t)[i].Name == name {
			(*t)[i].Value = v
			return
		}
	}
	*t = append(*t, Attr{Name: name, Value: v})
}

// Delete removes every attribute with the given short name.
func (t *Tree) Delete(name string) {
	out := (*t)[:0]
	for _, a := range *t {
		if a.Name != name {
			out = append(out, a)
		}
	}
	*t = out
}
