package nla

// Resolver picks the concrete strategy for an attribute whose
// interpretation is conditional. It runs while the parent attribute
// list is being decoded, so siblings holds only the attributes decoded
// before the current one; the wire-order dependency between a
// selector attribute and its consumers is deliberate.
//
// A resolver must always return a usable strategy; when the selector
// is absent or its value is not recognized, it falls back to Hex
// rather than failing.
type Resolver interface {
	ResolveStrategy(hdr Header, siblings Tree) Strategy
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(hdr Header, siblings Tree) Strategy

// ResolveStrategy calls f.
func (f ResolverFunc) ResolveStrategy(hdr Header, siblings Tree) Strategy {
	return f(hdr, siblings)
}

// BySibling returns a resolver keyed by the string value of the named
// sibling attribute, the "kind selects data" pattern. Choices not in
// the map, and an absent, unset, or non-string selector, resolve to
// the opaque fallback.
func BySibling(selector string, choices map[string]Strategy) Resolver {
	return ResolverFunc(func(_ Header, siblings Tree) Strategy {
		kind, ok := siblings.Value(selector).(string)
		if !ok {
			return Hex
		}
		if st, ok := choices[kind]; ok {
			return st
		}
		return Hex
	})
}

// ByType returns a resolver keyed by the attribute's own identifier,
// the address-family-group pattern where the member's type carries the
// selector. Identifiers not in the map resolve to the opaque fallback.
func ByType(choices map[uint16]Strategy) Resolver {
	return ResolverFunc(func(hdr Header, _ Tree) Strategy {
		if st, ok := choices[hdr.ID()]; ok {
			return st
		}
		return Hex
	})
}
