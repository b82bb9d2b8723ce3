package dupe

// Box is an owned handle around an erased value. Its purpose is glue:
// Box[I] satisfies Cloner[Box[I]], so a struct holding interface-typed
// fields can wrap them in Box and keep a one-line Clone method.
//
// I is typically an interface type, but any type works; for a concrete I
// the Box is just a clonable cell.
type Box[I any] struct {
	value I
}

// Wrap creates an owned handle for v.
func Wrap[I any](v I) Box[I] {
	return Box[I]{value: v}
}

// Value returns the held value. The caller must not retain and mutate it
// if the Box is meant to stay an independent owner.
func (b Box[I]) Value() I {
	return b.value
}

// Clone returns a handle holding an independent duplicate of the value,
// produced through the erased entry point.
func (b Box[I]) Clone() Box[I] {
	return Box[I]{value: CloneBox(b.value)}
}

// CloneAny implements AnyCloner so boxes themselves compose when erased.
func (b Box[I]) CloneAny() any {
	return b.Clone()
}
