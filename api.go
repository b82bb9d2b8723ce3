// Package dupe provides duplication of values held behind interface types.
//
// Go's usual duplication contract is a typed Clone method:
//
//	func (u User) Clone() User { return u }
//
// That contract cannot be invoked through an interface value, because the
// result type names the concrete type the caller no longer knows. This
// package closes the gap: any value reachable only through an interface can
// be duplicated into a fresh, independently owned value with the same
// dynamic type and the same method set.
//
// # Capabilities
//
// Two capabilities cooperate:
//
//   - Cloner[T]: the ordinary duplication capability. Clone returns a deep
//     copy of the receiver by value.
//   - AnyCloner: the erased duplication capability. CloneAny returns a deep
//     copy behind an any, so it is callable when the concrete type is
//     unknown.
//
// Types never need to implement AnyCloner by hand. Every type with a
// Clone method that returns its own type is picked up automatically, and
// types with neither method fall back to a reflective deep copy. AnyCloner
// exists as an override: implement it to bypass reflection entirely.
//
// # Entry Points
//
//	// Sized: the concrete type is known, dispatch is static.
//	u2 := dupe.Clone(u)
//
//	// Erased: v is an interface value, dispatch is dynamic.
//	var v Shape = Circle{R: 2}
//	v2 := dupe.CloneBox(v)
//
// CloneBox returns the duplicate re-erased to the caller's interface type,
// so the result supports exactly the method set the input did.
//
// # Handles
//
// Structs that hold interface-typed fields cannot derive a Clone method on
// their own. Box wraps an interface value into a handle that satisfies
// Cloner, so containers can delegate:
//
//	type Container struct {
//	    Shape dupe.Box[Shape]
//	}
//
//	func (c Container) Clone() Container {
//	    return Container{Shape: c.Shape.Clone()}
//	}
//
// For a named, method-forwarding handle type instead of the generic Box,
// the clonegen tool (cmd/clonegen) generates the same delegation from an
// interface declaration.
//
// # Clone Policies
//
// The reflective fallback honors a `clone` struct tag on exported fields:
//
//	type Session struct {
//	    ID    string
//	    Cache *Cache   `clone:"shallow"` // share the referent
//	    Conn  net.Conn `clone:"skip"`    // zero in the duplicate
//	}
//
// Valid values are "copy" (deep, the default), "shallow", and "skip".
// Check validates a type's tags ahead of time.
//
// # Snapshots
//
// Snapshotter clones by codec round-trip instead of memory traversal,
// useful when a type's serialized form is its canonical identity. Codec
// providers live in the gob, json, msgpack, and yaml subpackages. Unlike
// the entry points, snapshots can fail and return an error.
package dupe

// Cloner is the ordinary duplication capability.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. For types containing pointers, slices,
// or maps, ensure these are also copied to achieve true isolation.
//
// For simple value types with no reference fields, Clone can simply return
// the receiver value:
//
//	func (u User) Clone() User { return u }
type Cloner[T any] interface {
	Clone() T
}

// AnyCloner is the erased duplication capability: duplication callable
// through an interface value whose concrete type is unknown.
//
// CloneAny must return a new value of the receiver's own concrete type,
// deep-copied with the same isolation guarantees as Cloner. Implementing
// AnyCloner directly is an override that bypasses the reflective bridge;
// it must be observably identical to calling Clone and erasing the result.
type AnyCloner interface {
	CloneAny() any
}

// Codec provides content-type aware marshaling, used by Snapshotter for
// round-trip cloning.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
