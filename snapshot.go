package dupe

import (
	"context"
	"reflect"
	"time"
)

// Snapshotter clones values of type T by codec round-trip: marshal, then
// unmarshal into a fresh value. This trades the speed of memory traversal
// for the codec's semantics: the duplicate is exactly what the type's
// serialized form preserves, and unexported or codec-ignored fields are
// dropped rather than copied.
//
// Unlike Clone and CloneBox, snapshot cloning can fail, because codecs can.
// Errors wrap ErrMarshal or ErrUnmarshal.
//
// Snapshotters are stateless and safe for concurrent use.
type Snapshotter[T any] struct {
	codec    Codec
	typeName string
}

// NewSnapshotter creates a Snapshotter for type T using the given codec.
func NewSnapshotter[T any](codec Codec) *Snapshotter[T] {
	return &Snapshotter[T]{
		codec:    codec,
		typeName: reflect.TypeFor[T]().String(),
	}
}

// Snapshot returns a duplicate of v produced by a marshal/unmarshal
// round-trip through the configured codec.
func (s *Snapshotter[T]) Snapshot(ctx context.Context, v T) (T, error) {
	start := time.Now()

	var out T
	var retErr error
	var size int
	defer func() {
		emitSnapshotComplete(ctx, s.codec.ContentType(), s.typeName, size, time.Since(start), retErr)
	}()

	data, err := s.codec.Marshal(v)
	if err != nil {
		retErr = newSnapshotError(ErrMarshal, s.typeName, err)
		return out, retErr
	}
	size = len(data)

	if err := s.codec.Unmarshal(data, &out); err != nil {
		retErr = newSnapshotError(ErrUnmarshal, s.typeName, err)
		var zero T
		return zero, retErr
	}

	return out, nil
}
