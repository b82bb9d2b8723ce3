package json

import (
	"context"
	"testing"

	"github.com/zoobzio/dupe"
)

type verse struct {
	Text    string   `json:"text"`
	Refrain []string `json:"refrain,omitempty"`
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestSnapshot(t *testing.T) {
	s := dupe.NewSnapshotter[verse](New())

	v := verse{Text: "twas brillig", Refrain: []string{"callooh", "callay"}}

	out, err := s.Snapshot(context.Background(), v)
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	if out.Text != v.Text || len(out.Refrain) != 2 {
		t.Errorf("Snapshot() = %+v, want %+v", out, v)
	}

	// The duplicate's slice is fresh storage.
	out.Refrain[0] = "mutated"
	if v.Refrain[0] != "callooh" {
		t.Error("snapshot shares slice storage with original")
	}
}

func TestSnapshotOmitsEmpty(t *testing.T) {
	c := New()

	data, err := c.Marshal(verse{Text: "solo"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"text":"solo"}` {
		t.Errorf("Marshal() = %s, want omitempty to drop the refrain", data)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v verse
	if err := c.Unmarshal([]byte("{not json"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
