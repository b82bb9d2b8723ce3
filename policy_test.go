package dupe

import (
	"errors"
	"reflect"
	"testing"
)

type cache struct {
	Entries map[string]string
}

type session struct {
	ID    string
	Notes []string
	Cache *cache `clone:"shallow"`
	Conn  *int   `clone:"skip"`
	Raw   []byte `clone:"copy"`
}

func TestPolicyClone_Value(t *testing.T) {
	Reset()

	conn := 7
	s := session{
		ID:    "s1",
		Notes: []string{"a"},
		Cache: &cache{Entries: map[string]string{"k": "v"}},
		Conn:  &conn,
		Raw:   []byte{1, 2},
	}

	out := CloneAny(s).(session)

	// Untagged and clone:"copy" fields are deep.
	out.Notes[0] = "mutated"
	out.Raw[0] = 9
	if s.Notes[0] != "a" || s.Raw[0] != 1 {
		t.Error("deep fields share storage with original")
	}

	// clone:"shallow" shares the referent.
	if out.Cache != s.Cache {
		t.Error("shallow field should share the referent")
	}

	// clone:"skip" is zeroed.
	if out.Conn != nil {
		t.Error("skip field should be zero in the duplicate")
	}
}

func TestPolicyClone_Pointer(t *testing.T) {
	Reset()

	conn := 1
	s := &session{
		ID:   "s2",
		Conn: &conn,
		Cache: &cache{
			Entries: map[string]string{"k": "v"},
		},
	}

	out := CloneAny(s).(*session)

	if out == s {
		t.Fatal("pointer clone returned the original storage")
	}
	if out.Cache != s.Cache {
		t.Error("shallow field should share the referent")
	}
	if out.Conn != nil {
		t.Error("skip field should be zero in the duplicate")
	}
	if out.ID != "s2" {
		t.Errorf("ID = %q, want %q", out.ID, "s2")
	}
}

func TestPolicyClone_NilPointer(t *testing.T) {
	Reset()

	var s *session
	out := CloneAny(s)

	if p, ok := out.(*session); !ok || p != nil {
		t.Errorf("CloneAny(nil *session) = %v, want typed nil", out)
	}
}

type inner struct {
	Shared *int `clone:"shallow"`
	Plain  []int
}

type outer struct {
	Name  string
	Inner inner
}

func TestPolicyClone_NestedStruct(t *testing.T) {
	Reset()

	n := 3
	o := outer{
		Name:  "outer",
		Inner: inner{Shared: &n, Plain: []int{1}},
	}

	out := CloneAny(o).(outer)

	if out.Inner.Shared != o.Inner.Shared {
		t.Error("nested shallow field should share the referent")
	}

	out.Inner.Plain[0] = 9
	if o.Inner.Plain[0] != 1 {
		t.Error("nested deep field shares storage with original")
	}
}

type workspace struct {
	Shared *int `clone:"shallow"`
	Token  *int `clone:"skip"`
}

type account struct {
	Name string
	Work *workspace
}

func TestPolicyClone_PointerNestedStruct(t *testing.T) {
	Reset()

	n, tok := 3, 9
	a := account{
		Name: "acct",
		Work: &workspace{Shared: &n, Token: &tok},
	}

	entry, err := buildEntry(reflect.TypeFor[account]())
	if err != nil {
		t.Fatalf("buildEntry() error: %v", err)
	}
	if entry.strategy != StrategyPolicy {
		t.Fatalf("strategy = %v, want %v", entry.strategy, StrategyPolicy)
	}

	out := CloneAny(a).(account)

	if out.Work == a.Work {
		t.Error("pointer field itself should be duplicated")
	}
	if out.Work.Shared != a.Work.Shared {
		t.Error("shallow field behind a pointer should share the referent")
	}
	if out.Work.Token != nil {
		t.Error("skip field behind a pointer should be zero in the duplicate")
	}
}

func TestPolicyClone_NilPointerPath(t *testing.T) {
	Reset()

	a := account{Name: "empty"}
	out := CloneAny(a).(account)

	if out.Work != nil {
		t.Errorf("Work = %v, want nil", out.Work)
	}
	if out.Name != "empty" {
		t.Errorf("Name = %q, want %q", out.Name, "empty")
	}
}

type badNested struct {
	Link *badTag
}

func TestCheck_InvalidTagBehindPointer(t *testing.T) {
	err := Check[badNested]()
	if err == nil {
		t.Fatal("Check() should reject an invalid tag behind a pointer field")
	}
	if !errors.Is(err, ErrInvalidTag) {
		t.Errorf("Check() error = %v, want ErrInvalidTag", err)
	}

	var pe *PolicyError
	if !errors.As(err, &pe) {
		t.Fatal("Check() error should be a *PolicyError")
	}
	if pe.Field != "Link.Data" {
		t.Errorf("PolicyError field = %q, want %q", pe.Field, "Link.Data")
	}
}

type badTag struct {
	Data *int `clone:"frobnicate"`
}

func TestCheck_InvalidTag(t *testing.T) {
	err := Check[badTag]()
	if err == nil {
		t.Fatal("Check() should reject an unknown clone tag value")
	}
	if !errors.Is(err, ErrInvalidTag) {
		t.Errorf("Check() error = %v, want ErrInvalidTag", err)
	}

	var pe *PolicyError
	if !errors.As(err, &pe) {
		t.Fatal("Check() error should be a *PolicyError")
	}
	if pe.Field != "Data" || pe.Value != "frobnicate" {
		t.Errorf("PolicyError = %+v, want Field=Data Value=frobnicate", pe)
	}
}

func TestCheck_CleanTypes(t *testing.T) {
	if err := Check[session](); err != nil {
		t.Errorf("Check[session]() error: %v", err)
	}
	if err := Check[*session](); err != nil {
		t.Errorf("Check[*session]() error: %v", err)
	}
	if err := Check[int](); err != nil {
		t.Errorf("Check[int]() error: %v", err)
	}
}

func TestCloneAny_InvalidTagPanics(t *testing.T) {
	Reset()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("CloneAny() should panic on an invalid clone tag")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidTag) {
			t.Errorf("panic value = %v, want ErrInvalidTag", r)
		}
	}()

	_ = CloneAny(badTag{})
}

func TestBuildPolicyPlan_UntaggedIsNil(t *testing.T) {
	plan, err := buildPolicyPlan(reflect.TypeFor[cache]())
	if err != nil {
		t.Fatalf("buildPolicyPlan() error: %v", err)
	}
	if plan != nil {
		t.Error("untagged struct should have no policy plan")
	}
}

func TestBuildPolicyPlan_CopyOnlyIsNil(t *testing.T) {
	type copyOnly struct {
		Data []byte `clone:"copy"`
	}

	plan, err := buildPolicyPlan(reflect.TypeFor[copyOnly]())
	if err != nil {
		t.Fatalf("buildPolicyPlan() error: %v", err)
	}
	if plan != nil {
		t.Error("explicit copy tags need no plan; the base pass already deep-copies")
	}
}
