package builtin

import (
	"reflect"
	"testing"

	"campaign/pkg/records"
)

func rec(id any, extra map[string]any) records.Record {
	r := records.Record{"client_id": id}
	for k, v := range extra {
		r[k] = v
	}
	return r
}

func TestKeyAudit_Find(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		rec("7", nil),
		rec("8", nil),
		rec("7", map[string]any{"age": "30"}),
		{"age": "40"}, // no key: skipped
		rec("8", nil),
		rec("7", nil),
		rec("9", nil),
	}
	got := KeyAudit{Keys: []string{"client_id"}}.Find(in)
	want := []Duplicate{
		{Key: "7", Rows: []int{1, 3, 6}},
		{Key: "8", Rows: []int{2, 5}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Find() = %#v, want %#v", got, want)
	}
	if len(in) != 7 {
		t.Fatalf("input modified: %d rows", len(in))
	}
}

func TestKeyAudit_CompositeAndTypedKeys(t *testing.T) {
	t.Parallel()

	a := KeyAudit{Keys: []string{"client_id", "month"}}
	in := []records.Record{
		rec(1, map[string]any{"month": "05"}),
		rec("1", map[string]any{"month": "05"}), // same text as int 1
		rec(1, map[string]any{"month": nil}),
		rec(1, map[string]any{"month": ""}), // "" differs from nil
	}
	got := a.Find(in)
	want := []Duplicate{{Key: "1\x1f05", Rows: []int{1, 2}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Find() = %#v, want %#v", got, want)
	}
}

func TestKeyAudit_NoKeysOrRows(t *testing.T) {
	t.Parallel()

	if got := (KeyAudit{}).Find([]records.Record{rec("1", nil), rec("1", nil)}); got != nil {
		t.Fatalf("no keys: got %v", got)
	}
	if got := (KeyAudit{Keys: []string{"client_id"}}).Find(nil); got != nil {
		t.Fatalf("no rows: got %v", got)
	}
}
