package records

import (
	"reflect"
	"testing"
)

func TestConcat_PreservesOrderAndUnionsColumns(t *testing.T) {
	t.Parallel()

	a := Table{
		Columns: []string{"client_id", "age"},
		Rows: []Record{
			{"client_id": "1", "age": "30"},
			{"client_id": "2", "age": "41"},
		},
	}
	b := Table{
		Columns: []string{"client_id", "job"},
		Rows: []Record{
			{"client_id": "3", "job": "admin."},
		},
	}

	got := Concat(a, b)

	if want := []string{"client_id", "age", "job"}; !reflect.DeepEqual(got.Columns, want) {
		t.Fatalf("Columns = %v, want %v", got.Columns, want)
	}
	if got.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", got.Len())
	}
	var ids []any
	for _, r := range got.Rows {
		ids = append(ids, r["client_id"])
	}
	if want := []any{"1", "2", "3"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("client_id order = %v, want %v", ids, want)
	}
}

func TestConcat_NoDeduplication(t *testing.T) {
	t.Parallel()

	a := Table{Columns: []string{"client_id"}, Rows: []Record{{"client_id": "7"}}}
	got := Concat(a, a)
	if got.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (duplicates kept)", got.Len())
	}
}

func TestConcat_Empty(t *testing.T) {
	t.Parallel()

	got := Concat()
	if got.Len() != 0 || len(got.Columns) != 0 {
		t.Fatalf("Concat() = %+v, want empty table", got)
	}
}

func TestRecordProject(t *testing.T) {
	t.Parallel()

	r := Record{"a": "1", "b": 2, "c": nil}
	got := r.Project([]string{"c", "a", "missing"})
	want := []any{nil, "1", nil}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Project = %#v, want %#v", got, want)
	}
}

func TestTableHasColumn(t *testing.T) {
	t.Parallel()

	tbl := Table{Columns: []string{"x", "y"}}
	if !tbl.HasColumn("y") {
		t.Fatal("HasColumn(y) = false, want true")
	}
	if tbl.HasColumn("z") {
		t.Fatal("HasColumn(z) = true, want false")
	}
}
