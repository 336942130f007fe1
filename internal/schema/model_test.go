package schema

import "testing"

func TestOutputs_AllStartWithClientID(t *testing.T) {
	t.Parallel()

	for _, p := range Outputs() {
		if len(p.Columns) == 0 || p.Columns[0] != ClientID {
			t.Fatalf("projection %s does not start with %s: %v", p.Name, ClientID, p.Columns)
		}
	}
}

func TestOutputs_ColumnsAreKnown(t *testing.T) {
	t.Parallel()

	known := map[string]bool{LastContactDay: true}
	for _, c := range InputColumns {
		known[c] = true
	}
	seenFiles := map[string]bool{}
	for _, p := range Outputs() {
		if seenFiles[p.File] {
			t.Fatalf("duplicate output file %s", p.File)
		}
		seenFiles[p.File] = true
		for _, c := range p.Columns {
			if !known[c] {
				t.Fatalf("projection %s references unknown column %q", p.Name, c)
			}
		}
	}
	if len(seenFiles) != 3 {
		t.Fatalf("expected 3 output files, got %d", len(seenFiles))
	}
}
