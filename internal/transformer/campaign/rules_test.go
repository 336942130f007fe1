package campaign

import (
	"fmt"
	"regexp"
	"testing"
)

func TestCleanJob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"blue-collar", "blue_collar"},
		{"admin.", "admin"},
		{"self-employed", "self_employed"},
		{"blue-collar.", "blue_collar"},
		{"management", "management"},
		{"", ""},
		{"a.-.b", "a_b"},
	}
	for _, tc := range tests {
		if got := CleanJob(tc.in); got != tc.want {
			t.Fatalf("CleanJob(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

/*
TestCleanJob_Idempotent verifies that applying the job rule twice yields the
same result as applying it once.
*/
func TestCleanJob_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"blue-collar.", "admin.", "...", "--", "a-b.c-d", "housemaid"} {
		once := CleanJob(in)
		if twice := CleanJob(once); twice != once {
			t.Fatalf("CleanJob not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestCleanEducation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"basic.4y", "basic_4y", true},
		{"high.school", "high_school", true},
		{"university.degree", "university_degree", true},
		{"illiterate", "illiterate", true},
		{"unknown", "", false},
		{"professional.course", "professional_course", true},
	}
	for _, tc := range tests {
		got, ok := CleanEducation(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("CleanEducation(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

/*
TestIndicator_AlwaysBinary verifies that Indicator only ever yields 0 or 1,
and 1 exactly when the input equals the match value.
*/
func TestIndicator_AlwaysBinary(t *testing.T) {
	t.Parallel()

	inputs := []string{"yes", "no", "unknown", "", "YES", " yes", "success", "failure", "nonexistent"}
	for _, match := range []string{"yes", "success"} {
		for _, in := range inputs {
			got := Indicator(in, match)
			if got != 0 && got != 1 {
				t.Fatalf("Indicator(%q, %q) = %d, not binary", in, match, got)
			}
			if (got == 1) != (in == match) {
				t.Fatalf("Indicator(%q, %q) = %d", in, match, got)
			}
		}
	}
}

func TestMonthNumber(t *testing.T) {
	t.Parallel()

	names := []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	for i, name := range names {
		got, err := MonthNumber(name)
		if err != nil {
			t.Fatalf("MonthNumber(%q) error: %v", name, err)
		}
		if want := fmt.Sprintf("%02d", i+1); got != want {
			t.Fatalf("MonthNumber(%q) = %q, want %q", name, got, want)
		}
	}

	for _, bad := range []string{"", "May", "sept", "13", "january"} {
		if _, err := MonthNumber(bad); err == nil {
			t.Fatalf("MonthNumber(%q) expected error", bad)
		}
	}
}

func TestPadDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"5", "05", false},
		{"1", "01", false},
		{"10", "10", false},
		{"31", "31", false},
		{"05", "05", false},
		{"0", "", true},
		{"32", "", true},
		{"", "", true},
		{"x", "", true},
	}
	for _, tc := range tests {
		got, err := PadDay(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("PadDay(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("PadDay(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

/*
TestLastContactDay_Pattern checks every valid month/day combination against
the 2022-MM-DD pattern.
*/
func TestLastContactDay_Pattern(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^2022-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)
	for m := range monthNumbers {
		mm, err := MonthNumber(m)
		if err != nil {
			t.Fatal(err)
		}
		for d := 1; d <= 31; d++ {
			dd, err := PadDay(fmt.Sprint(d))
			if err != nil {
				t.Fatal(err)
			}
			got := LastContactDay(2022, mm, dd)
			if !re.MatchString(got) {
				t.Fatalf("LastContactDay(%s, %d) = %q does not match pattern", m, d, got)
			}
		}
	}
}
