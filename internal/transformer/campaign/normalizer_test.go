package campaign

import (
	"errors"
	"strings"
	"testing"

	"campaign/internal/etlerr"
	"campaign/pkg/records"
)

func sampleRecord() records.Record {
	return records.Record{
		"client_id":                  "0",
		"age":                        "56",
		"job":                        "blue-collar.",
		"marital":                    "married",
		"education":                  "basic.4y",
		"credit_default":             "yes",
		"mortgage":                   "no",
		"number_contacts":            "1",
		"contact_duration":           "261",
		"previous_campaign_contacts": "0",
		"previous_outcome":           "nonexistent",
		"campaign_outcome":           "yes",
		"day":                        "5",
		"month":                      "may",
		"cons_price_idx":             "93.994",
		"euribor_three_months":       "4.857",
	}
}

/*
TestNormalizer_Scenario checks the reference row from the campaign dataset
end to end through the rules.
*/
func TestNormalizer_Scenario(t *testing.T) {
	t.Parallel()

	in := []records.Record{sampleRecord()}
	out, err := Normalizer{}.Apply(in)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	r := out[0]

	want := map[string]any{
		"job":              "blue_collar",
		"education":        "basic_4y",
		"credit_default":   1,
		"mortgage":         0,
		"previous_outcome": 0,
		"campaign_outcome": 1,
		"day":              "05",
		"month":            "05",
		"last_contact_day": "2022-05-05",
	}
	for k, v := range want {
		if r[k] != v {
			t.Fatalf("%s = %#v, want %#v", k, r[k], v)
		}
	}

	// Columns without a rule pass through untouched.
	for _, k := range []string{"client_id", "age", "marital", "number_contacts", "contact_duration",
		"previous_campaign_contacts", "cons_price_idx", "euribor_three_months"} {
		if r[k] != sampleRecord()[k] {
			t.Fatalf("%s changed: %#v -> %#v", k, sampleRecord()[k], r[k])
		}
	}
}

func TestNormalizer_UnknownEducationIsNull(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec["education"] = "unknown"
	out, err := Normalizer{}.Apply([]records.Record{rec})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	v, present := out[0]["education"]
	if !present {
		t.Fatal("education key removed; want null marker")
	}
	if v != nil {
		t.Fatalf("education = %#v, want nil", v)
	}
}

func TestNormalizer_CustomYear(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec["day"] = "28"
	rec["month"] = "nov"
	out, err := Normalizer{Year: 2023}.Apply([]records.Record{rec})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if got := out[0]["last_contact_day"]; got != "2023-11-28" {
		t.Fatalf("last_contact_day = %v, want 2023-11-28", got)
	}
}

func TestNormalizer_DomainErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(records.Record)
		want   string
	}{
		{"unknown_month", func(r records.Record) { r["month"] = "sept" }, `month: unknown month "sept"`},
		{"missing_month", func(r records.Record) { r["month"] = nil }, "month"},
		{"day_out_of_range", func(r records.Record) { r["day"] = "32" }, "day"},
		{"day_not_integer", func(r records.Record) { r["day"] = "fifth" }, "day"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			good := sampleRecord()
			bad := sampleRecord()
			tc.mutate(bad)

			_, err := Normalizer{}.Apply([]records.Record{good, bad})
			if err == nil {
				t.Fatal("expected domain error")
			}
			if !errors.Is(err, etlerr.ErrDomain) {
				t.Fatalf("errors.Is(err, ErrDomain) = false: %v", err)
			}
			if !strings.Contains(err.Error(), "row 2") || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q missing row locator or %q", err, tc.want)
			}
		})
	}
}

func TestNormalizer_IndicatorsFromMissingValues(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec["credit_default"] = nil
	rec["mortgage"] = ""
	out, err := Normalizer{}.Apply([]records.Record{rec})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if out[0]["credit_default"] != 0 || out[0]["mortgage"] != 0 {
		t.Fatalf("indicators = %v/%v, want 0/0", out[0]["credit_default"], out[0]["mortgage"])
	}
}
