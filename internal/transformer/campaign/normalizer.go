package campaign

import (
	"fmt"

	"campaign/internal/etlerr"
	"campaign/internal/schema"
	"campaign/pkg/records"
)

// DefaultYear is the campaign year used for last_contact_day.
const DefaultYear = 2022

// Normalizer applies the campaign column rules to every record in place and
// adds the derived last_contact_day column. Columns without a rule are left
// as read.
type Normalizer struct {
	// Year prefixes last_contact_day. Zero means DefaultYear.
	Year int
}

// indicators maps each binary column to the value that encodes 1.
var indicators = []struct {
	column string
	match  string
}{
	{schema.CreditDefault, "yes"},
	{schema.Mortgage, "yes"},
	{schema.PreviousOutcome, "success"},
	{schema.CampaignOutcome, "yes"},
}

// Apply implements transformer.Transformer. It stops at the first record
// whose month or day is outside its domain.
func (n Normalizer) Apply(in []records.Record) ([]records.Record, error) {
	year := n.Year
	if year == 0 {
		year = DefaultYear
	}
	for i, r := range in {
		if err := normalizeRecord(r, year); err != nil {
			return nil, etlerr.New(etlerr.KindDomain, "normalize", fmt.Sprintf("row %d", i+1), err)
		}
	}
	return in, nil
}

func normalizeRecord(r records.Record, year int) error {
	if s, ok := cell(r, schema.Job); ok {
		r[schema.Job] = CleanJob(s)
	}
	if s, ok := cell(r, schema.Education); ok {
		if v, known := CleanEducation(s); known {
			r[schema.Education] = v
		} else {
			r[schema.Education] = nil
		}
	}
	for _, ind := range indicators {
		s, _ := cell(r, ind.column)
		r[ind.column] = Indicator(s, ind.match)
	}

	rawDay, _ := cell(r, schema.Day)
	day, err := PadDay(rawDay)
	if err != nil {
		return fmt.Errorf("%s: %w", schema.Day, err)
	}
	rawMonth, _ := cell(r, schema.Month)
	month, err := MonthNumber(rawMonth)
	if err != nil {
		return fmt.Errorf("%s: %w", schema.Month, err)
	}
	r[schema.Day] = day
	r[schema.Month] = month
	r[schema.LastContactDay] = LastContactDay(year, month, day)
	return nil
}

// cell returns the string form of r[col]. ok is false when the value is
// absent or the null marker.
func cell(r records.Record, col string) (string, bool) {
	switch v := r[col].(type) {
	case nil:
		return "", false
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}
