// Package archivetest builds campaign input archives for tests.
package archivetest

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/golang/snappy"
)

// Header is the input header as exported by the campaign system: a leading
// unnamed index column followed by the dataset columns.
var Header = []string{
	"", "client_id", "age", "job", "marital", "education", "credit_default", "mortgage",
	"month", "day", "contact_duration", "number_contacts", "previous_campaign_contacts",
	"previous_outcome", "cons_price_idx", "euribor_three_months", "campaign_outcome",
}

// Row is one input record in Header order, without the index column.
type Row struct {
	ClientID, Age, Job, Marital, Education, CreditDefault, Mortgage    string
	Month, Day, ContactDuration, NumberContacts, PreviousContacts      string
	PreviousOutcome, ConsPriceIdx, EuriborThreeMonths, CampaignOutcome string
}

// SampleRow returns the reference row used across tests.
func SampleRow(clientID string) Row {
	return Row{
		ClientID: clientID, Age: "56", Job: "blue-collar.", Marital: "married",
		Education: "basic.4y", CreditDefault: "yes", Mortgage: "no",
		Month: "may", Day: "5", ContactDuration: "261", NumberContacts: "1",
		PreviousContacts: "0", PreviousOutcome: "nonexistent",
		ConsPriceIdx: "93.994", EuriborThreeMonths: "4.857", CampaignOutcome: "yes",
	}
}

func (r Row) fields(index int) []string {
	return []string{
		strconv.Itoa(index), r.ClientID, r.Age, r.Job, r.Marital, r.Education, r.CreditDefault,
		r.Mortgage, r.Month, r.Day, r.ContactDuration, r.NumberContacts, r.PreviousContacts,
		r.PreviousOutcome, r.ConsPriceIdx, r.EuriborThreeMonths, r.CampaignOutcome,
	}
}

// CSV renders rows as an input document with the index column.
func CSV(rows ...Row) []byte {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write(Header)
	for i, r := range rows {
		_ = w.Write(r.fields(i))
	}
	w.Flush()
	return b.Bytes()
}

// Member is a named zip entry.
type Member struct {
	Name string
	Data []byte
}

// WriteZip writes a zip archive at dir/name holding members in order and
// returns its path.
func WriteZip(t testing.TB, dir, name string, members ...Member) string {
	t.Helper()
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	for _, m := range members {
		w, err := zw.Create(m.Name)
		if err != nil {
			t.Fatalf("zip create %s: %v", m.Name, err)
		}
		if _, err := w.Write(m.Data); err != nil {
			t.Fatalf("zip write %s: %v", m.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return write(t, dir, name, b.Bytes())
}

// WriteSnappy writes data as a snappy framed stream at dir/name and returns
// its path.
func WriteSnappy(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	var b bytes.Buffer
	sw := snappy.NewBufferedWriter(&b)
	if _, err := sw.Write(data); err != nil {
		t.Fatalf("snappy write: %v", err)
	}
	if err := sw.Close(); err != nil {
		t.Fatalf("snappy close: %v", err)
	}
	return write(t, dir, name, b.Bytes())
}

func write(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}
