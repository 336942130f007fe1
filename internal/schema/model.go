// Package schema declares the columns of the campaign dataset and the three
// projections written by the output stage.
package schema

// Input columns.
const (
	ClientID                 = "client_id"
	Age                      = "age"
	Job                      = "job"
	Marital                  = "marital"
	Education                = "education"
	CreditDefault            = "credit_default"
	Mortgage                 = "mortgage"
	NumberContacts           = "number_contacts"
	ContactDuration          = "contact_duration"
	PreviousCampaignContacts = "previous_campaign_contacts"
	PreviousOutcome          = "previous_outcome"
	CampaignOutcome          = "campaign_outcome"
	Day                      = "day"
	Month                    = "month"
	ConsPriceIdx             = "cons_price_idx"
	EuriborThreeMonths       = "euribor_three_months"
)

// LastContactDay is derived from Month and Day by the normalizer.
const LastContactDay = "last_contact_day"

// InputColumns lists every column an input table must carry.
var InputColumns = []string{
	ClientID,
	Age,
	Job,
	Marital,
	Education,
	CreditDefault,
	Mortgage,
	NumberContacts,
	ContactDuration,
	PreviousCampaignContacts,
	PreviousOutcome,
	CampaignOutcome,
	Day,
	Month,
	ConsPriceIdx,
	EuriborThreeMonths,
}

// Projection is a named column subset written to its own file.
type Projection struct {
	Name    string
	File    string
	Columns []string
}

// Client, Campaign, and Economics are the output projections. All three
// start with ClientID, the join key between the files.
var (
	Client = Projection{
		Name:    "client",
		File:    "client.csv",
		Columns: []string{ClientID, Age, Job, Marital, Education, CreditDefault, Mortgage},
	}
	Campaign = Projection{
		Name: "campaign",
		File: "campaign.csv",
		Columns: []string{
			ClientID,
			NumberContacts,
			ContactDuration,
			PreviousCampaignContacts,
			PreviousOutcome,
			CampaignOutcome,
			LastContactDay,
		},
	}
	Economics = Projection{
		Name:    "economics",
		File:    "economics.csv",
		Columns: []string{ClientID, ConsPriceIdx, EuriborThreeMonths},
	}
)

// Outputs returns the projections in write order.
func Outputs() []Projection {
	return []Projection{Client, Campaign, Economics}
}
