package domain

// Campaign is one of the four fixed named categories mapped from the raw
// boolean indicator columns of the source CSV.
type Campaign string

const (
	CampaignSpring Campaign = "Spring Wine Festival"
	CampaignSummer Campaign = "Summer Fruit Bundle"
	CampaignAutumn Campaign = "Autumn Meat Sampler"
	CampaignWinter Campaign = "Winter Seafood Discount"

	// CampaignCount is the number of fixed campaigns.
	CampaignCount = 4
)

// Campaigns returns the campaigns in their fixed display order. The order
// is load-bearing: Customer.Accepted and the source AcceptedCmp1..4 columns
// index into it.
func Campaigns() []Campaign {
	return []Campaign{CampaignSpring, CampaignSummer, CampaignAutumn, CampaignWinter}
}

// campaignColumns maps campaign order to the raw source column names.
var campaignColumns = [CampaignCount]string{
	"AcceptedCmp1",
	"AcceptedCmp2",
	"AcceptedCmp3",
	"AcceptedCmp4",
}

// campaignColors are the fixed display colors, aligned with Campaigns().
var campaignColors = [CampaignCount]string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#9467bd",
}

// Index returns the campaign's position in the fixed order, or -1 when the
// value is not one of the four campaigns.
func (c Campaign) Index() int {
	for i, campaign := range Campaigns() {
		if campaign == c {
			return i
		}
	}
	return -1
}

// SourceColumn returns the raw CSV column the campaign was renamed from.
func (c Campaign) SourceColumn() string {
	idx := c.Index()
	if idx < 0 {
		return ""
	}
	return campaignColumns[idx]
}

// Color returns the campaign's fixed display color.
func (c Campaign) Color() string {
	idx := c.Index()
	if idx < 0 {
		return ""
	}
	return campaignColors[idx]
}

// String implements fmt.Stringer.
func (c Campaign) String() string {
	return string(c)
}

// CampaignColumns returns the raw source column names in campaign order.
func CampaignColumns() []string {
	out := make([]string, CampaignCount)
	copy(out, campaignColumns[:])
	return out
}
