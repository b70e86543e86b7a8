package enums

// LeadActivityType classifies entries on a lead's timeline.
type LeadActivityType string

const (
	LeadActivityStatusChange LeadActivityType = "status_change"
	LeadActivityCallLogged   LeadActivityType = "call_logged"
	LeadActivityNote         LeadActivityType = "note"
)

// IsValid reports whether the value is a known LeadActivityType.
func (a LeadActivityType) IsValid() bool {
	switch a {
	case LeadActivityStatusChange, LeadActivityCallLogged, LeadActivityNote:
		return true
	}
	return false
}
