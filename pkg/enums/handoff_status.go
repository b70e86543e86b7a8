package enums

// HandoffStatus tracks a sales-to-dispatch handoff record.
type HandoffStatus string

const (
	HandoffStatusPending   HandoffStatus = "pending"
	HandoffStatusAccepted  HandoffStatus = "accepted"
	HandoffStatusRejected  HandoffStatus = "rejected"
	HandoffStatusCompleted HandoffStatus = "completed"
)

// IsValid reports whether the value is a known HandoffStatus.
func (h HandoffStatus) IsValid() bool {
	switch h {
	case HandoffStatusPending, HandoffStatusAccepted, HandoffStatusRejected, HandoffStatusCompleted:
		return true
	}
	return false
}
