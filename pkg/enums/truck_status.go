package enums

// TruckStatus tracks whether a truck currently generates dispatch business.
type TruckStatus string

const (
	TruckStatusActive   TruckStatus = "active"
	TruckStatusIdle     TruckStatus = "idle"
	TruckStatusInactive TruckStatus = "inactive"
)

// IsValid reports whether the value is a known TruckStatus.
func (t TruckStatus) IsValid() bool {
	switch t {
	case TruckStatusActive, TruckStatusIdle, TruckStatusInactive:
		return true
	}
	return false
}
