package enums

import "fmt"

// SalesRole attributes a rep's contribution on a lead for commission splits.
type SalesRole string

const (
	SalesRoleStarter SalesRole = "starter"
	SalesRoleCloser  SalesRole = "closer"
)

var validSalesRoles = []SalesRole{
	SalesRoleStarter,
	SalesRoleCloser,
}

// String implements fmt.Stringer.
func (r SalesRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known SalesRole.
func (r SalesRole) IsValid() bool {
	for _, candidate := range validSalesRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseSalesRole converts raw input into a SalesRole.
func ParseSalesRole(value string) (SalesRole, error) {
	for _, candidate := range validSalesRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sales role %q", value)
}
