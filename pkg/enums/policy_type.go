package enums

import "fmt"

// PolicyType separates sales and dispatch commission policies.
type PolicyType string

const (
	PolicyTypeSales    PolicyType = "sales"
	PolicyTypeDispatch PolicyType = "dispatch"
)

var validPolicyTypes = []PolicyType{
	PolicyTypeSales,
	PolicyTypeDispatch,
}

// String implements fmt.Stringer.
func (p PolicyType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PolicyType.
func (p PolicyType) IsValid() bool {
	for _, candidate := range validPolicyTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePolicyType converts raw input into a PolicyType.
func ParsePolicyType(value string) (PolicyType, error) {
	for _, candidate := range validPolicyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid policy type %q", value)
}
