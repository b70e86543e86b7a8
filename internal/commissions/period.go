package commissions

import (
	"fmt"
	"time"

	pkgerrors "github.com/dmarroquin/freightops-backend/pkg/errors"
)

// Period identifies one commission month.
type Period struct {
	Year  int
	Month int
}

// ParsePeriod accepts "YYYY-MM". An empty value resolves to the current
// month in UTC.
func ParsePeriod(value string, now time.Time) (Period, error) {
	if value == "" {
		return Period{Year: now.UTC().Year(), Month: int(now.UTC().Month())}, nil
	}
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return Period{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid month %q, expected YYYY-MM", value))
	}
	return Period{Year: parsed.Year(), Month: int(parsed.Month())}, nil
}

// Previous returns the calendar month before p.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Window returns the invoice query window for the month. The end bound is
// the last second of the month, inclusive.
func (p Period) Window() (start, end time.Time) {
	start = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// String renders the period as "YYYY-MM".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
