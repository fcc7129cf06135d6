package enums

import "fmt"

// LoanStatus tracks a borrowing record through its lifecycle.
type LoanStatus string

const (
	LoanStatusRequested LoanStatus = "requested"
	LoanStatusApproved  LoanStatus = "approved"
	LoanStatusCancelled LoanStatus = "cancelled"
	LoanStatusDenied    LoanStatus = "denied"
	LoanStatusLoaned    LoanStatus = "loaned"
	LoanStatusReturned  LoanStatus = "returned"
	LoanStatusOverdue   LoanStatus = "overdue"
)

var validLoanStatuses = []LoanStatus{
	LoanStatusRequested,
	LoanStatusApproved,
	LoanStatusCancelled,
	LoanStatusDenied,
	LoanStatusLoaned,
	LoanStatusReturned,
	LoanStatusOverdue,
}

// String implements fmt.Stringer.
func (s LoanStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known LoanStatus.
func (s LoanStatus) IsValid() bool {
	for _, candidate := range validLoanStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseLoanStatus converts raw input into a LoanStatus.
func ParseLoanStatus(value string) (LoanStatus, error) {
	for _, candidate := range validLoanStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid loan status %q", value)
}
