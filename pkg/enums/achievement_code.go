package enums

import "fmt"

// AchievementCode identifies a milestone a member can earn.
type AchievementCode string

const (
	AchievementFirstLoan   AchievementCode = "first_loan"
	AchievementFiveReturns AchievementCode = "five_returns"
	AchievementBookworm    AchievementCode = "bookworm"
)

var validAchievementCodes = []AchievementCode{
	AchievementFirstLoan,
	AchievementFiveReturns,
	AchievementBookworm,
}

// DisplayName returns the human-readable label for the code.
func (c AchievementCode) DisplayName() string {
	switch c {
	case AchievementFirstLoan:
		return "First Loan"
	case AchievementFiveReturns:
		return "Five Returns"
	case AchievementBookworm:
		return "Bookworm"
	}
	return string(c)
}

// String implements fmt.Stringer.
func (c AchievementCode) String() string {
	return string(c)
}

// IsValid reports whether the value is a known AchievementCode.
func (c AchievementCode) IsValid() bool {
	for _, candidate := range validAchievementCodes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseAchievementCode converts raw input into an AchievementCode.
func ParseAchievementCode(value string) (AchievementCode, error) {
	for _, candidate := range validAchievementCodes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid achievement code %q", value)
}
