package order

// RiskLevel is the payment processor's risk evaluation of the charge that paid for the
// order. Values follow Stripe's outcome.risk_level enum.
type RiskLevel string

const (
	RiskLevelNormal      RiskLevel = "normal"
	RiskLevelElevated    RiskLevel = "elevated"
	RiskLevelHighest     RiskLevel = "highest"
	RiskLevelNotAssessed RiskLevel = "not_assessed"
	RiskLevelUnknown     RiskLevel = "unknown"
)

// ParseRiskLevel maps a raw processor value onto a RiskLevel. Anything unrecognised,
// including the empty string, becomes RiskLevelUnknown.
func ParseRiskLevel(raw string) RiskLevel {
	switch l := RiskLevel(raw); l {
	case RiskLevelNormal, RiskLevelElevated, RiskLevelHighest, RiskLevelNotAssessed:
		return l
	default:
		return RiskLevelUnknown
	}
}
