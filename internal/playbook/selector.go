// Package playbook selects the tier-1 resolution script for a predicted
// complaint category.
package playbook

import (
	"strings"

	"github.com/jonesrussell/telecom-triage/internal/domain"
)

// The selector keys on substrings of the category label rather than exact
// labels so that custom rule catalogs with compatible naming still map to
// a sensible script.
var (
	connectivity = domain.Playbook{
		Name:       "connectivity",
		ActionPlan: "Ask the customer to restart their modem/router and initiate a system diagnostic to resolve basic connectivity issues.",
		AgentLine:  "Sir/Ma'am, I understand the frustration. We are initiating a line diagnostic immediately. Can you please try restarting your modem/router? This often resolves network speed issues.",
	}
	billing = domain.Playbook{
		Name:       "billing",
		ActionPlan: "Immediately verify the charges against the latest billing summary to pinpoint the error.",
		AgentLine:  "Sir/Ma'am, I have pulled up your account. Let me immediately check the billing summary to pinpoint the exact source of the extra charge. We will ensure everything is accurate.",
	}
	serviceQuality = domain.Playbook{
		Name:       "service-quality",
		ActionPlan: "Issue an immediate apology and flag the case to Quality Assurance to handle the complaint with extreme care.",
		AgentLine:  "Sir/Ma'am, I deeply apologize for the rude experience you faced. That is unacceptable. We are immediately flagging your case to the Quality Assurance team.",
	}
	generic = domain.Playbook{
		Name:       "generic",
		ActionPlan: "Run a standard account review to provide a quick answer based on past resolution data.",
		AgentLine:  "Sir/Ma'am, thank you for providing the details. I will review your account history now to provide you with the fastest possible resolution.",
	}
)

// Select returns the playbook for a category label. Checks run in order;
// an unknown or empty label gets the generic script.
func Select(category string) domain.Playbook {
	switch {
	case strings.Contains(category, "Speed") || strings.Contains(category, "Network"):
		return connectivity
	case strings.Contains(category, "Billing") || strings.Contains(category, "Charges"):
		return billing
	case strings.Contains(category, "Customer Service"):
		return serviceQuality
	default:
		return generic
	}
}

// Priority maps customer sentiment to a handling priority. Negative
// sentiment escalates to HIGH; everything else is MEDIUM.
func Priority(sentiment string) string {
	if sentiment == domain.SentimentNegative {
		return domain.PriorityHigh
	}
	return domain.PriorityMedium
}
