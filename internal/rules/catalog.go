package rules

import "github.com/jonesrussell/telecom-triage/internal/domain"

// DefaultRules returns the built-in triage rule catalog in priority order.
// Lower Priority values are evaluated first; the first enabled rule with a
// keyword hit decides the category. Complaints matching no rule fall back
// to Other/Technical.
func DefaultRules() []domain.TriageRule {
	return []domain.TriageRule{
		{
			ID:       "billing-charges",
			Name:     "Billing and Charges",
			Category: domain.CategoryBilling,
			Keywords: []string{"bill", "charge", "fee", "pricing"},
			Priority: 1,
			Enabled:  true,
		},
		{
			ID:       "internet-speed",
			Name:     "Internet Speed",
			Category: domain.CategoryInternetSpeed,
			Keywords: []string{"speed", "slow", "throttle"},
			Priority: 2,
			Enabled:  true,
		},
		{
			ID:       "service-network",
			Name:     "Service and Network",
			Category: domain.CategoryServiceNetwork,
			Keywords: []string{"service", "disconnected", "network", "outage"},
			Priority: 3,
			Enabled:  true,
		},
		{
			ID:       "customer-service",
			Name:     "Customer Service",
			Category: domain.CategoryCustomerService,
			Keywords: []string{"support", "rude", "customer", "contact"},
			Priority: 4,
			Enabled:  true,
		},
	}
}
