//nolint:testpackage // White-box tests for the rule engine.
package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/telecom-triage/internal/domain"
	"github.com/jonesrussell/telecom-triage/internal/logging"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(DefaultRules(), logging.NewNop())
}

func TestCategorize(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"billing keyword", "my bill is too high this month", domain.CategoryBilling},
		{"charge keyword", "i was charged twice for the same plan", domain.CategoryBilling},
		{"pricing keyword", "the new pricing makes no sense", domain.CategoryBilling},
		{"speed keyword", "download speed dropped overnight", domain.CategoryInternetSpeed},
		{"slow keyword", "internet is very slow in the evenings", domain.CategoryInternetSpeed},
		{"throttle keyword", "you throttle my connection after 50gb", domain.CategoryInternetSpeed},
		{"disconnected keyword", "i keep getting disconnected every hour", domain.CategoryServiceNetwork},
		{"outage keyword", "there is an outage in my area again", domain.CategoryServiceNetwork},
		{"rude keyword", "the agent was rude on the phone", domain.CategoryCustomerService},
		{"support keyword", "tech support never calls back", domain.CategoryCustomerService},
		{"no keyword", "my router blinks a strange color", domain.CategoryOther},
		{"empty text", "", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Categorize(tt.text)
			if got.Category != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.text, got.Category, tt.want)
			}
		})
	}
}

func TestCategorize_PriorityOrder(t *testing.T) {
	engine := newTestEngine(t)

	// Billing outranks speed even though both rules hit.
	got := engine.Categorize("slow service and a high bill")
	assert.Equal(t, domain.CategoryBilling, got.Category,
		"billing rule should win when billing and speed keywords both hit")

	// Speed outranks network.
	got = engine.Categorize("slow network all week")
	assert.Equal(t, domain.CategoryInternetSpeed, got.Category,
		"speed rule should win when speed and network keywords both hit")
}

func TestCategorize_CaseInsensitive(t *testing.T) {
	engine := newTestEngine(t)

	got := engine.Categorize("MY BILL IS WRONG")
	if got.Category != domain.CategoryBilling {
		t.Errorf("Categorize uppercase = %q, want %q", got.Category, domain.CategoryBilling)
	}
}

func TestCategorize_MatchedKeywords(t *testing.T) {
	engine := newTestEngine(t)

	got := engine.Categorize("the bill includes a hidden fee")
	assert.Equal(t, "billing-charges", got.RuleID)
	assert.Len(t, got.MatchedKeywords, 2)
	assert.Contains(t, got.MatchedKeywords, "bill")
	assert.Contains(t, got.MatchedKeywords, "fee")
}

func TestCategorize_DisabledRulesSkipped(t *testing.T) {
	ruleSet := DefaultRules()
	ruleSet[0].Enabled = false // billing off

	engine := NewEngine(ruleSet, logging.NewNop())

	got := engine.Categorize("slow service and a high bill")
	if got.Category != domain.CategoryInternetSpeed {
		t.Errorf("with billing disabled got %q, want %q", got.Category, domain.CategoryInternetSpeed)
	}
}

func TestUpdateRules(t *testing.T) {
	engine := newTestEngine(t)

	engine.UpdateRules([]domain.TriageRule{
		{
			ID:       "hardware",
			Name:     "Hardware",
			Category: domain.CategoryOther,
			Keywords: []string{"router"},
			Priority: 1,
			Enabled:  true,
		},
	})

	if engine.RuleCount() != 1 {
		t.Fatalf("RuleCount = %d, want 1", engine.RuleCount())
	}

	got := engine.Categorize("my bill is wrong")
	if got.RuleID != "fallback" {
		t.Errorf("old rules still active after UpdateRules: %+v", got)
	}

	got = engine.Categorize("router keeps rebooting")
	if got.RuleID != "hardware" {
		t.Errorf("new rule not matched: %+v", got)
	}
}

func TestLabel(t *testing.T) {
	engine := newTestEngine(t)

	if got := engine.Label("overcharged on my bill"); got != domain.CategoryBilling {
		t.Errorf("Label = %q, want %q", got, domain.CategoryBilling)
	}
}

func TestDefaultRules_Valid(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range DefaultRules() {
		if rule.ID == "" || len(rule.Keywords) == 0 {
			t.Errorf("rule %+v missing ID or keywords", rule)
		}
		if !domain.ValidCategory(rule.Category) {
			t.Errorf("rule %s has unknown category %q", rule.ID, rule.Category)
		}
		if seen[rule.ID] {
			t.Errorf("duplicate rule ID %q", rule.ID)
		}
		seen[rule.ID] = true
	}
}
