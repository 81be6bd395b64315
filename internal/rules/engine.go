// Package rules implements the keyword rule engine used to label
// complaints for training and to explain category assignments.
package rules

import (
	"sort"
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/telecom-triage/internal/domain"
	"github.com/jonesrussell/telecom-triage/internal/logging"
)

// Match records which rule decided a category and which keywords hit.
type Match struct {
	RuleID          string   `json:"rule_id"`
	RuleName        string   `json:"rule_name"`
	Category        string   `json:"category"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// Engine matches complaint text against an ordered rule catalog using a
// single Aho-Corasick automaton over every keyword. The first enabled rule
// in priority order with at least one keyword hit decides the category;
// text matching no rule falls back to Other/Technical.
type Engine struct {
	mu       sync.RWMutex
	rules    []domain.TriageRule
	matcher  *ahocorasick.Matcher
	keywords []string // automaton patterns in insertion order
	owners   []int    // pattern index -> index into rules
	logger   logging.Logger
}

// NewEngine builds the automaton from the given rules. Disabled rules are
// skipped. Rules are evaluated in ascending Priority order.
func NewEngine(ruleSet []domain.TriageRule, logger logging.Logger) *Engine {
	engine := &Engine{logger: logger}
	engine.rebuild(ruleSet)

	if logger != nil {
		logger.Info("rule engine initialized",
			logging.Int("rules", len(engine.rules)),
			logging.Int("keywords", len(engine.keywords)))
	}

	return engine
}

// rebuild replaces the rule set and reconstructs the automaton.
// Callers must hold e.mu for writing, except during construction.
func (e *Engine) rebuild(ruleSet []domain.TriageRule) {
	enabled := make([]domain.TriageRule, 0, len(ruleSet))
	for _, rule := range ruleSet {
		if rule.Enabled {
			enabled = append(enabled, rule)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	e.rules = enabled
	e.keywords = e.keywords[:0]
	e.owners = e.owners[:0]

	for ruleIdx, rule := range enabled {
		for _, kw := range rule.Keywords {
			normalized := strings.ToLower(strings.TrimSpace(kw))
			if normalized == "" {
				continue
			}
			e.keywords = append(e.keywords, normalized)
			e.owners = append(e.owners, ruleIdx)
		}
	}

	if len(e.keywords) > 0 {
		e.matcher = ahocorasick.NewStringMatcher(e.keywords)
	} else {
		e.matcher = nil
	}
}

// Categorize assigns a category to the given text. Matching is substring
// based and case insensitive. When several rules hit, the lowest Priority
// value wins regardless of hit counts.
func (e *Engine) Categorize(text string) Match {
	e.mu.RLock()
	defer e.mu.RUnlock()

	fallback := Match{
		RuleID:   "fallback",
		RuleName: "Fallback",
		Category: domain.CategoryOther,
	}

	if e.matcher == nil || text == "" {
		return fallback
	}

	hits := e.matcher.Match([]byte(strings.ToLower(text)))
	if len(hits) == 0 {
		return fallback
	}

	// Collect matched keywords per rule, then pick the highest-priority
	// rule with at least one hit. Rules are already in priority order.
	matched := make(map[int][]string)
	for _, hit := range hits {
		if hit >= len(e.keywords) {
			continue
		}
		ruleIdx := e.owners[hit]
		matched[ruleIdx] = append(matched[ruleIdx], e.keywords[hit])
	}

	for ruleIdx := range e.rules {
		keywords, ok := matched[ruleIdx]
		if !ok {
			continue
		}
		rule := e.rules[ruleIdx]
		return Match{
			RuleID:          rule.ID,
			RuleName:        rule.Name,
			Category:        rule.Category,
			MatchedKeywords: keywords,
		}
	}

	return fallback
}

// Label is the training-time shorthand for Categorize.
func (e *Engine) Label(text string) string {
	return e.Categorize(text).Category
}

// UpdateRules swaps in a new rule set without restarting the service.
func (e *Engine) UpdateRules(ruleSet []domain.TriageRule) {
	e.mu.Lock()
	e.rebuild(ruleSet)
	ruleCount := len(e.rules)
	keywordCount := len(e.keywords)
	e.mu.Unlock()

	if e.logger != nil {
		e.logger.Info("rule engine updated",
			logging.Int("rules", ruleCount),
			logging.Int("keywords", keywordCount))
	}
}

// Rules returns a copy of the enabled rules in priority order.
func (e *Engine) Rules() []domain.TriageRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]domain.TriageRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// RuleCount returns the number of enabled rules.
func (e *Engine) RuleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rules)
}
