// Package matching implements the keyword-priority engine used to
// auto-tag transactions from their labels.
package matching

import (
	"sort"
	"strings"

	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
)

// SortRules orders rules by priority descending, then keyword
// ascending (lowercased byte order), then ID ascending. The secondary
// keys exist so equal-priority results never depend on storage fetch
// order.
func SortRules(rules []models.KeywordRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		ki, kj := strings.ToLower(rules[i].Keyword), strings.ToLower(rules[j].Keyword)
		if ki != kj {
			return ki < kj
		}
		return rules[i].ID < rules[j].ID
	})
}

// MatchOne returns the target of the highest-priority rule whose
// keyword is a case-insensitive substring of label. An empty label or
// rule set never matches. Case folding is simple lowercasing on both
// sides, not full Unicode folding.
func MatchOne(label string, rules []models.KeywordRule) (int64, bool) {
	if label == "" || len(rules) == 0 {
		return 0, false
	}
	ordered := append([]models.KeywordRule(nil), rules...)
	SortRules(ordered)
	folded := strings.ToLower(label)
	for _, rule := range ordered {
		if strings.Contains(folded, strings.ToLower(rule.Keyword)) {
			return rule.TargetID, true
		}
	}
	return 0, false
}

// MatchAll collects the targets of every rule matching label, as a
// de-duplicated set. The returned slice is sorted by target ID for
// determinism; set semantics only, no ordering is promised to callers.
func MatchAll(label string, rules []models.KeywordRule) []int64 {
	if label == "" || len(rules) == 0 {
		return nil
	}
	folded := strings.ToLower(label)
	seen := make(map[int64]bool)
	var targets []int64
	for _, rule := range rules {
		if seen[rule.TargetID] {
			continue
		}
		if strings.Contains(folded, strings.ToLower(rule.Keyword)) {
			seen[rule.TargetID] = true
			targets = append(targets, rule.TargetID)
		}
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}
