package matching

import (
	"time"

	"github.com/Nicolas-Barriere/pactole-sub001/src/logger"
	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
	"github.com/patrickmn/go-cache"
)

const rulesCacheKey = "keyword_rules"

// RuleStore is the read side of the keyword-rule storage contract.
// Rules come back ordered by priority descending.
type RuleStore interface {
	ListKeywordRules() ([]models.KeywordRule, error)
}

// Service answers match queries against the stored rule set, caching
// the rules so a bulk re-tag of thousands of transactions does not hit
// storage once per label.
type Service struct {
	store RuleStore
	cache *cache.Cache
}

func NewService(store RuleStore, ttl time.Duration) *Service {
	return &Service{
		store: store,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Rules returns the current rule set, cached.
func (s *Service) Rules() ([]models.KeywordRule, error) {
	if cached, ok := s.cache.Get(rulesCacheKey); ok {
		return cached.([]models.KeywordRule), nil
	}
	rules, err := s.store.ListKeywordRules()
	if err != nil {
		return nil, err
	}
	s.cache.Set(rulesCacheKey, rules, cache.DefaultExpiration)
	logger.L.Debug("keyword rules loaded", "count", len(rules))
	return rules, nil
}

// Invalidate drops the cached rules. Call after any rule mutation.
func (s *Service) Invalidate() {
	s.cache.Delete(rulesCacheKey)
}

// MatchOne resolves a label against the stored rules.
func (s *Service) MatchOne(label string) (int64, bool, error) {
	rules, err := s.Rules()
	if err != nil {
		return 0, false, err
	}
	target, ok := MatchOne(label, rules)
	return target, ok, nil
}

// MatchAll resolves every matching target for a label.
func (s *Service) MatchAll(label string) ([]int64, error) {
	rules, err := s.Rules()
	if err != nil {
		return nil, err
	}
	return MatchAll(label, rules), nil
}
