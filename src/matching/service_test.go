package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
)

type fakeStore struct {
	rules []models.KeywordRule
	calls int
}

func (f *fakeStore) ListKeywordRules() ([]models.KeywordRule, error) {
	f.calls++
	return f.rules, nil
}

func TestService_CachesRules(t *testing.T) {
	store := &fakeStore{rules: []models.KeywordRule{rule(1, "netflix", 7, 0)}}
	svc := NewService(store, time.Minute)

	target, ok, err := svc.MatchOne("PRLV NETFLIX")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), target)

	_, _, err = svc.MatchOne("PRLV NETFLIX")
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
}

func TestService_InvalidateForcesReload(t *testing.T) {
	store := &fakeStore{rules: []models.KeywordRule{rule(1, "netflix", 7, 0)}}
	svc := NewService(store, time.Minute)

	_, err := svc.MatchAll("PRLV NETFLIX")
	require.NoError(t, err)

	store.rules = append(store.rules, rule(2, "prlv", 9, 5))
	svc.Invalidate()

	targets, err := svc.MatchAll("PRLV NETFLIX")
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, targets)
	assert.Equal(t, 2, store.calls)
}
