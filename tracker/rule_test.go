package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuleDefaults(t *testing.T) {
	rule := NewRule()
	assert.True(t, rule.AnkanInRiichi)
	assert.True(t, rule.Kuikae)
	assert.True(t, rule.DoubleRiichi)
}

func TestLoadRuleOverrides(t *testing.T) {
	rule, err := LoadRule([]byte("kuikae: false\nankan_in_riichi: false\n"))
	require.NoError(t, err)
	assert.False(t, rule.Kuikae)
	assert.False(t, rule.AnkanInRiichi)
	assert.True(t, rule.DoubleRiichi, "unset keys keep defaults")
}

func TestLoadRuleEmpty(t *testing.T) {
	rule, err := LoadRule(nil)
	require.NoError(t, err)
	assert.Equal(t, NewRule(), rule)
}

func TestLoadRuleBadYAML(t *testing.T) {
	_, err := LoadRule([]byte("kuikae: [unclosed"))
	assert.Error(t, err)
}
