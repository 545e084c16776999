package tracker

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

// Rule holds the table options that change action derivation. Everything
// else about the game is fixed four-player riichi.
type Rule struct {
	// AnkanInRiichi permits a wait-preserving ankan of the drawn kind while
	// the seat's riichi stands.
	AnkanInRiichi bool
	// Kuikae forbids discarding the swap-call tiles right after a chi/pon.
	Kuikae bool
	// DoubleRiichi upgrades a riichi declared on the uninterrupted first
	// discard.
	DoubleRiichi bool
}

func NewRule() *Rule {
	return &Rule{
		AnkanInRiichi: true,
		Kuikae:        true,
		DoubleRiichi:  true,
	}
}

// LoadRule parses YAML rule overrides, e.g. "kuikae: false". Unset keys keep
// their defaults.
func LoadRule(data []byte) (*Rule, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("ankan_in_riichi", true)
	v.SetDefault("kuikae", true)
	v.SetDefault("double_riichi", true)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("rule config: %w", err)
	}
	return &Rule{
		AnkanInRiichi: v.GetBool("ankan_in_riichi"),
		Kuikae:        v.GetBool("kuikae"),
		DoubleRiichi:  v.GetBool("double_riichi"),
	}, nil
}
