package config

import "fmt"

// Rates holds reward rate multipliers for drops, gold and experience.
type Rates struct {
	DropChanceMultiplier float64 `yaml:"drop_chance_multiplier" env:"DROP_CHANCE"`
	GoldMultiplier       float64 `yaml:"gold_multiplier" env:"GOLD"`
	ExpMultiplier        float64 `yaml:"exp_multiplier" env:"EXP"`
}

// DefaultRates returns Rates with x1 multipliers.
func DefaultRates() Rates {
	return Rates{
		DropChanceMultiplier: 1.0,
		GoldMultiplier:       1.0,
		ExpMultiplier:        1.0,
	}
}

// Validate rejects negative multipliers.
func (r Rates) Validate() error {
	if r.DropChanceMultiplier < 0 || r.GoldMultiplier < 0 || r.ExpMultiplier < 0 {
		return fmt.Errorf("rates must be >= 0: drop=%v gold=%v exp=%v",
			r.DropChanceMultiplier, r.GoldMultiplier, r.ExpMultiplier)
	}
	return nil
}

// DropChance returns the drop chance multiplier, 1.0 for nil rates.
func (r *Rates) DropChance() float64 {
	if r == nil {
		return 1.0
	}
	return r.DropChanceMultiplier
}

// Gold returns the gold multiplier, 1.0 for nil rates.
func (r *Rates) Gold() float64 {
	if r == nil {
		return 1.0
	}
	return r.GoldMultiplier
}

// Exp returns the experience multiplier, 1.0 for nil rates.
func (r *Rates) Exp() float64 {
	if r == nil {
		return 1.0
	}
	return r.ExpMultiplier
}
