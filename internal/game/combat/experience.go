package combat

import (
	"log/slog"
	"math"

	"github.com/udisondev/wavecrawl/internal/config"
	"github.com/udisondev/wavecrawl/internal/game/stats"
	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/rng"
)

// Reward variance bounds: each reward is scaled by a factor in [0.8, 1.2).
const (
	RewardVarianceMin   = 0.8
	RewardVarianceRange = 0.4
)

// Reward is what a defeated monster yields besides loot.
type Reward struct {
	Experience model.Experience
	Gold       model.Gold
}

// CalculateReward rolls experience and gold for a defeated monster.
//
// Algorithm:
//  1. exp  = floor(monster exp × variance × tier exp multiplier × rates exp)
//  2. gold = floor(monster gold × variance × tier gold multiplier × rates gold)
//
// Two draws are consumed, experience first.
func CalculateReward(m *model.Monster, tier model.TierRule, rates *config.Rates, src rng.Source) Reward {
	expVar := RewardVarianceMin + src.Float64()*RewardVarianceRange
	goldVar := RewardVarianceMin + src.Float64()*RewardVarianceRange

	exp := float64(m.Experience) * expVar * tier.ExpMultiplier * rates.Exp()
	gold := float64(m.Gold) * goldVar * tier.GoldMultiplier * rates.Gold()

	return Reward{
		Experience: model.Experience(max(0, math.Floor(exp))),
		Gold:       model.Gold(max(0, math.Floor(gold))),
	}
}

// AwardExperience adds cumulative experience to the player and applies
// every level gained: class growth per level, then resource restoration
// per policy. Returns the gained levels in ascending order.
func AwardExperience(
	p *model.Player,
	exp model.Experience,
	levels model.LevelTable,
	class model.ClassTemplate,
	policy model.LevelUpPolicy,
) []model.Level {
	if exp > 0 {
		p.Experience += exp
	}

	oldLevel := p.Level
	newLevel := levels.LevelFor(p.Experience, oldLevel)
	if newLevel <= oldLevel {
		return nil
	}

	gained := make([]model.Level, 0, newLevel-oldLevel)
	for l := oldLevel + 1; l <= newLevel; l++ {
		p.BaseAttributes = p.BaseAttributes.Plus(class.AttributeGrowth)
		p.BaseStats = p.BaseStats.Plus(class.StatGrowth)
		gained = append(gained, l)
	}
	p.Level = newLevel

	s := stats.ResolvePlayer(p)
	if policy.RestoreHealth {
		p.CurrentHealth = s.MaxHealth
	}
	if policy.RestoreMana {
		p.CurrentMana = s.MaxMana
	}
	p.Clamp(s.MaxHealth, s.MaxMana)

	slog.Debug("player leveled up",
		"player", p.Name,
		"oldLevel", oldLevel,
		"newLevel", newLevel,
		"exp", p.Experience)

	return gained
}
