package skill

import (
	"testing"

	"github.com/udisondev/wavecrawl/internal/model"
)

func TestSatisfied(t *testing.T) {
	due := map[model.SkillID]bool{"pulse": true}

	tests := []struct {
		name string
		cond model.TriggerCondition
		id   model.SkillID
		ctx  Context
		want bool
	}{
		{"always on action", model.TriggerCondition{Kind: model.TriggerAlways}, "x", Context{Event: EventAction}, true},
		{"always on turn start", model.TriggerCondition{Kind: model.TriggerAlways}, "x", Context{Event: EventTurnStart}, true},
		{"always not on kill", model.TriggerCondition{Kind: model.TriggerAlways}, "x", Context{Event: EventKill}, false},
		{"critical", model.TriggerCondition{Kind: model.TriggerOnCritical}, "x", Context{Event: EventCritical}, true},
		{"critical wrong event", model.TriggerCondition{Kind: model.TriggerOnCritical}, "x", Context{Event: EventTurnStart}, false},
		{"kill", model.TriggerCondition{Kind: model.TriggerOnKill}, "x", Context{Event: EventKill}, true},
		{"low health below", model.TriggerCondition{Kind: model.TriggerOnLowHealth, Threshold: 0.3}, "x", Context{Event: EventTurnStart, HealthRatio: 0.2}, true},
		{"low health at threshold", model.TriggerCondition{Kind: model.TriggerOnLowHealth, Threshold: 0.3}, "x", Context{Event: EventTurnStart, HealthRatio: 0.3}, true},
		{"low health above", model.TriggerCondition{Kind: model.TriggerOnLowHealth, Threshold: 0.3}, "x", Context{Event: EventTurnStart, HealthRatio: 0.31}, false},
		{"high health", model.TriggerCondition{Kind: model.TriggerOnHighHealth, Threshold: 0.9}, "x", Context{Event: EventAction, HealthRatio: 1}, true},
		{"every n due", model.TriggerCondition{Kind: model.TriggerEveryNTurns, Interval: 3}, "pulse", Context{Event: EventTurnStart, Due: due}, true},
		{"every n other skill", model.TriggerCondition{Kind: model.TriggerEveryNTurns, Interval: 3}, "nova", Context{Event: EventTurnStart, Due: due}, false},
		{"battle start", model.TriggerCondition{Kind: model.TriggerOnBattleStart}, "x", Context{Event: EventBattleStart}, true},
		{"battle end", model.TriggerCondition{Kind: model.TriggerOnBattleEnd}, "x", Context{Event: EventBattleEnd}, true},
		{"battle end on start", model.TriggerCondition{Kind: model.TriggerOnBattleEnd}, "x", Context{Event: EventBattleStart}, false},
		{"mana above", model.TriggerCondition{Kind: model.TriggerManaAbove, Threshold: 0.5}, "x", Context{Event: EventAction, ManaRatio: 0.8}, true},
		{"mana at threshold", model.TriggerCondition{Kind: model.TriggerManaAbove, Threshold: 0.5}, "x", Context{Event: EventTurnStart, ManaRatio: 0.5}, true},
		{"mana below", model.TriggerCondition{Kind: model.TriggerManaAbove, Threshold: 0.5}, "x", Context{Event: EventAction, ManaRatio: 0.4}, false},
		{"mana above on kill", model.TriggerCondition{Kind: model.TriggerManaAbove, Threshold: 0.5}, "x", Context{Event: EventKill, ManaRatio: 1}, false},
		{"enemy wounded", model.TriggerCondition{Kind: model.TriggerEnemyHealthBelow, Threshold: 0.3}, "x", Context{Event: EventAction, Enemy: true, EnemyHealthRatio: 0.2}, true},
		{"enemy at threshold", model.TriggerCondition{Kind: model.TriggerEnemyHealthBelow, Threshold: 0.3}, "x", Context{Event: EventAction, Enemy: true, EnemyHealthRatio: 0.3}, false},
		{"no enemy", model.TriggerCondition{Kind: model.TriggerEnemyHealthBelow, Threshold: 0.3}, "x", Context{Event: EventTurnStart}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Satisfied(tt.cond, tt.id, tt.ctx); got != tt.want {
				t.Errorf("Satisfied(%v) = %v, want %v", tt.cond.Kind, got, tt.want)
			}
		})
	}
}

func TestTriggered_OrSemantics(t *testing.T) {
	s := &model.Skill{
		ID: "second_wind",
		Triggers: []model.TriggerCondition{
			{Kind: model.TriggerOnKill},
			{Kind: model.TriggerOnLowHealth, Threshold: 0.25},
		},
	}

	if !Triggered(s, Context{Event: EventKill, HealthRatio: 1}) {
		t.Error("expected kill to trigger")
	}
	if !Triggered(s, Context{Event: EventTurnStart, HealthRatio: 0.1}) {
		t.Error("expected low health to trigger")
	}
	if Triggered(s, Context{Event: EventTurnStart, HealthRatio: 0.5}) {
		t.Error("expected no trigger at half health")
	}
}

func TestTriggered_EmptyIsAlways(t *testing.T) {
	s := &model.Skill{ID: "strike"}
	if !Triggered(s, Context{Event: EventAction}) {
		t.Error("skill without triggers must fire on action")
	}
	if Triggered(s, Context{Event: EventBattleEnd}) {
		t.Error("skill without triggers must not fire on battle end")
	}
}

func TestHealthRatio(t *testing.T) {
	if got := HealthRatio(25, 100); got != 0.25 {
		t.Errorf("HealthRatio(25, 100) = %v", got)
	}
	if got := ManaRatio(30, 40); got != 0.75 {
		t.Errorf("ManaRatio(30, 40) = %v", got)
	}
	if got := ManaRatio(5, 0); got != 0 {
		t.Errorf("ManaRatio(5, 0) = %v", got)
	}
	if got := HealthRatio(5, 0); got != 0 {
		t.Errorf("HealthRatio(5, 0) = %v", got)
	}
}
