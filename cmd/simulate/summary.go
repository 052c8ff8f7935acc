package main

import (
	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/sim"
)

// summary aggregates a batch of results for the final log line.
type summary struct {
	Sessions  int
	Completed int
	AvgWave   float64
	MaxLevel  model.Level
}

func summarize(results []sim.Result) summary {
	var sum summary
	var waves int64
	for _, res := range results {
		s := res.Session
		sum.Sessions++
		if s.State == model.SessionCompleted {
			sum.Completed++
		}
		waves += int64(s.Wave)
		sum.MaxLevel = max(sum.MaxLevel, s.Player.Level)
	}
	if sum.Sessions > 0 {
		sum.AvgWave = float64(waves) / float64(sum.Sessions)
	}
	return sum
}
