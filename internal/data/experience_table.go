package data

import "github.com/udisondev/wavecrawl/internal/model"

// MaxPlayerLevel is the level cap of the default content.
const MaxPlayerLevel = 30

// ExperienceTable holds cumulative experience required to reach each level.
// Index = level - 1. Level n → n+1 costs n × 100, so level L needs
// 50 × L × (L - 1) in total.
var ExperienceTable = [MaxPlayerLevel]model.Experience{
	0,     // 1
	100,   // 2
	300,   // 3
	600,   // 4
	1000,  // 5
	1500,  // 6
	2100,  // 7
	2800,  // 8
	3600,  // 9
	4500,  // 10
	5500,  // 11
	6600,  // 12
	7800,  // 13
	9100,  // 14
	10500, // 15
	12000, // 16
	13600, // 17
	15300, // 18
	17100, // 19
	19000, // 20
	21000, // 21
	23100, // 22
	25300, // 23
	27600, // 24
	30000, // 25
	32500, // 26
	35100, // 27
	37800, // 28
	40600, // 29
	43500, // 30
}

// DefaultLevelTable returns a level table backed by ExperienceTable.
// Catalogs without their own thresholds use it.
func DefaultLevelTable() model.LevelTable {
	thresholds := make([]model.Experience, len(ExperienceTable))
	copy(thresholds, ExperienceTable[:])
	return model.LevelTable{Thresholds: thresholds}
}
