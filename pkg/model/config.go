package model

import "time"

// SchedulerConfig is the immutable tunable set for one solve invocation.
// Zero MaxGroupsPerSlot means "size of the general room pool".
type SchedulerConfig struct {
	MaxGroupsPerSlot      int
	StudentNoClash        bool
	CohortSameDayHard     bool
	ConsecutiveDayPenalty int
	PhaseTimeout          time.Duration
	Workers               int
	DistributeUniformly   bool
	SplitThreshold        int
	SplitMinDayGap        int
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		MaxGroupsPerSlot:      0,
		StudentNoClash:        true,
		CohortSameDayHard:     false,
		ConsecutiveDayPenalty: 1_000_000,
		PhaseTimeout:          60 * time.Second,
		Workers:               8,
		DistributeUniformly:   true,
		SplitThreshold:        25,
		SplitMinDayGap:        2,
	}
}
