package models

// BanditArm tracks reward statistics for one exercise type.
type BanditArm struct {
	Type          ExerciseType `json:"type"`
	TotalReward   float64      `json:"total_reward"`
	AttemptCount  int          `json:"attempt_count"`
	AverageReward float64      `json:"average_reward"`
}

// BanditHistory is the per-learner state of the exercise-type bandit.
// Arms always holds exactly one entry per known exercise type.
type BanditHistory struct {
	Arms          map[ExerciseType]BanditArm `json:"arms"`
	Epsilon       float64                    `json:"epsilon"`
	TotalAttempts int                        `json:"total_attempts"`
}

// Clone returns a deep copy so bandit updates can be copy-on-write.
func (h BanditHistory) Clone() BanditHistory {
	arms := make(map[ExerciseType]BanditArm, len(h.Arms))
	for t, arm := range h.Arms {
		arms[t] = arm
	}
	return BanditHistory{Arms: arms, Epsilon: h.Epsilon, TotalAttempts: h.TotalAttempts}
}
