package models

import "time"

// ReviewState is the per-(learner, item) scheduling state maintained by the
// spaced repetition engine. Mastery stays in [0,1], Stability never drops
// below 0.1.
type ReviewState struct {
	Mastery   float64   `json:"mastery"`
	Stability float64   `json:"stability"`
	DueAt     time.Time `json:"due_at"`
}

// UserProgress is a persisted ReviewState for one learner/item pair.
type UserProgress struct {
	LearnerID   string      `json:"learner_id"`
	ItemID      string      `json:"item_id"`
	State       ReviewState `json:"state"`
	FirstSeenAt time.Time   `json:"first_seen_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PlanMix reports how many items from each pool ended up in a session plan.
type PlanMix struct {
	Current int `json:"current"`
	Review  int `json:"review"`
	Older   int `json:"older"`
}

// SessionPlan is the ordered item list for one practice session. Plans are
// ephemeral: a new one is requested per session, never resumed.
type SessionPlan struct {
	Items            []Item  `json:"items"`
	Mix              PlanMix `json:"mix"`
	EstimatedMinutes float64 `json:"estimated_minutes"`
}
