package models

import "time"

// ExerciseType identifies the interaction style of a practice item.
type ExerciseType string

const (
	ExerciseMCQ   ExerciseType = "mcq"
	ExerciseOrder ExerciseType = "order"
	ExerciseShort ExerciseType = "short"
)

// ExerciseTypes lists every known exercise type in declaration order.
// Bandit arm iteration follows this order so tie-breaks stay deterministic.
var ExerciseTypes = []ExerciseType{ExerciseMCQ, ExerciseOrder, ExerciseShort}

// Valid reports whether t is one of the known exercise types.
func (t ExerciseType) Valid() bool {
	for _, known := range ExerciseTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Learner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Skill     float64   `json:"skill"`
	CreatedAt time.Time `json:"created_at"`
}

type Module struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

type Lesson struct {
	ID       string `json:"id"`
	ModuleID string `json:"module_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type Item struct {
	ID         string       `json:"id"`
	LessonID   string       `json:"lesson_id"`
	Type       ExerciseType `json:"type"`
	Prompt     string       `json:"prompt"`
	Answer     string       `json:"answer"`
	Difficulty float64      `json:"difficulty"`
	Tags       []string     `json:"tags"`
	CreatedAt  time.Time    `json:"created_at"`
}

type Attempt struct {
	ID          string        `json:"id"`
	LearnerID   string        `json:"learner_id"`
	ItemID      string        `json:"item_id"`
	Correct     bool          `json:"correct"`
	Latency     time.Duration `json:"latency"`
	MasteryGain float64       `json:"mastery_gain"`
	AnsweredAt  time.Time     `json:"answered_at"`
}
