package events

// Problem event types
const (
	TypeProblemCreated = "problem.created"
	TypeProblemDeleted = "problem.deleted"
)

// ProblemCreatedEvent fires after a submission is stored
type ProblemCreatedEvent struct {
	BaseEvent
	ProblemID  int64  `json:"problem_id"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic"`
}

// NewProblemCreatedEvent creates a problem created event
func NewProblemCreatedEvent(userID, problemID int64, difficulty, topic string) *ProblemCreatedEvent {
	return &ProblemCreatedEvent{
		BaseEvent:  newBaseEvent(TypeProblemCreated, userID),
		ProblemID:  problemID,
		Difficulty: difficulty,
		Topic:      topic,
	}
}

// ProblemDeletedEvent fires after a problem is removed
type ProblemDeletedEvent struct {
	BaseEvent
	ProblemID int64 `json:"problem_id"`
}

// NewProblemDeletedEvent creates a problem deleted event
func NewProblemDeletedEvent(userID, problemID int64) *ProblemDeletedEvent {
	return &ProblemDeletedEvent{
		BaseEvent: newBaseEvent(TypeProblemDeleted, userID),
		ProblemID: problemID,
	}
}
