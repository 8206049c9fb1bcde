package events

import "time"

const InstructorCreatedTopic = "school.instructor.lifecycle.v1"

type InstructorCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	InstructorID string    `json:"instructor_id"`
	SchoolID     string    `json:"school_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
