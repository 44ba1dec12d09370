package events

import "time"

const JobRoleRescoredTopic = "comp.jobrole.rescored.v1"

type JobRoleRescoredEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	JobRoleID   string    `json:"job_role_id"`
	TotalPoints float64   `json:"total_points"`
	GradeID     *string   `json:"grade_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
