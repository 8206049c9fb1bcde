package ptobalance

// Any integer year is accepted; a year with no approved leave simply
// resets every snapshot to an unused allowance.
type SyncAllRequest struct {
	Year int `json:"year"`
}

type SnapshotResponse struct {
	ID            string `json:"id"`
	SchoolID      string `json:"school_id"`
	InstructorID  string `json:"instructor_id"`
	Year          int    `json:"year"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
	Adjustments   int    `json:"adjustments"`
	LastUpdated   string `json:"last_updated"`
}

// SyncOutcome reports one instructor's result within a bulk resync.
type SyncOutcome struct {
	InstructorID   string `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
	Succeeded      bool   `json:"succeeded"`
	UsedDays       *int   `json:"used_days,omitempty"`
	RemainingDays  *int   `json:"remaining_days,omitempty"`
	Error          string `json:"error,omitempty"`
}

type SyncAllResponse struct {
	Year     int           `json:"year"`
	Message  string        `json:"message"`
	Outcomes []SyncOutcome `json:"outcomes"`
}
