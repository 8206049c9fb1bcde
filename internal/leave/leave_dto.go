package leave

type CreateLeaveRequest struct {
	InstructorID     string `json:"instructor_id" binding:"required,uuid"`
	LeaveType        string `json:"leave_type" binding:"required,oneof=PTO R&R SICK UNPAID EMERGENCY"`
	StartDate        string `json:"start_date" binding:"required"`
	EndDate          string `json:"end_date" binding:"required"`
	ReturnDate       string `json:"return_date"`
	PTODaysRequested int    `json:"pto_days_requested" binding:"min=0"`
	RRDaysRequested  int    `json:"rr_days_requested" binding:"min=0"`
	Destination      string `json:"destination"`
	Comments         string `json:"comments"`
}

type UpdateLeaveRequest struct {
	InstructorID     string  `json:"instructor_id" binding:"required,uuid"`
	LeaveType        string  `json:"leave_type" binding:"required,oneof=PTO R&R SICK UNPAID EMERGENCY"`
	StartDate        string  `json:"start_date" binding:"required"`
	EndDate          string  `json:"end_date" binding:"required"`
	ReturnDate       string  `json:"return_date"`
	PTODaysRequested int     `json:"pto_days_requested" binding:"min=0"`
	RRDaysRequested  int     `json:"rr_days_requested" binding:"min=0"`
	Destination      string  `json:"destination"`
	Comments         string  `json:"comments"`
	Status           string  `json:"status" binding:"required,oneof=PENDING SUBMITTED APPROVED REJECTED CANCELLED"`
	ApprovedBy       *string `json:"approved_by"`
	RejectionReason  *string `json:"rejection_reason"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveResponse struct {
	ID               string  `json:"id"`
	SchoolID         string  `json:"school_id"`
	InstructorID     string  `json:"instructor_id"`
	InstructorName   string  `json:"instructor_name,omitempty"`
	LeaveType        string  `json:"leave_type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	ReturnDate       *string `json:"return_date,omitempty"`
	PTODaysRequested int     `json:"pto_days_requested"`
	RRDaysRequested  int     `json:"rr_days_requested"`
	Destination      string  `json:"destination,omitempty"`
	Comments         string  `json:"comments,omitempty"`
	Status           string  `json:"status"`
	CreatedBy        string  `json:"created_by"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
}
