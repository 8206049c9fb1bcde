package recruitment

type CreateCandidateRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	PositionApplied string `json:"position_applied" binding:"required"`
	Notes           string `json:"notes"`
}

type UpdateCandidateRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	PositionApplied string `json:"position_applied" binding:"required"`
	Notes           string `json:"notes"`
}

type TransitionStageRequest struct {
	Stage string `json:"stage" binding:"required,oneof=APPLIED SCREENING INTERVIEW OFFER HIRED REJECTED"`
}

type CandidateResponse struct {
	ID              string `json:"id"`
	SchoolID        string `json:"school_id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	PositionApplied string `json:"position_applied"`
	Stage           string `json:"stage"`
	Notes           string `json:"notes,omitempty"`
	HasResume       bool   `json:"has_resume"`
}
