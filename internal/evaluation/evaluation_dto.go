package evaluation

type CreateEvaluationRequest struct {
	InstructorID   string `json:"instructor_id" binding:"required,uuid"`
	EvaluationDate string `json:"evaluation_date" binding:"required"`
	OverallRating  int    `json:"overall_rating" binding:"required,min=1,max=5"`
	Strengths      string `json:"strengths"`
	Improvements   string `json:"improvements"`
}

type UpdateEvaluationRequest struct {
	EvaluationDate string `json:"evaluation_date" binding:"required"`
	OverallRating  int    `json:"overall_rating" binding:"required,min=1,max=5"`
	Strengths      string `json:"strengths"`
	Improvements   string `json:"improvements"`
}

type EvaluationResponse struct {
	ID             string `json:"id"`
	SchoolID       string `json:"school_id"`
	InstructorID   string `json:"instructor_id"`
	InstructorName string `json:"instructor_name,omitempty"`
	EvaluatorID    string `json:"evaluator_id"`
	EvaluationDate string `json:"evaluation_date"`
	OverallRating  int    `json:"overall_rating"`
	Strengths      string `json:"strengths,omitempty"`
	Improvements   string `json:"improvements,omitempty"`
}
