package score

type CreateScoreRequest struct {
	CourseID       string  `json:"course_id" binding:"required,uuid"`
	StudentName    string  `json:"student_name" binding:"required"`
	TestDate       string  `json:"test_date" binding:"required"`
	Score          float64 `json:"score" binding:"min=0"`
	MaxScore       float64 `json:"max_score" binding:"required,gt=0"`
	AdministeredBy string  `json:"administered_by" binding:"omitempty,uuid"`
}

type UpdateScoreRequest struct {
	CourseID       string  `json:"course_id" binding:"required,uuid"`
	StudentName    string  `json:"student_name" binding:"required"`
	TestDate       string  `json:"test_date" binding:"required"`
	Score          float64 `json:"score" binding:"min=0"`
	MaxScore       float64 `json:"max_score" binding:"required,gt=0"`
	AdministeredBy string  `json:"administered_by" binding:"omitempty,uuid"`
}

type ScoreResponse struct {
	ID             string  `json:"id"`
	SchoolID       string  `json:"school_id"`
	CourseID       string  `json:"course_id"`
	CourseName     string  `json:"course_name,omitempty"`
	CourseCode     string  `json:"course_code,omitempty"`
	StudentName    string  `json:"student_name"`
	TestDate       string  `json:"test_date"`
	Score          float64 `json:"score"`
	MaxScore       float64 `json:"max_score"`
	AdministeredBy *string `json:"administered_by,omitempty"`
}

// SummaryResponse is the server-side aggregation over a course's scores.
// Pass rate counts entries where score/max_score is at least 0.5.
type SummaryResponse struct {
	CourseID string  `json:"course_id"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	PassRate float64 `json:"pass_rate"`
}
