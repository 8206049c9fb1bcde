package course

type CreateCourseRequest struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required,max=32"`
	Description  string `json:"description"`
	Credits      int    `json:"credits" binding:"min=0,max=30"`
	InstructorID string `json:"instructor_id" binding:"omitempty,uuid"`
}

type UpdateCourseRequest struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required,max=32"`
	Description  string `json:"description"`
	Credits      int    `json:"credits" binding:"min=0,max=30"`
	InstructorID string `json:"instructor_id" binding:"omitempty,uuid"`
}

type CourseResponse struct {
	ID           string                    `json:"id"`
	SchoolID     string                    `json:"school_id"`
	Name         string                    `json:"name"`
	Code         string                    `json:"code"`
	Description  string                    `json:"description,omitempty"`
	Credits      int                       `json:"credits"`
	InstructorID *string                   `json:"instructor_id,omitempty"`
	Instructor   *CourseInstructorResponse `json:"instructor,omitempty"`
}

type CourseInstructorResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
