package instructor

type CreateInstructorRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	StaffNumber      string `json:"staff_number"`
	Phone            string `json:"phone"`
	Nationality      string `json:"nationality"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=active on_leave terminated"`
	CourseID         string `json:"course_id" binding:"omitempty,uuid"`
}

type UpdateInstructorRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	StaffNumber      string `json:"staff_number"`
	Phone            string `json:"phone"`
	Nationality      string `json:"nationality"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=active on_leave terminated"`
	CourseID         string `json:"course_id" binding:"omitempty,uuid"`
}

type InstructorCourseResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type InstructorResponse struct {
	ID               string                    `json:"id"`
	FullName         string                    `json:"full_name"`
	Email            string                    `json:"email"`
	StaffNumber      string                    `json:"staff_number"`
	Phone            string                    `json:"phone,omitempty"`
	Nationality      string                    `json:"nationality,omitempty"`
	HireDate         string                    `json:"hire_date"`
	EmploymentStatus string                    `json:"employment_status"`
	SchoolID         string                    `json:"school_id"`
	CourseID         string                    `json:"course_id,omitempty"`
	Course           *InstructorCourseResponse `json:"course,omitempty"`
}
