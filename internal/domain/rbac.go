package domain

type EnforceRequest struct {
	InstructorID string
	SchoolID     string
	Resource     string
	Action       string
}
