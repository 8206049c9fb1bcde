package instructor

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Instructor struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SchoolID         uuid.UUID  `gorm:"type:uuid;index"`
	CourseID         *uuid.UUID `gorm:"type:uuid"` // current teaching assignment, optional
	FullName         string
	Email            string `gorm:"uniqueIndex:uq_instructor_email"`
	StaffNumber      string `gorm:"uniqueIndex:uq_staff_number"`
	Phone            string
	Nationality      string
	HireDate         time.Time
	EmploymentStatus string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`

	Course *courseRef `gorm:"foreignKey:CourseID"`
}

// courseRef is a read-only projection of the courses table for preloads.
type courseRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (courseRef) TableName() string { return "courses" }
