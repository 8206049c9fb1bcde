package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SchoolID     uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_course_code" json:"school_id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Code         string     `gorm:"type:varchar(32);not null;uniqueIndex:uq_course_code" json:"code"`
	Description  string     `gorm:"type:text" json:"description"`
	Credits      int        `gorm:"not null;default:0" json:"credits"`
	InstructorID *uuid.UUID `gorm:"type:uuid;index" json:"instructor_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Instructor *instructorRef `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// instructorRef is a read-only projection; the full model lives in the
// instructor package.
type instructorRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string    `gorm:"column:full_name" json:"full_name"`
	Email    string    `json:"email"`
}

func (instructorRef) TableName() string {
	return "instructors"
}
