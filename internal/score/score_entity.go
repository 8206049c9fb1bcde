package score

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestScore struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SchoolID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_test_scores_school_course" json:"school_id"`
	CourseID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_test_scores_school_course" json:"course_id"`
	StudentName    string     `gorm:"type:varchar(255);not null" json:"student_name"`
	TestDate       time.Time  `gorm:"type:date;not null" json:"test_date"`
	Score          float64    `gorm:"not null" json:"score"`
	MaxScore       float64    `gorm:"not null" json:"max_score"`
	AdministeredBy *uuid.UUID `gorm:"type:uuid" json:"administered_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Course *courseRef `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (TestScore) TableName() string {
	return "test_scores"
}

// courseRef is a read-only projection; the full model lives in the
// course package.
type courseRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

func (courseRef) TableName() string {
	return "courses"
}
