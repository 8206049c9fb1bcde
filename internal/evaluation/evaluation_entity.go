package evaluation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Evaluation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SchoolID       uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	InstructorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	EvaluatorID    uuid.UUID `gorm:"type:uuid;not null" json:"evaluator_id"`
	EvaluationDate time.Time `gorm:"type:date;not null" json:"evaluation_date"`
	OverallRating  int       `gorm:"not null" json:"overall_rating"`
	Strengths      string    `gorm:"type:text" json:"strengths"`
	Improvements   string    `gorm:"type:text" json:"improvements"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Instructor *instructorRef `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

type instructorRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string    `gorm:"column:full_name" json:"full_name"`
}

func (instructorRef) TableName() string {
	return "instructors"
}
