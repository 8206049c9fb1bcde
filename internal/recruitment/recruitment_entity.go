package recruitment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Candidate struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SchoolID        uuid.UUID `gorm:"type:uuid;not null;index:idx_candidates_school_stage" json:"school_id"`
	FullName        string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email           string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone           string    `gorm:"type:varchar(32)" json:"phone"`
	PositionApplied string    `gorm:"type:varchar(255);not null" json:"position_applied"`
	Stage           string    `gorm:"type:varchar(32);not null;default:'APPLIED';index:idx_candidates_school_stage" json:"stage"`
	Notes           string    `gorm:"type:text" json:"notes"`
	ResumeObjectKey string    `gorm:"type:varchar(512)" json:"resume_object_key"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}
