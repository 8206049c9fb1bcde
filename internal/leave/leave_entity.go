package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Leave struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID     uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_school_status"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_instructor_dates"`

	LeaveType  string     `gorm:"type:varchar(30);not null;default:'PTO'"`
	StartDate  time.Time  `gorm:"type:date;not null;index:idx_leaves_instructor_dates"`
	EndDate    time.Time  `gorm:"type:date;not null;index:idx_leaves_instructor_dates"`
	ReturnDate *time.Time `gorm:"type:date"`

	// PTO and R&R day counts are recorded separately on the request but
	// draw from the same annual allowance.
	PTODaysRequested int `gorm:"column:pto_days_requested;type:int;not null;default:0"`
	RRDaysRequested  int `gorm:"column:rr_days_requested;type:int;not null;default:0"`

	Destination string `gorm:"type:varchar(255)"`
	Comments    string `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_school_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`

	Instructor *instructorRef `gorm:"foreignKey:InstructorID"`
}

// instructorRef is a read-only projection of the instructors table for
// preloading the requester's name.
type instructorRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string
}

func (instructorRef) TableName() string { return "instructors" }
