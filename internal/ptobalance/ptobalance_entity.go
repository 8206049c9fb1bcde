package ptobalance

import (
	"time"

	"github.com/google/uuid"
)

// BalanceSnapshot is the per-year leave allowance bookkeeping for one
// instructor. The synchronizer owns UsedDays, RemainingDays and
// LastUpdated; TotalDays and Adjustments are operator-set and only read
// here.
type BalanceSnapshot struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID     uuid.UUID `gorm:"type:uuid;not null;index"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_instructor_year"`
	Year         int       `gorm:"type:int;not null;uniqueIndex:uq_balance_instructor_year"`

	TotalDays     int `gorm:"type:int;not null;default:21"`
	UsedDays      int `gorm:"type:int;not null;default:0"`
	RemainingDays int `gorm:"type:int;not null;default:21"`
	Adjustments   int `gorm:"type:int;not null;default:0"`

	LastUpdated time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
