package entity

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ExternalRef string         `gorm:"index"`
	Email       string         `gorm:"uniqueIndex;not null"`
	FirstName   string         `gorm:"not null"`
	LastName    string         `gorm:"not null"`
	Phone       *string
	JobTitle    string
	Department  *string
	Timezone    string         `gorm:"not null;default:'UTC'"`
	Status      EmployeeStatus `gorm:"type:varchar(20);not null"`
	Presence    Presence       `gorm:"type:varchar(20);not null"`
	LastSeenAt  *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (e Employee) DisplayName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeFilter narrows directory listings.
type EmployeeFilter struct {
	Status *EmployeeStatus
}

// EmployeePatch carries partial admin updates; nil fields stay untouched.
type EmployeePatch struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	JobTitle   *string
	Department *string
	Timezone   *string
	Status     *EmployeeStatus
}
