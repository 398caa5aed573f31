package directory_dto

import (
	"time"

	"github.com/teamgrid/teamgrid/internal/entity"
)

type EmployeeResponse struct {
	ID          string     `json:"id"`
	ExternalRef string     `json:"external_ref,omitempty"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DisplayName string     `json:"display_name"`
	Phone       *string    `json:"phone,omitempty"`
	JobTitle    string     `json:"job_title"`
	Department  *string    `json:"department,omitempty"`
	Timezone    string     `json:"timezone"`
	Status      string     `json:"status"`
	Presence    string     `json:"presence"`
	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromEmployee(e entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID.String(),
		ExternalRef: e.ExternalRef,
		Email:       e.Email,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		DisplayName: e.DisplayName(),
		Phone:       e.Phone,
		JobTitle:    e.JobTitle,
		Department:  e.Department,
		Timezone:    e.Timezone,
		Status:      string(e.Status),
		Presence:    string(e.Presence),
		LastSeenAt:  e.LastSeenAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
