package directory_dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type CreateEmployeeRequest struct {
	ExternalRef string  `json:"external_ref"`
	Email       string  `json:"email" validate:"required,email"`
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	JobTitle    string  `json:"job_title" validate:"max=150"`
	Department  *string `json:"department,omitempty" validate:"omitempty,max=150"`
	Timezone    string  `json:"timezone" validate:"required,ianatz"`
}

type UpdateEmployeeRequest struct {
	FirstName  *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	JobTitle   *string `json:"job_title,omitempty" validate:"omitempty,max=150"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=150"`
	Timezone   *string `json:"timezone,omitempty" validate:"omitempty,ianatz"`
	Status     *string `json:"status,omitempty"`
}

type UpdatePresenceRequest struct {
	Presence string `json:"presence" validate:"required"`
}

// TimezoneValidator rejects anything the IANA database does not know.
func TimezoneValidator(fl validator.FieldLevel) bool {
	_, err := time.LoadLocation(fl.Field().String())
	return err == nil
}
