package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type CreateSessionRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Date        string `json:"date" validate:"required,max=50"`
	SessionType string `json:"session_type"`
	Description string `json:"description"`
}

func (r *CreateSessionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Date = strings.TrimSpace(r.Date)
	r.SessionType = strings.TrimSpace(r.SessionType)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *CreateSessionRequest) Validate() error {
	return validate.Struct(r)
}

type AssignPicsRequest struct {
	PicIDs []uint `json:"pic_ids"`
}
