package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateMemberRequest — create by pengurus
type CreateMemberRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=150"`
	Email     string `json:"email" validate:"required,email,max=120"`
	ClassName string `json:"class_name" validate:"omitempty,max=50"`
	Role      string `json:"role" validate:"omitempty,oneof=admin ketua pembina member"`
}

// Normalize — trim & normalisasi dasar
func (r *CreateMemberRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.ClassName = strings.TrimSpace(r.ClassName)
	r.Role = strings.TrimSpace(r.Role)
}

func (r *CreateMemberRequest) Validate() error {
	return validate.Struct(r)
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin ketua pembina member"`
}

func (r *ChangeRoleRequest) Validate() error {
	r.Role = strings.TrimSpace(r.Role)
	return validate.Struct(r)
}

type AssignPicRequest struct {
	PicID *uint `json:"pic_id"` // nil → lepas assignment
}

type AttendancePermissionRequest struct {
	// pointer supaya bisa bedakan "tidak dikirim" (toggle) vs false eksplisit
	CanMark *bool `json:"can_mark"`
}

type BatchDeleteRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

func (r *BatchDeleteRequest) Validate() error {
	return validate.Struct(r)
}

type BatchAddRequest struct {
	BulkText string `json:"bulk_text"`
}
