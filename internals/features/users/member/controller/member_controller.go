package controller

import (
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/features/users/member/dto"
	"rohisku_backend/internals/features/users/member/model"
	"rohisku_backend/internals/features/users/member/service"
	helper "rohisku_backend/internals/helpers"
	authMw "rohisku_backend/internals/middlewares/auth"
)

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

// GET /api/members
func (mc *MemberController) List(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := mc.DB.Order("name").Find(&users).Error; err != nil {
		log.Println("[ERROR] Failed to fetch members:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve members")
	}
	return helper.JsonOK(c, "Members fetched successfully", fiber.Map{
		"total":   len(users),
		"members": users,
	})
}

// POST /api/members
func (mc *MemberController) Create(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := service.CreateMember(mc.DB, req.Name, req.Email, req.ClassName, req.Role)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, fmt.Sprintf("Member %s created", user.Name), user)
}

// POST /api/members/batch-add — CSV upload atau bulk text
func (mc *MemberController) BatchAdd(c *fiber.Ctx) error {
	var rows [][]string

	// 1) file CSV (multipart)
	if fh, err := c.FormFile("csv_file"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Failed to read CSV file")
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "CSV parse error: "+err.Error())
		}
		rows = append(rows, records...)
	}

	// 2) bulk text (form field atau body JSON)
	bulkText := strings.TrimSpace(c.FormValue("bulk_text"))
	if bulkText == "" {
		var req dto.BatchAddRequest
		if err := c.BodyParser(&req); err == nil {
			bulkText = strings.TrimSpace(req.BulkText)
		}
	}
	if bulkText != "" {
		rows = append(rows, service.ParseBulkText(bulkText)...)
	}

	added, errs := service.ImportRows(mc.DB, rows)
	log.Printf("[SUCCESS] Batch add: %d ditambahkan, %d error", added, len(errs))

	status := fiber.StatusOK
	if added > 0 {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"added":   added,
		"errors":  errs,
	})
}

// POST /api/members/batch-delete
func (mc *MemberController) BatchDelete(c *fiber.Ctx) error {
	var req dto.BatchDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No member IDs provided")
	}

	actor := authMw.CurrentUser(c)
	if actor == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	deleted, failed, err := service.BatchDelete(mc.DB, actor.ID, req.IDs)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Members deleted", fiber.Map{
		"deleted": deleted,
		"failed":  failed,
	})
}

// DELETE /api/members/:user_id
func (mc *MemberController) Delete(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "user_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	actor := authMw.CurrentUser(c)
	if actor == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if err := service.DeleteMember(mc.DB, actor.ID, userID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Member deleted", nil)
}

// PUT /api/members/:user_id/role
func (mc *MemberController) ChangeRole(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "user_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Role) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Role is required")
	}

	user, err := service.ChangeRole(mc.DB, userID, req.Role)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Role updated", user)
}

// PUT /api/members/:user_id/pic
func (mc *MemberController) AssignPic(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "user_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var req dto.AssignPicRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, message, err := service.AssignPic(mc.DB, userID, req.PicID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, message, user)
}

// PUT /api/members/:user_id/attendance-permission
func (mc *MemberController) ToggleAttendancePermission(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "user_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var req dto.AttendancePermissionRequest
	if err := c.BodyParser(&req); err != nil {
		req.CanMark = nil // body kosong → toggle
	}

	user, err := service.ToggleAttendancePermission(mc.DB, userID, req.CanMark)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Permission updated", fiber.Map{
		"can_mark_attendance": user.CanMarkAttendance,
		"member":              user,
	})
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || v == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(v), nil
}
