package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rohisku_backend/internals/features/pics/model"
	"rohisku_backend/internals/features/pics/service"
	helper "rohisku_backend/internals/helpers"
)

type PicController struct {
	DB *gorm.DB
}

func NewPicController(db *gorm.DB) *PicController {
	return &PicController{DB: db}
}

// GET /api/pics
func (pc *PicController) List(c *fiber.Ctx) error {
	var pics []model.PicModel
	if err := pc.DB.Preload("Members").Order("name").Find(&pics).Error; err != nil {
		log.Println("[ERROR] Failed to fetch PICs:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve PICs")
	}

	items := make([]fiber.Map, 0, len(pics))
	for _, p := range pics {
		members := make([]fiber.Map, 0, len(p.Members))
		for _, m := range p.Members {
			members = append(members, fiber.Map{"id": m.ID, "name": m.Name})
		}
		items = append(items, fiber.Map{
			"id":           p.ID,
			"name":         p.Name,
			"description":  p.Description,
			"created_at":   p.CreatedAt,
			"member_count": len(p.Members),
			"members":      members,
		})
	}
	return helper.JsonOK(c, "PICs fetched successfully", items)
}

// POST /api/pics
func (pc *PicController) Create(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	pic, err := service.CreatePic(pc.DB, req.Name, req.Description)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "PIC '"+pic.Name+"' created", pic)
}

// DELETE /api/pics/:pic_id
func (pc *PicController) Delete(c *fiber.Ctx) error {
	picID, err := strconv.ParseUint(c.Params("pic_id"), 10, 64)
	if err != nil || picID == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	pic, err2 := service.DeletePic(pc.DB, uint(picID))
	if err2 != nil {
		return helper.FromFiberError(c, err2)
	}
	return helper.JsonDeleted(c, "PIC '"+pic.Name+"' deleted", nil)
}
