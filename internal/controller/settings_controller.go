package controller

import (
	"neurax-chat-be/internal/dto"
	"neurax-chat-be/internal/entity"
	"neurax-chat-be/internal/pkg/serverutils"
	"neurax-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type settingsController struct {
	settingsService service.ISettingsService
}

func NewSettingsController(settingsService service.ISettingsService) ISettingsController {
	return &settingsController{
		settingsService: settingsService,
	}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1")
	h.Get("", c.Show)
	h.Put("", c.Update)
}

func (c *settingsController) Show(ctx *fiber.Ctx) error {
	settings := c.settingsService.Get()
	return ctx.JSON(serverutils.SuccessResponse("Current settings", settingsToDTO(settings)))
}

// Update replaces the whole settings object.
func (c *settingsController) Update(ctx *fiber.Ctx) error {
	var req dto.SettingsDTO
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.settingsService.Save(ctx.Context(), settingsFromDTO(&req)); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Settings saved", nil))
}

func settingsToDTO(s entity.AppSettings) dto.SettingsDTO {
	return dto.SettingsDTO{
		Provider:          s.Provider,
		Model:             s.Model,
		Temperature:       s.Temperature,
		EnableThinking:    s.EnableThinking,
		ThinkingBudget:    s.ThinkingBudget,
		EnableWebSearch:   s.EnableWebSearch,
		SystemInstruction: s.SystemInstruction,
		UserName:          s.UserName,
	}
}

func settingsFromDTO(req *dto.SettingsDTO) entity.AppSettings {
	return entity.AppSettings{
		Provider:          req.Provider,
		Model:             req.Model,
		Temperature:       req.Temperature,
		EnableThinking:    req.EnableThinking,
		ThinkingBudget:    req.ThinkingBudget,
		EnableWebSearch:   req.EnableWebSearch,
		SystemInstruction: req.SystemInstruction,
		UserName:          req.UserName,
	}
}
