package controller

import (
	"io"
	"mime/multipart"

	"neurax-chat-be/internal/dto"
	"neurax-chat-be/internal/entity"
	"neurax-chat-be/internal/pkg/attachment"
	"neurax-chat-be/internal/pkg/serverutils"
	"neurax-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Models(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
	ListConversations(ctx *fiber.Ctx) error
	CreateConversation(ctx *fiber.Ctx) error
	ShowConversation(ctx *fiber.Ctx) error
	SelectConversation(ctx *fiber.Ctx) error
	RenameConversation(ctx *fiber.Ctx) error
	DeleteConversation(ctx *fiber.Ctx) error
	EncodeAttachments(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Get("models", c.Models)
	h.Get("state", c.State)
	h.Get("conversations", c.ListConversations)
	h.Post("conversations", c.CreateConversation)
	h.Get("conversations/:id", c.ShowConversation)
	h.Put("conversations/:id/select", c.SelectConversation)
	h.Put("conversations/:id/title", c.RenameConversation)
	h.Delete("conversations/:id", c.DeleteConversation)
	h.Post("attachments", c.EncodeAttachments)
	h.Post("send", c.Send)
}

func (c *chatController) Models(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Available models", c.chatService.Models()))
}

func (c *chatController) State(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Session state", c.chatService.State()))
}

func (c *chatController) ListConversations(ctx *fiber.Ctx) error {
	res := c.chatService.ListConversations(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Conversations", res))
}

func (c *chatController) CreateConversation(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateConversation(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation created", res))
}

func (c *chatController) ShowConversation(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetConversation(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation", res))
}

func (c *chatController) SelectConversation(ctx *fiber.Ctx) error {
	if err := c.chatService.SelectConversation(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation selected", nil))
}

func (c *chatController) RenameConversation(ctx *fiber.Ctx) error {
	var req dto.RenameConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.RenameConversation(ctx.Context(), ctx.Params("id"), req.Title); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation renamed", nil))
}

func (c *chatController) DeleteConversation(ctx *fiber.Ctx) error {
	if err := c.chatService.DeleteConversation(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation deleted", nil))
}

// EncodeAttachments converts a multipart upload into the data URI form that
// a subsequent send carries inline.
func (c *chatController) EncodeAttachments(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Multipart form is required"))
	}

	files := form.File["files"]
	if len(files) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "At least one file is required"))
	}

	inputs := make([]attachment.Input, len(files))
	for i, fh := range files {
		fh := fh
		inputs[i] = attachment.Input{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return openMultipartFile(fh)
			},
		}
	}

	encoded, err := attachment.EncodeAll(inputs)
	if err != nil {
		return err
	}

	res := make([]dto.AttachmentDTO, len(encoded))
	for i, att := range encoded {
		res[i] = attachmentToDTO(att)
	}
	return ctx.JSON(serverutils.SuccessResponse("Attachments encoded", res))
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.chatService.Send(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}

func openMultipartFile(fh *multipart.FileHeader) (io.ReadCloser, error) {
	return fh.Open()
}

func attachmentToDTO(att entity.Attachment) dto.AttachmentDTO {
	return dto.AttachmentDTO{
		Name:     att.Name,
		MimeType: att.MimeType,
		Data:     att.Data,
	}
}
