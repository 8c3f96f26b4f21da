package controller

import (
	"context"

	"nco-classifier-be/internal/dto"
	"nco-classifier-be/internal/pkg/apperror"
	"nco-classifier-be/internal/pkg/serverutils"
	"nco-classifier-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Start(ctx *fiber.Ctx) error
	Resume(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/chat/v1")
	h.Post("/start", authMiddleware, c.Start)
	h.Put("/resume", authMiddleware, c.Resume)
}

func (c *chatController) Start(ctx *fiber.Ctx) error {
	return c.handle(ctx, c.service.StartChat)
}

func (c *chatController) Resume(ctx *fiber.Ctx) error {
	return c.handle(ctx, c.service.ResumeChat)
}

type chatInvoker func(ctx context.Context, sessionId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)

func (c *chatController) handle(ctx *fiber.Ctx, invoke chatInvoker) error {
	sessionId, err := sessionFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewInvalidRequest("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := invoke(ctx.UserContext(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Status, res))
}
