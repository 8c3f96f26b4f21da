package controller

import (
	"nco-classifier-be/internal/dto"
	"nco-classifier-be/internal/pkg/apperror"
	"nco-classifier-be/internal/pkg/serverutils"
	"nco-classifier-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
	NewChat(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/session/v1")
	h.Post("", c.Create)
	h.Post("/validate", c.Validate)

	r.Post("/chat/v1/new", authMiddleware, c.NewChat)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *sessionController) Validate(ctx *fiber.Ctx) error {
	var req dto.ValidateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewInvalidRequest("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ValidateSession(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *sessionController) NewChat(ctx *fiber.Ctx) error {
	sessionId, err := sessionFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.NewChat(ctx.UserContext(), sessionId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("New chat started", res))
}

func sessionFromLocals(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals(serverutils.SessionIDLocal).(string)
	sessionId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewUnauthorized("token carries an invalid session id")
	}
	return sessionId, nil
}
