// FILE: internal/controller/admin_controller.go
package controller

import (
	"strconv"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/logger"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/serverutils"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetDashboard(ctx *fiber.Ctx) error
	GetTransactions(ctx *fiber.Ctx) error
	GetAuditLogs(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error

	GrantAccess(ctx *fiber.Ctx) error
	RevokeAccess(ctx *fiber.Ctx) error
	RestoreAccess(ctx *fiber.Ctx) error
	DeleteEnrollment(ctx *fiber.Ctx) error

	CreateCourse(ctx *fiber.Ctx) error
	UpdateCourse(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
	logger  logger.ILogger
}

func NewAdminController(service service.IAdminService, logger logger.ILogger) IAdminController {
	return &adminController{
		service: service,
		logger:  logger,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", serverutils.JwtMiddleware, serverutils.AdminMiddleware)

	h.Get("/dashboard", c.GetDashboard)
	h.Get("/transactions", c.GetTransactions)
	h.Get("/audit-logs", c.GetAuditLogs)
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)

	h.Post("/enrollments/grant", c.GrantAccess)
	h.Post("/enrollments/:id/revoke", c.RevokeAccess)
	h.Post("/enrollments/:id/restore", c.RestoreAccess)
	h.Delete("/enrollments/:id", c.DeleteEnrollment)

	h.Post("/courses", c.CreateCourse)
	h.Patch("/courses/:id", c.UpdateCourse)
}

func (c *adminController) GetDashboard(ctx *fiber.Ctx) error {
	res, err := c.service.GetDashboard(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats", res))
}

func (c *adminController) GetTransactions(ctx *fiber.Ctx) error {
	var req dto.TransactionListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	res, err := c.service.GetTransactions(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Enrollment transactions", res))
}

func (c *adminController) GetAuditLogs(ctx *fiber.Ctx) error {
	var req dto.AuditLogListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	res, err := c.service.GetAuditLogs(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Audit trail", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))
	level := ctx.Query("level")

	logs, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	entry, err := c.logger.GetLogById(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "log entry not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", entry))
}

func adminActorId(ctx *fiber.Ctx) (uuid.UUID, error) {
	actorStr, _ := ctx.Locals("user_id").(string)
	actorId, err := uuid.Parse(actorStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid admin identity")
	}
	return actorId, nil
}

func (c *adminController) GrantAccess(ctx *fiber.Ctx) error {
	var req dto.GrantAccessRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actorId, err := adminActorId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GrantAccess(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Access granted", res))
}

func (c *adminController) RevokeAccess(ctx *fiber.Ctx) error {
	enrollmentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid enrollment id")
	}

	var req dto.RevokeAccessRequest
	_ = ctx.BodyParser(&req) // Reason is optional

	actorId, err := adminActorId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.RevokeAccess(ctx.Context(), actorId, enrollmentId, req.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Access revoked", res))
}

func (c *adminController) RestoreAccess(ctx *fiber.Ctx) error {
	enrollmentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid enrollment id")
	}

	var req dto.RevokeAccessRequest
	_ = ctx.BodyParser(&req)

	actorId, err := adminActorId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.RestoreAccess(ctx.Context(), actorId, enrollmentId, req.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Access restored", res))
}

func (c *adminController) DeleteEnrollment(ctx *fiber.Ctx) error {
	enrollmentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid enrollment id")
	}

	var req dto.RevokeAccessRequest
	_ = ctx.BodyParser(&req)

	actorId, err := adminActorId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteEnrollment(ctx.Context(), actorId, enrollmentId, req.Reason); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Enrollment deleted", nil))
}

func (c *adminController) CreateCourse(ctx *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	actorId, err := adminActorId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.CreateCourse(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Course created", res))
}

func (c *adminController) UpdateCourse(ctx *fiber.Ctx) error {
	courseId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course id")
	}

	var req dto.UpdateCourseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateCourse(ctx.Context(), courseId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Course updated", res))
}
