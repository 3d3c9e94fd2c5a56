// FILE: internal/controller/enrollment_controller.go
package controller

import (
	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/serverutils"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEnrollmentController interface {
	RegisterRoutes(r fiber.Router)
	Enroll(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	GetStatus(ctx *fiber.Ctx) error
	GetUpiInstructions(ctx *fiber.Ctx) error
	VerifyPayment(ctx *fiber.Ctx) error
	CancelPending(ctx *fiber.Ctx) error
}

type enrollmentController struct {
	enrollmentService   service.IEnrollmentService
	verificationService service.IVerificationService
}

func NewEnrollmentController(enrollmentService service.IEnrollmentService, verificationService service.IVerificationService) IEnrollmentController {
	return &enrollmentController{
		enrollmentService:   enrollmentService,
		verificationService: verificationService,
	}
}

func (c *enrollmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/enrollments", serverutils.JwtMiddleware)
	h.Post("/", c.Enroll)
	h.Get("/", c.ListMine)
	h.Get("/status/:courseId", c.GetStatus)
	h.Get("/:id/upi", c.GetUpiInstructions)
	h.Post("/verify", c.VerifyPayment)
	h.Delete("/:id", c.CancelPending)
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}
	return userId, nil
}

func (c *enrollmentController) Enroll(ctx *fiber.Ctx) error {
	var req dto.EnrollRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.enrollmentService.Enroll(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Enrollment created", res))
}

func (c *enrollmentController) ListMine(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.enrollmentService.ListMine(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching enrollments", res))
}

func (c *enrollmentController) GetStatus(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	courseId, err := uuid.Parse(ctx.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course id")
	}

	res, err := c.enrollmentService.GetStatus(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Enrollment status", res))
}

func (c *enrollmentController) GetUpiInstructions(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	enrollmentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid enrollment id")
	}

	res, err := c.enrollmentService.GetUpiInstructions(ctx.Context(), userId, enrollmentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment instructions", res))
}

func (c *enrollmentController) VerifyPayment(ctx *fiber.Ctx) error {
	var req dto.VerifyPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.verificationService.VerifyPayment(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment verified", res))
}

func (c *enrollmentController) CancelPending(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	enrollmentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid enrollment id")
	}

	if err := c.enrollmentService.CancelPending(ctx.Context(), userId, enrollmentId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Enrollment cancelled", nil))
}
