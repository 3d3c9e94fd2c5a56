// FILE: internal/controller/course_controller.go
package controller

import (
	"github.com/Aravind210193/E-Shikshan-sub002/internal/dto"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/pkg/serverutils"
	"github.com/Aravind210193/E-Shikshan-sub002/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type courseController struct {
	catalogService service.ICatalogService
}

func NewCourseController(catalogService service.ICatalogService) ICourseController {
	return &courseController{catalogService: catalogService}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	// Public catalog, no auth needed to browse.
	h := r.Group("/courses")
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
}

func (c *courseController) List(ctx *fiber.Ctx) error {
	var req dto.CourseListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	res, err := c.catalogService.ListCourses(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching courses", res))
}

func (c *courseController) Get(ctx *fiber.Ctx) error {
	courseId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course id")
	}

	res, err := c.catalogService.GetCourse(ctx.Context(), courseId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Course detail", res))
}
