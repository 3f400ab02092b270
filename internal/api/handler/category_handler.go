package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/ports"
)

// CategoryHandler handles HTTP requests for course categories.
type CategoryHandler struct {
	catalog ports.CatalogService
}

func NewCategoryHandler(catalog ports.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

type createCategoryRequest struct {
	Name        string `json:"name"        validate:"required"`
	Slug        string `json:"slug"        validate:"required"`
	IconName    string `json:"icon_name"`
	ColorClass  string `json:"color_class"`
	Description string `json:"description"`
}

// List returns all categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// GetBySlug returns one category.
//
// @Summary      Get a category by slug
// @Tags         categories
// @Produce      json
// @Param        slug  path      string  true  "Category slug"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  map[string]string
// @Router       /api/categories/{slug} [get]
func (h *CategoryHandler) GetBySlug(c echo.Context) error {
	category, err := h.catalog.GetCategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Create adds a new category. Admin only.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      createCategoryRequest  true  "Category details"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.catalog.CreateCategory(c.Request().Context(), ports.CreateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		IconName:    req.IconName,
		ColorClass:  req.ColorClass,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}
