package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/usecase"
)

// DirectoryHandler maneja proveedores y proyectos (contrapartes de entradas y salidas).
type DirectoryHandler struct {
	uc *usecase.DirectoryUseCase
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(uc *usecase.DirectoryUseCase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/suppliers [get]
func (h *DirectoryHandler) ListSuppliers(c *fiber.Ctx) error {
	out, err := h.uc.ListSuppliers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "", out)
}

// CreateSupplier godoc
// @Summary      Registrar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *DirectoryHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateSupplier(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusCreated, "Supplier created successfully", out)
}

// ListProjects godoc
// @Summary      Listar proyectos
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/projects [get]
func (h *DirectoryHandler) ListProjects(c *fiber.Ctx) error {
	out, err := h.uc.ListProjects(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, "", out)
}

// CreateProject godoc
// @Summary      Registrar proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "Datos del proyecto"
// @Success      201   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *DirectoryHandler) CreateProject(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateProject(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusCreated, "Project created successfully", out)
}
