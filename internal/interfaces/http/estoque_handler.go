package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recycle-api/internal/application/usecase"
)

var exportContentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".pdf":  "application/pdf",
}

// EstoqueHandler consultas de estoque (protegido).
type EstoqueHandler struct {
	uc *usecase.EstoqueUseCase
}

// NewEstoqueHandler construye el handler.
func NewEstoqueHandler(uc *usecase.EstoqueUseCase) *EstoqueHandler {
	return &EstoqueHandler{uc: uc}
}

// List godoc
// @Summary      Listar estoques del usuario
// @Tags         estoques
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EstoqueResponse
// @Router       /api/estoques [get]
func (h *EstoqueHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener estoque por ID
// @Tags         estoques
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del estoque"
// @Success      200  {object}  dto.EstoqueResponse
// @Failure      404
// @Router       /api/estoques/{id} [get]
func (h *EstoqueHandler) GetByID(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar estoque (xlsx o pdf)
// @Tags         estoques
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format  query  string  false  "xlsx | pdf"  default(xlsx)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estoques/export [get]
func (h *EstoqueHandler) Export(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	content, filename, err := h.uc.Export(c.UserContext(), userID, c.Query("format"))
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(filename)
	if ct, ok := exportContentTypes[filepath.Ext(filename)]; ok {
		c.Set(fiber.HeaderContentType, ct)
	}
	return c.Send(content)
}
