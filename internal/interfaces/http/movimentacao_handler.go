package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recycle-api/internal/application/dto"
	"github.com/jhoicas/recycle-api/internal/application/inventory"
)

// MovimentacaoHandler entradas y salidas de estoque (protegido).
type MovimentacaoHandler struct {
	uc *inventory.MovimentacaoUseCase
}

// NewMovimentacaoHandler construye el handler.
func NewMovimentacaoHandler(uc *inventory.MovimentacaoUseCase) *MovimentacaoHandler {
	return &MovimentacaoHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar movimentação (ENTRADA/SAIDA)
// @Tags         movimentacoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovimentacaoRequest  true  "material_id, tipo, quantidade, observacao"
// @Success      201   {object}  dto.MovimentacaoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimentacoes [post]
func (h *MovimentacaoHandler) Register(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.RegisterMovimentacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.Register(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimentações
// @Tags         movimentacoes
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  string  false  "Filtrar por material"
// @Success      200  {array}  dto.MovimentacaoResponse
// @Router       /api/movimentacoes [get]
func (h *MovimentacaoHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), userID, c.Query("material_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
