package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recycle-api/internal/application/auth"
	"github.com/jhoicas/recycle-api/internal/application/inventory"
	"github.com/jhoicas/recycle-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC     *usecase.MaterialUseCase
	EstoqueUC      *usecase.EstoqueUseCase
	MovimentacaoUC *inventory.MovimentacaoUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Estoques (protegido, solo lectura)
	estoques := api.Group("/estoques", requireAuth)
	estoqueHandler := NewEstoqueHandler(deps.EstoqueUC)
	estoques.Get("/", estoqueHandler.List)
	estoques.Get("/export", estoqueHandler.Export)
	estoques.Get("/:id", estoqueHandler.GetByID)

	// Materiais (protegido)
	materiais := api.Group("/materiais", requireAuth)
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materiais.Post("/", materialHandler.Create)
	materiais.Get("/", materialHandler.List)
	materiais.Get("/:id", materialHandler.GetByID)
	materiais.Put("/:id", materialHandler.Update)
	materiais.Delete("/:id", materialHandler.Delete)

	// Movimentações (protegido)
	movimentacoes := api.Group("/movimentacoes", requireAuth)
	movimentacaoHandler := NewMovimentacaoHandler(deps.MovimentacaoUC)
	movimentacoes.Post("/", movimentacaoHandler.Register)
	movimentacoes.Get("/", movimentacaoHandler.List)
}
