package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/middleware"
	"github.com/guttosm/pantry-service/internal/service"
)

// PantryRoutes registers the household's pantry, shopping list, cooking
// and recipe routes.
type PantryRoutes struct {
	handler *Handler
}

// NewPantryRoutes creates a new PantryRoutes instance.
func NewPantryRoutes(handler *Handler) *PantryRoutes {
	return &PantryRoutes{handler: handler}
}

// RegisterProtectedRoutes registers the routes on a JWT-protected group.
func (r *PantryRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	read := requirePermission(cfg, service.PermPantryRead)
	write := requirePermission(cfg, service.PermPantryWrite)
	recipesWrite := requirePermission(cfg, service.PermRecipesWrite)
	h := r.handler

	pantry := protected.Group("/pantry")
	{
		pantry.GET("", withAuth(read, h.GetPantry)...)
		pantry.POST("/lots", withAuth(write, h.AddLot)...)
		pantry.DELETE("/lots/:id", withAuth(write, h.RemoveLot)...)
		pantry.POST("/lots/:id/discard", withAuth(write, h.DiscardLot)...)
		pantry.POST("/decrement", withAuth(write, h.Decrement)...)
	}

	shopping := protected.Group("/shopping-list")
	{
		shopping.GET("", withAuth(read, h.GetShoppingList)...)
		shopping.POST("", withAuth(write, h.AddShoppingEntry)...)
		shopping.DELETE("/:index", withAuth(write, h.RemoveShoppingEntry)...)
		shopping.POST("/missing/:name", withAuth(write, h.AddMissingToShopping)...)
		shopping.GET("/report.pdf", withAuth(read, h.ShoppingListPDF)...)
		shopping.POST("/report", withAuth(write, h.ExportShoppingList)...)
	}

	cooking := protected.Group("/cooking")
	{
		cooking.GET("/suggestions", withAuth(read, h.Suggestions)...)
		cooking.GET("/:name", withAuth(read, h.CheckRecipe)...)
		cooking.POST("/:name", withAuth(write, h.CookRecipe)...)
	}

	recipes := protected.Group("/recipes")
	{
		recipes.GET("", withAuth(read, h.ListRecipes)...)
		recipes.POST("/import", withAuth(recipesWrite, h.ImportRecipes)...)
		recipes.GET("/:name", withAuth(read, h.GetRecipe)...)
		recipes.PUT("/:name", withAuth(recipesWrite, h.SaveRecipe)...)
		recipes.DELETE("/:name", withAuth(recipesWrite, h.DeleteRecipe)...)
	}
}

// AdminRoutes registers household administration routes.
type AdminRoutes struct {
	handler *AdminHandler
}

// NewAdminRoutes creates a new AdminRoutes instance.
func NewAdminRoutes(admin service.AdminService) *AdminRoutes {
	return &AdminRoutes{handler: NewAdminHandler(admin)}
}

// RegisterProtectedRoutes registers the admin routes. Every route requires
// the admin role; mutations additionally need households:write.
func (r *AdminRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAuthorization(middleware.AuthorizationConfig{
		RequiredRoles: []string{model.RoleAdmin},
	}, cfg.RoleService))

	read := requirePermission(cfg, service.PermHouseholdsRead)
	write := requirePermission(cfg, service.PermHouseholdsWrite)
	h := r.handler

	admin.GET("/households", withAuth(read, h.ListHouseholds)...)
	admin.GET("/households/:name/pantry", withAuth(read, h.HouseholdPantry)...)
	admin.PUT("/households/:name/password", withAuth(write, h.ResetPassword)...)
	admin.POST("/households/:name/deactivate", withAuth(write, h.DeactivateHousehold)...)
	admin.DELETE("/households/:name", withAuth(write, h.DeleteHousehold)...)
	admin.GET("/logs", withAuth(read, h.ListLogs)...)
}

// requirePermission returns the permission check for a route, or nil when
// no role service is configured.
func requirePermission(cfg *RouterConfig, permission string) gin.HandlerFunc {
	if cfg.RoleService == nil {
		return nil
	}
	return middleware.RequireAuthorization(middleware.AuthorizationConfig{
		RequiredPermissions: []string{permission},
	}, cfg.RoleService)
}

func withAuth(check gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	if check == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{check, handler}
}
