package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRoutes are mounted under /api without authentication.
type PublicRoutes interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRoutes are mounted under /api behind JWTAuth and act on the
// household of the token.
type ProtectedRoutes interface {
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

var (
	_ PublicRoutes    = (*AuthRoutes)(nil)
	_ ProtectedRoutes = (*AuthRoutes)(nil)
	_ ProtectedRoutes = (*PantryRoutes)(nil)
	_ ProtectedRoutes = (*AdminRoutes)(nil)
)

// protectedModules lists the household route sets served for cfg. Pantry
// routes need a handler and admin routes an AdminService.
func protectedModules(auth *AuthRoutes, handler *Handler, cfg *RouterConfig) []ProtectedRoutes {
	modules := []ProtectedRoutes{auth}
	if handler != nil {
		modules = append(modules, NewPantryRoutes(handler))
	}
	if cfg.AdminService != nil {
		modules = append(modules, NewAdminRoutes(cfg.AdminService))
	}
	return modules
}

// registerAPIRoutes mounts the login routes and every protected module.
func registerAPIRoutes(api *gin.RouterGroup, handler *Handler, cfg *RouterConfig) {
	auth := NewAuthRoutes(cfg.AuthService)
	auth.RegisterPublicRoutes(api)

	protected := auth.GetProtectedGroup(api, cfg)
	for _, module := range protectedModules(auth, handler, cfg) {
		module.RegisterProtectedRoutes(protected, cfg)
	}
}
