package api

import "github.com/labstack/echo/v4"

func registerRoutes(e *echo.Echo, h *Handler, limiter echo.MiddlewareFunc) {
	e.GET("/health", Health)

	api := e.Group("/api/v1", limiter)
	api.GET("/norms", h.Norms)
	api.POST("/protected-budget", h.ProtectedBudget)
	api.POST("/payoff", h.Payoff)
	api.POST("/allocation", h.Allocation)
	api.POST("/plan", h.Plan)
	api.POST("/required-capacity", h.RequiredCapacity)
}
