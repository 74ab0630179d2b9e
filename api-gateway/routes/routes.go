package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/polybites/polybites-backend/api-gateway/config"
	"github.com/polybites/polybites-backend/api-gateway/middleware"
	"github.com/polybites/polybites-backend/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix      string
	ServiceName string
	Description string
	GuardWrites bool // Requires a valid token for non-GET requests
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	{
		Prefix:      "/api/food-reviews",
		ServiceName: "backend",
		Description: "Food review CRUD, likes and stats",
		GuardWrites: true,
	},
	{
		Prefix:      "/api/restaurants",
		ServiceName: "backend",
		Description: "Restaurant catalog and aggregates",
		GuardWrites: false,
	},
	{
		Prefix:      "/api/foods",
		ServiceName: "backend",
		Description: "Menu items",
		GuardWrites: false,
	},
	{
		Prefix:      "/api/profiles",
		ServiceName: "backend",
		Description: "User profiles",
		GuardWrites: true,
	},
	{
		Prefix:      "/health",
		ServiceName: "backend",
		Description: "Backend health check",
		GuardWrites: false,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig) {
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Liveness probe for the gateway itself
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "PolyBites API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler
	if route.GuardWrites {
		middlewares = append(middlewares, middleware.MutatingAuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
