package router

import (
	"menuReco/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/refresh", handler.RefreshToken)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.Me, authRequired)
}

func SetupMenuRoutes(api *echo.Group, handler *rest.MenuHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.Recommend)
	reco.GET("/debug", handler.Explain)
}

func SetupProfileRoutes(api *echo.Group, handler *rest.ProfileHandler, authRequired echo.MiddlewareFunc) {
	api.GET("/presets", handler.ListPresets)

	profile := api.Group("/profile", authRequired)
	profile.GET("", handler.Get)
	profile.PUT("/dishes/:id", handler.MarkDish)
	profile.PUT("/ingredients/:name", handler.MarkIngredient)
	profile.POST("/allergies/:name/toggle", handler.ToggleAllergy)
	profile.POST("/restrictions/:name/toggle", handler.ToggleRestriction)
	profile.POST("/presets/:name", handler.ApplyPreset)
	profile.DELETE("/presets/:name", handler.RemovePreset)
}

func SetupDishRoutes(api *echo.Group, handler *rest.DishHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	dishes := api.Group("/dishes")

	dishes.GET("", handler.GetAllDishes)
	dishes.GET("/:id", handler.GetDishByID)
	dishes.POST("", handler.CreateDish, authRequired, adminOnly)
	dishes.PUT("/:id", handler.UpdateDish, authRequired, adminOnly)
	dishes.DELETE("/:id", handler.DeleteDish, authRequired, adminOnly)
}

func SetupAvailabilityRoutes(api *echo.Group, handler *rest.AvailabilityHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	api.GET("/availability", handler.Get)
	api.PUT("/availability", handler.Set, authRequired, adminOnly)
}
