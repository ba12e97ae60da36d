package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"imoveisBack/internal/models"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	sellerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleSeller))
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleAdmin))

	mux := pat.New()

	// Accounts
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/logout", authMiddleware.ThenFunc(app.userHandler.Logout))
	mux.Post("/user/request_reset", standardMiddleware.ThenFunc(app.userHandler.RequestPasswordReset))
	mux.Post("/user/verify_reset_code", standardMiddleware.ThenFunc(app.userHandler.VerifyResetCode))
	mux.Post("/user/reset_password", standardMiddleware.ThenFunc(app.userHandler.ResetPassword))
	mux.Post("/user/change_password", authMiddleware.ThenFunc(app.userHandler.UpdatePassword))
	mux.Get("/user", adminMiddleware.ThenFunc(app.userHandler.GetUsers))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Put("/user/:id", authMiddleware.ThenFunc(app.userHandler.UpdateUser))
	mux.Put("/user/:id/active", adminMiddleware.ThenFunc(app.userHandler.SetActive))

	// Listings
	mux.Post("/properties/filtered", standardMiddleware.ThenFunc(app.propertyHandler.GetFilteredProperties))
	mux.Get("/properties/pending", adminMiddleware.ThenFunc(app.propertyHandler.GetPendingProperties))
	mux.Get("/properties/history", adminMiddleware.ThenFunc(app.propertyHandler.GetHistory))
	mux.Get("/properties/user/:user_id", authMiddleware.ThenFunc(app.propertyHandler.GetPropertiesByUser))
	mux.Get("/properties/:id", standardMiddleware.ThenFunc(app.propertyHandler.GetPropertyByID))
	mux.Post("/property", sellerMiddleware.ThenFunc(app.propertyHandler.CreateProperty))
	mux.Put("/property/:id/status", adminMiddleware.ThenFunc(app.propertyHandler.Moderate))
	mux.Put("/property/:id", sellerMiddleware.ThenFunc(app.propertyHandler.UpdateProperty))
	mux.Del("/property/:id", authMiddleware.ThenFunc(app.propertyHandler.DeleteProperty))
	mux.Post("/property/status", sellerMiddleware.ThenFunc(app.propertyHandler.MarkTransacted))

	// Favorites
	mux.Post("/favorites/toggle", authMiddleware.ThenFunc(app.favoriteHandler.ToggleFavorite))
	mux.Get("/favorites/check/user/:user_id/property/:property_id", authMiddleware.ThenFunc(app.favoriteHandler.IsFavorite))
	mux.Get("/favorites/ids/:user_id", authMiddleware.ThenFunc(app.favoriteHandler.GetFavoriteIDsByUser))
	mux.Get("/favorites/:user_id", authMiddleware.ThenFunc(app.favoriteHandler.GetFavoritesByUser))

	// Live status updates for owner dashboards
	mux.Get("/ws", standardMiddleware.ThenFunc(app.WebSocketHandler))

	return standardMiddleware.Then(mux)
}
