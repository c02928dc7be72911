package router

import (
	"net/http"

	"echotrace-api/handler"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter builds the route table and wraps it in the auth filter so the
// filter runs exactly once per request, before any business handler.
func NewRouter(
	authMiddleware *handler.AuthMiddleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	logHandler *handler.LogHandler,
	reminderHandler *handler.ReminderHandler,
	uploadDir string,
) http.Handler {
	mux := http.NewServeMux()

	// Public endpoints.
	mux.Handle("POST /api/auth/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /api/auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /api/auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("GET /reminders/subscribe", handler.ErrorHandlingMiddleware(reminderHandler.Subscribe))
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	// Protected endpoints.
	mux.Handle("GET /api/users/me", handler.ErrorHandlingMiddleware(userHandler.GetProfile))
	mux.Handle("PUT /api/users/me", handler.ErrorHandlingMiddleware(userHandler.UpdateProfile))
	mux.Handle("PUT /api/users/me/password", handler.ErrorHandlingMiddleware(userHandler.UpdatePassword))

	mux.Handle("POST /api/logs", handler.ErrorHandlingMiddleware(logHandler.CreateLog))
	mux.Handle("GET /api/logs", handler.ErrorHandlingMiddleware(logHandler.ListLogs))
	mux.Handle("GET /api/logs/filter", handler.ErrorHandlingMiddleware(logHandler.FilterLogs))
	mux.Handle("GET /api/logs/id/{id}", handler.ErrorHandlingMiddleware(logHandler.GetLogByID))
	mux.Handle("PATCH /api/logs/{id}", handler.ErrorHandlingMiddleware(logHandler.UpdateLog))
	mux.Handle("DELETE /api/logs/{id}", handler.ErrorHandlingMiddleware(logHandler.DeleteLog))

	return authMiddleware.Wrap(mux)
}
