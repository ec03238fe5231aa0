package wire

import (
	"storage-marketplace/internal/adaptor"
	"storage-marketplace/internal/data/repository"
	"storage-marketplace/pkg/middleware"
	"storage-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes with role-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED USER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/user/profile - Own profile including address
		r.Get("/api/user/profile", userHandler.GetProfile)

		// PUT /api/user/password - Change password (reconfirms current one)
		r.Put("/api/user/password", userHandler.UpdatePassword)

		// PUT /api/user/details - Update username, email or address
		r.Put("/api/user/details", userHandler.UpdateDetails)

		// PUT /api/user/picture - Update profile picture URL
		r.Put("/api/user/picture", userHandler.UpdateProfilePicture)
	})

	// ==================== ADMIN ROUTES ====================
	// Admin user lookup and verification - requires both authentication AND admin role
	r.With(
		middleware.AuthSession(repo.Session, repo.User, log), // Check valid session
		middleware.Admin(repo.User, log),                     // Check admin role
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/{id}", userHandler.GetUserByID)             // GET /api/admin/users/{user-id}
		r.Get("/username/{username}", userHandler.GetUserByUsername)
		r.Get("/email/{email}", userHandler.GetUserByEmail)
		r.Put("/verification", userHandler.UpdateVerification) // PUT /api/admin/users/verification
	})
}
