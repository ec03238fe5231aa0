package usecase

import (
	"context"
	"time"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/internal/data/repository"
	"storage-marketplace/internal/dto/request"
	"storage-marketplace/internal/dto/response"
	"storage-marketplace/pkg/database"
	"storage-marketplace/pkg/fault"
	"storage-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserProfileResponse, error)
	GetUserByID(ctx context.Context, id string) (*response.UserResponse, error)
	GetUserByUsername(ctx context.Context, username string) (*response.UserResponse, error)
	GetUserByEmail(ctx context.Context, email string) (*response.UserResponse, error)
	UpdatePassword(ctx context.Context, userID string, req *request.UpdatePasswordRequest) error
	UpdateVerificationStatus(ctx context.Context, req *request.UpdateVerificationRequest) error
	UpdateUserDetails(ctx context.Context, userID string, req *request.UpdateUserDetailsRequest) (*response.UserResponse, error)
	UpdateProfilePicture(ctx context.Context, userID string, req *request.UpdateProfilePictureRequest) error
	UpdateLastLogin(ctx context.Context, userID string) error
}

type userService struct {
	db     database.PgxIface
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewUserService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) UserService {
	return &userService{
		db:     db,
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*response.UserProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	address, err := s.repo.Address.FindByID(ctx, user.AddressID)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to load profile", err)
	}

	return &response.UserProfileResponse{
		UserResponse: response.UserToResponse(user),
		Address:      response.AddressToResponse(address),
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*response.UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to find user", err)
	}
	if user == nil {
		return nil, fault.New(fault.NotFound, "User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to find user", err)
	}
	if user == nil {
		return nil, fault.New(fault.NotFound, "User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdatePassword requires reconfirmation with the current password before
// the new hash is stored.
func (s *userService) UpdatePassword(ctx context.Context, userID string, req *request.UpdatePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update password validation failed", zap.Any("errors", errs))
		return fault.Newf(fault.Validation, "Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		s.log.Warn("Password reconfirmation failed", zap.String("user_id", user.ID.String()))
		return fault.New(fault.InvalidCredentials, "Invalid credentials")
	}

	newHash, err := utils.HashPassword(req.NewPassword, s.config.Auth.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fault.Wrap(fault.Storage, "Failed to process password", err)
	}

	if err := s.repo.User.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return fault.Wrap(fault.Storage, "Failed to update password", err)
	}

	s.log.Info("Password updated", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *userService) UpdateVerificationStatus(ctx context.Context, req *request.UpdateVerificationRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fault.Newf(fault.Validation, "Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, req.UserID)
	if err != nil {
		return err
	}

	if err := s.repo.User.UpdateVerificationStatus(ctx, user.ID, req.IsVerified); err != nil {
		return fault.Wrap(fault.Storage, "Failed to update verification status", err)
	}

	s.log.Info("Verification status updated",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_verified", req.IsVerified))
	return nil
}

// UpdateUserDetails re-resolves the address inside the same transaction as
// the user update whenever any address field changes, so a half-moved user
// is never observable.
func (s *userService) UpdateUserDetails(ctx context.Context, userID string, req *request.UpdateUserDetailsRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update details validation failed", zap.Any("errors", errs))
		return nil, fault.Newf(fault.Validation, "Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Uniqueness checks only for fields that actually change
	if req.Email != "" && req.Email != user.Email {
		existing, err := s.repo.User.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, fault.Wrap(fault.Storage, "Failed to check email", err)
		}
		if existing != nil {
			return nil, fault.New(fault.Conflict, "Email already registered")
		}
		user.Email = req.Email
	}
	if req.Username != "" && req.Username != user.Username {
		existing, err := s.repo.User.FindByUsername(ctx, req.Username)
		if err != nil {
			return nil, fault.Wrap(fault.Storage, "Failed to check username", err)
		}
		if existing != nil {
			return nil, fault.New(fault.Conflict, "Username already taken")
		}
		user.Username = req.Username
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to update details", err)
	}
	defer tx.Rollback(ctx)

	if req.StreetName != "" || req.City != "" || req.PostalCode != "" {
		if req.StreetName == "" || req.City == "" || req.PostalCode == "" {
			return nil, fault.New(fault.Validation, "Street, city and postal code must be updated together")
		}

		street := utils.NormalizeStreet(req.StreetName, req.HouseNumber)
		addressID, err := s.repo.Address.GetOrCreate(ctx, tx, street, req.City, req.PostalCode)
		if err != nil {
			return nil, fault.Wrap(fault.Storage, "Failed to update details", err)
		}
		user.AddressID = addressID
	}

	user.UpdatedAt = time.Now()
	if err := s.repo.User.UpdateDetails(ctx, tx, user); err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to update details", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to update details", err)
	}

	s.log.Info("User details updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfilePicture(ctx context.Context, userID string, req *request.UpdateProfilePictureRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fault.Newf(fault.Validation, "Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.User.UpdateProfilePicture(ctx, user.ID, req.PictureURL); err != nil {
		return fault.Wrap(fault.Storage, "Failed to update profile picture", err)
	}

	s.log.Info("Profile picture updated", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *userService) UpdateLastLogin(ctx context.Context, userID string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		return fault.Wrap(fault.Storage, "Failed to update last login", err)
	}

	return nil
}

func (s *userService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fault.Newf(fault.Validation, "Invalid user ID format %s", userID)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to find user", err)
	}
	if user == nil {
		return nil, fault.New(fault.NotFound, "User not found")
	}

	return user, nil
}
