package usecase

import (
	"context"
	"testing"
	"time"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/internal/dto/request"
	"storage-marketplace/pkg/fault"
	"storage-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileIncludesAddress(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	address := &entity.Address{
		BaseSimple: entity.BaseSimple{ID: user.AddressID, CreatedAt: time.Now()},
		StreetName: "12 Keizersgracht",
		City:       "Amsterdam",
		PostalCode: "1015CS",
	}
	f.address.byID[address.ID] = address
	srv := f.userService()

	profile, err := srv.GetProfile(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	require.NotNil(t, profile.Address)
	assert.Equal(t, "Amsterdam", profile.Address.City)
}

func TestGetUserByIDNotFound(t *testing.T) {
	f := newFixture()
	srv := f.userService()

	_, err := srv.GetUserByID(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, fault.NotFound, fault.KindOf(err))
}

func TestGetUserByIDMalformed(t *testing.T) {
	f := newFixture()
	srv := f.userService()

	_, err := srv.GetUserByID(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
}

func TestUpdatePasswordRequiresReconfirmation(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.userService()

	err := srv.UpdatePassword(context.Background(), user.ID.String(), &request.UpdatePasswordRequest{
		CurrentPassword: "wrongpassword1",
		NewPassword:     "newsecret99",
	})
	require.Error(t, err)
	assert.Equal(t, fault.InvalidCredentials, fault.KindOf(err))

	// Stored hash untouched
	stored, _ := f.user.FindByID(context.Background(), user.ID)
	assert.True(t, utils.CheckPasswordHash("hunter2passwd", stored.PasswordHash))
}

func TestUpdatePasswordStoresNewHash(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.userService()

	err := srv.UpdatePassword(context.Background(), user.ID.String(), &request.UpdatePasswordRequest{
		CurrentPassword: "hunter2passwd",
		NewPassword:     "newsecret99",
	})
	require.NoError(t, err)

	stored, _ := f.user.FindByID(context.Background(), user.ID)
	assert.True(t, utils.CheckPasswordHash("newsecret99", stored.PasswordHash))
	assert.False(t, utils.CheckPasswordHash("hunter2passwd", stored.PasswordHash))
}

func TestUpdateVerificationStatus(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleProvider)
	srv := f.userService()

	err := srv.UpdateVerificationStatus(context.Background(), &request.UpdateVerificationRequest{
		UserID:     user.ID.String(),
		IsVerified: true,
	})
	require.NoError(t, err)

	stored, _ := f.user.FindByID(context.Background(), user.ID)
	assert.True(t, stored.IsVerified)
}

func TestUpdateUserDetailsRejectsPartialAddress(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.userService()

	_, err := srv.UpdateUserDetails(context.Background(), user.ID.String(), &request.UpdateUserDetailsRequest{
		StreetName: "Prinsengracht",
	})
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
}

func TestUpdateUserDetailsMovesAddress(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	oldAddressID := user.AddressID
	srv := f.userService()

	resp, err := srv.UpdateUserDetails(context.Background(), user.ID.String(), &request.UpdateUserDetailsRequest{
		StreetName:  "Prinsengracht",
		HouseNumber: "7",
		City:        "Amsterdam",
		PostalCode:  "1015DK",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)

	stored, _ := f.user.FindByID(context.Background(), user.ID)
	assert.NotEqual(t, oldAddressID, stored.AddressID)
	assert.Equal(t, 1, f.address.created)
}

func TestUpdateUserDetailsRejectsTakenEmail(t *testing.T) {
	f := newFixture()
	f.seedUser("bob", "bob@example.com", "hunter2passwd", entity.RoleSeeker)
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.userService()

	_, err := srv.UpdateUserDetails(context.Background(), user.ID.String(), &request.UpdateUserDetailsRequest{
		Email: "bob@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, fault.Conflict, fault.KindOf(err))
}

func TestUpdateUserDetailsRejectsTakenUsername(t *testing.T) {
	f := newFixture()
	f.seedUser("bob", "bob@example.com", "hunter2passwd", entity.RoleSeeker)
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.userService()

	_, err := srv.UpdateUserDetails(context.Background(), user.ID.String(), &request.UpdateUserDetailsRequest{
		Username: "bob",
	})
	require.Error(t, err)
	assert.Equal(t, fault.Conflict, fault.KindOf(err))
}

func TestUpdateUserDetailsKeepsUnchangedFields(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.userService()

	resp, err := srv.UpdateUserDetails(context.Background(), user.ID.String(), &request.UpdateUserDetailsRequest{
		Username: "alice2",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)

	stored, _ := f.user.FindByID(context.Background(), user.ID)
	assert.Equal(t, user.AddressID, stored.AddressID)
}

func TestUpdateProfilePicture(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.userService()

	err := srv.UpdateProfilePicture(context.Background(), user.ID.String(), &request.UpdateProfilePictureRequest{
		PictureURL: "https://cdn.example.com/alice.png",
	})
	require.NoError(t, err)

	stored, _ := f.user.FindByID(context.Background(), user.ID)
	require.NotNil(t, stored.ProfilePictureURL)
	assert.Equal(t, "https://cdn.example.com/alice.png", *stored.ProfilePictureURL)
}
