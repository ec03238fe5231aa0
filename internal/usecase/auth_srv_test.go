package usecase

import (
	"context"
	"testing"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/internal/dto/request"
	"storage-marketplace/pkg/fault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest() *request.RegisterRequest {
	return &request.RegisterRequest{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "hunter2passwd",
		Role:        "seeker",
		StreetName:  "Keizersgracht",
		HouseNumber: "12",
		City:        "Amsterdam",
		PostalCode:  "1015CS",
	}
}

func TestRegisterCreatesUserWithSession(t *testing.T) {
	f := newFixture()
	srv := f.authService()

	resp, err := srv.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, entity.RoleSeeker, resp.Role)
	assert.False(t, resp.IsVerified)
	assert.NotEmpty(t, resp.Token)

	user, err := f.user.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "hunter2passwd", user.PasswordHash)
	assert.Equal(t, 1, f.address.created)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture()
	srv := f.authService()

	_, err := srv.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	second := registerRequest()
	second.Username = "bob"
	_, err = srv.Register(context.Background(), second)
	require.Error(t, err)
	assert.Equal(t, fault.Conflict, fault.KindOf(err))
	assert.Equal(t, "Email already registered", fault.MessageOf(err))
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	f := newFixture()
	srv := f.authService()

	_, err := srv.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	second := registerRequest()
	second.Email = "other@example.com"
	_, err = srv.Register(context.Background(), second)
	require.Error(t, err)
	assert.Equal(t, fault.Conflict, fault.KindOf(err))
	assert.Equal(t, "Username already taken", fault.MessageOf(err))
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	f := newFixture()
	srv := f.authService()

	req := registerRequest()
	req.Password = "allletters"
	_, err := srv.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
}

func TestRegisterSharesExistingAddress(t *testing.T) {
	f := newFixture()
	srv := f.authService()

	first, err := srv.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	second := registerRequest()
	second.Username = "bob"
	second.Email = "bob@example.com"
	_, err = srv.Register(context.Background(), second)
	require.NoError(t, err)

	// Same street, city and postal code resolve to one address row
	assert.Equal(t, 1, f.address.created)

	firstUser, _ := f.user.FindByEmail(context.Background(), first.Email)
	secondUser, _ := f.user.FindByEmail(context.Background(), "bob@example.com")
	assert.Equal(t, firstUser.AddressID, secondUser.AddressID)
}

func TestRegisterRollsBackOnUserInsertFailure(t *testing.T) {
	f := newFixture()
	f.user.createErr = assert.AnError
	srv := f.authService()

	_, err := srv.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.Equal(t, fault.Storage, fault.KindOf(err))

	// The address insert staged in the same transaction is gone too
	assert.Equal(t, 0, f.address.created)
}

func TestLoginWithEmailIdentifier(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.authService()

	resp, err := srv.Login(context.Background(), &request.LoginRequest{
		Identifier: "alice@example.com",
		Password:   "hunter2passwd",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWithUsernameIdentifier(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.authService()

	resp, err := srv.Login(context.Background(), &request.LoginRequest{
		Identifier: "alice",
		Password:   "hunter2passwd",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.UserID)
}

// An identifier that looks almost like an email but fails the shape check
// goes down the username path.
func TestLoginMalformedEmailFallsBackToUsername(t *testing.T) {
	f := newFixture()
	f.seedUser("alice@corp", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.authService()

	resp, err := srv.Login(context.Background(), &request.LoginRequest{
		Identifier: "alice@corp",
		Password:   "hunter2passwd",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@corp", resp.Username)
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	f := newFixture()
	f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.authService()

	// Unknown user and wrong password produce the same kind and message
	_, unknownErr := srv.Login(context.Background(), &request.LoginRequest{
		Identifier: "nobody@example.com",
		Password:   "hunter2passwd",
	})
	_, wrongPassErr := srv.Login(context.Background(), &request.LoginRequest{
		Identifier: "alice@example.com",
		Password:   "wrongpassword1",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.Equal(t, fault.InvalidCredentials, fault.KindOf(unknownErr))
	assert.Equal(t, fault.InvalidCredentials, fault.KindOf(wrongPassErr))
	assert.Equal(t, fault.MessageOf(unknownErr), fault.MessageOf(wrongPassErr))
}

func TestLoginRecordsLastLogin(t *testing.T) {
	f := newFixture()
	user := f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	require.Nil(t, user.LastLoginAt)
	srv := f.authService()

	_, err := srv.Login(context.Background(), &request.LoginRequest{
		Identifier: "alice",
		Password:   "hunter2passwd",
	})
	require.NoError(t, err)

	stored, _ := f.user.FindByID(context.Background(), user.ID)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newFixture()
	f.seedUser("alice", "alice@example.com", "hunter2passwd", entity.RoleSeeker)
	srv := f.authService()

	resp, err := srv.Login(context.Background(), &request.LoginRequest{
		Identifier: "alice",
		Password:   "hunter2passwd",
	})
	require.NoError(t, err)

	require.NoError(t, srv.Logout(context.Background(), resp.Token))

	session, err := f.session.FindValidSession(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestLogoutRejectsMalformedToken(t *testing.T) {
	f := newFixture()
	srv := f.authService()

	err := srv.Logout(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
}
