package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/auth/domain"
	"github.com/facturio/facturio/internal/auth/repository"
	"github.com/facturio/facturio/internal/auth/token"
	"github.com/facturio/facturio/internal/config"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	settingsrepository "github.com/facturio/facturio/internal/settings/repository"
	settingsservice "github.com/facturio/facturio/internal/settings/service"
	"github.com/facturio/facturio/pkg/db"
	"github.com/facturio/facturio/pkg/ownerctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, settingsdomain.Service) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.User{}, &settingsdomain.Settings{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	settingsSvc := settingsservice.New(settingsservice.Params{
		DB: conn, Log: log, GenID: node,
		Cfg:  config.Config{Defaults: config.BusinessDefaults{CurrencyCode: "USD", CurrencySymbol: "$"}},
		Repo: settingsrepository.Provide(),
	})

	svc := New(Params{
		DB: conn, Log: log, GenID: node,
		Repo:     repository.Provide(),
		Issuer:   token.NewIssuer("test-secret", time.Hour),
		Settings: settingsSvc,
	})
	return svc, settingsSvc
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, domain.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, first.User.Role)
	assert.NotEmpty(t, first.Token)

	second, err := svc.Register(ctx, domain.RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, second.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{
		Name: "Other Alice", Email: "alice@example.com", Password: "correct-horse",
	})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestRegisterClosed(t *testing.T) {
	svc, settingsSvc := newTestService(t)
	ctx := context.Background()

	admin, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	closed := false
	adminCtx := ownerctx.WithOwnerID(ctx, admin.User.ID)
	_, err = settingsSvc.Update(adminCtx, settingsdomain.UpdateSettingsRequest{AllowRegistration: &closed})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{
		Name: "Bob", Email: "bob@example.com", Password: "correct-horse",
	})
	assert.ErrorIs(t, err, domain.ErrRegistrationClosed)
}

func TestLoginAndVerify(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	user, err := svc.Verify(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, user.ID)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Verify(ctx, "garbage.token.value")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestDeactivatedUserCannotAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	deactivated := false
	_, err = svc.UpdateUser(ctx, domain.UpdateUserRequest{
		ID:        registered.User.ID.String(),
		Activated: &deactivated,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	_, err = svc.Verify(ctx, registered.Token)
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestAdminUserManagement(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	created, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Name: "Bob", Email: "bob@example.com", Password: "correct-horse", Role: domain.RoleUser,
	})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	name := "Robert"
	updated, err := svc.UpdateUser(ctx, domain.UpdateUserRequest{ID: created.ID.String(), Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)

	require.NoError(t, svc.DeleteUser(ctx, created.ID.String()))
	_, err = svc.GetUser(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.CreateUser(ctx, domain.CreateUserRequest{
		Name: "Carol", Email: "carol@example.com", Password: "short", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = svc.CreateUser(ctx, domain.CreateUserRequest{
		Name: "Carol", Email: "carol@example.com", Password: "correct-horse", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}
