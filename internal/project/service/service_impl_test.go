package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/facturio/facturio/internal/client/domain"
	clientrepository "github.com/facturio/facturio/internal/client/repository"
	clientservice "github.com/facturio/facturio/internal/client/service"
	"github.com/facturio/facturio/internal/config"
	"github.com/facturio/facturio/internal/project/domain"
	"github.com/facturio/facturio/internal/project/repository"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	settingsrepository "github.com/facturio/facturio/internal/settings/repository"
	settingsservice "github.com/facturio/facturio/internal/settings/service"
	"github.com/facturio/facturio/pkg/db"
	"github.com/facturio/facturio/pkg/ownerctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, clientdomain.Service) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&clientdomain.Client{}, &settingsdomain.Settings{}, &domain.Project{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	clientSvc := clientservice.New(clientservice.Params{
		DB: conn, Log: log, GenID: node, Repo: clientrepository.Provide(),
	})
	settingsSvc := settingsservice.New(settingsservice.Params{
		DB: conn, Log: log, GenID: node,
		Cfg: config.Config{Defaults: config.BusinessDefaults{
			CurrencyCode: "USD", CurrencySymbol: "$",
			Categories: []config.ActivityCategory{
				{Name: "Development", Code: "DEV"},
				{Name: "Consulting", Code: "CNS"},
			},
		}},
		Repo: settingsrepository.Provide(),
	})

	svc := New(Params{
		DB: conn, Log: log, GenID: node,
		Repo:     repository.Provide(),
		Clients:  clientSvc,
		Settings: settingsSvc,
	})
	return svc, clientSvc
}

func ownerContext(id int64) context.Context {
	return ownerctx.WithOwnerID(context.Background(), snowflake.ID(id))
}

func newClient(t *testing.T, svc clientdomain.Service, ctx context.Context) clientdomain.Client {
	t.Helper()
	client, err := svc.Create(ctx, clientdomain.CreateClientRequest{
		Name: "Acme", Email: "billing@acme.test",
	})
	require.NoError(t, err)
	return client
}

func TestCreateNormalizesCategory(t *testing.T) {
	svc, clients := newTestService(t)
	ctx := ownerContext(7)
	client := newClient(t, clients, ctx)

	project, err := svc.Create(ctx, domain.CreateProjectRequest{
		Title:    "Website rebuild",
		ClientID: client.ID.String(),
		Category: "  Development  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "development", project.Category)
	assert.Equal(t, domain.ProjectStatusPending, project.Status)

	// Codes match as well as names.
	byCode, err := svc.Create(ctx, domain.CreateProjectRequest{
		Title:    "Audit",
		ClientID: client.ID.String(),
		Category: "cns",
	})
	require.NoError(t, err)
	assert.Equal(t, "cns", byCode.Category)

	_, err = svc.Create(ctx, domain.CreateProjectRequest{
		Title:    "Mystery",
		ClientID: client.ID.String(),
		Category: "juggling",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestCreateValidatesInput(t *testing.T) {
	svc, clients := newTestService(t)
	ctx := ownerContext(7)
	client := newClient(t, clients, ctx)

	_, err := svc.Create(ctx, domain.CreateProjectRequest{
		ClientID: client.ID.String(), Category: "development",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.Create(ctx, domain.CreateProjectRequest{
		Title: "Website", ClientID: "999999", Category: "development",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidClient)

	_, err = svc.Create(ctx, domain.CreateProjectRequest{
		Title: "Website", ClientID: client.ID.String(), Category: "development",
		Status: domain.ProjectStatus("archived"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestCreateRejectsForeignClient(t *testing.T) {
	svc, clients := newTestService(t)
	client := newClient(t, clients, ownerContext(7))

	_, err := svc.Create(ownerContext(8), domain.CreateProjectRequest{
		Title: "Website", ClientID: client.ID.String(), Category: "development",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidClient)
}

func TestUpdateLeavesCategoryAlone(t *testing.T) {
	svc, clients := newTestService(t)
	ctx := ownerContext(7)
	client := newClient(t, clients, ctx)

	project, err := svc.Create(ctx, domain.CreateProjectRequest{
		Title: "Website", ClientID: client.ID.String(), Category: "development",
	})
	require.NoError(t, err)

	title := "Website v2"
	status := domain.ProjectStatusInProgress
	updated, err := svc.Update(ctx, domain.UpdateProjectRequest{
		ID: project.ID.String(), Title: &title, Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Website v2", updated.Title)
	assert.Equal(t, domain.ProjectStatusInProgress, updated.Status)
	assert.Equal(t, "development", updated.Category)

	bad := domain.ProjectStatus("archived")
	_, err = svc.Update(ctx, domain.UpdateProjectRequest{ID: project.ID.String(), Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestListFiltersByStatusAndClient(t *testing.T) {
	svc, clients := newTestService(t)
	ctx := ownerContext(7)
	first := newClient(t, clients, ctx)
	second, err := clients.Create(ctx, clientdomain.CreateClientRequest{
		Name: "Globex", Email: "billing@globex.test",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateProjectRequest{
		Title: "Website", ClientID: first.ID.String(), Category: "development",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProjectRequest{
		Title: "Audit", ClientID: second.ID.String(), Category: "consulting",
		Status: domain.ProjectStatusInProgress,
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, domain.ListProjectRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byStatus, err := svc.List(ctx, domain.ListProjectRequest{Status: domain.ProjectStatusInProgress})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Audit", byStatus[0].Title)

	byClient, err := svc.List(ctx, domain.ListProjectRequest{ClientID: first.ID.String()})
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, "Website", byClient[0].Title)

	other, err := svc.List(ownerContext(8), domain.ListProjectRequest{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc, clients := newTestService(t)
	ctx := ownerContext(7)
	client := newClient(t, clients, ctx)

	project, err := svc.Create(ctx, domain.CreateProjectRequest{
		Title: "Website", ClientID: client.ID.String(), Category: "development",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ownerContext(8), project.ID.String()), domain.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, project.ID.String()))

	_, err = svc.GetByID(ctx, project.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
