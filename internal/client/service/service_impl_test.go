package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/client/domain"
	"github.com/facturio/facturio/internal/client/repository"
	"github.com/facturio/facturio/pkg/db"
	"github.com/facturio/facturio/pkg/ownerctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Client{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB: conn, Log: zap.NewNop(), GenID: node,
		Repo: repository.Provide(),
	})
}

func ownerContext(id int64) context.Context {
	return ownerctx.WithOwnerID(context.Background(), snowflake.ID(id))
}

func TestCreateValidatesInput(t *testing.T) {
	svc := newTestService(t)
	ctx := ownerContext(7)

	_, err := svc.Create(context.Background(), domain.CreateClientRequest{
		Name: "Acme", Email: "billing@acme.test",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOwner)

	_, err = svc.Create(ctx, domain.CreateClientRequest{Email: "billing@acme.test"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateClientRequest{Name: "Acme", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	client, err := svc.Create(ctx, domain.CreateClientRequest{
		Name:  "  Acme  ",
		Email: "Billing@Acme.Test",
		Address: domain.Address{
			Street: "1 Main St", City: "Casablanca", Country: "MA",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", client.Name)
	assert.Equal(t, "billing@acme.test", client.Email)
	assert.Equal(t, "Casablanca", client.Address.Data().City)
}

func TestGetUpdateDeleteRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := ownerContext(7)

	created, err := svc.Create(ctx, domain.CreateClientRequest{
		Name: "Acme", Email: "billing@acme.test", Company: "Acme SARL",
	})
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	name := "Acme Corp"
	ice := "00456789"
	updated, err := svc.Update(ctx, domain.UpdateClientRequest{
		ID: created.ID.String(), Name: &name, ICE: &ice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.Equal(t, "00456789", updated.ICE)
	// Untouched fields survive the patch.
	assert.Equal(t, "Acme SARL", updated.Company)

	empty := " "
	_, err = svc.Update(ctx, domain.UpdateClientRequest{ID: created.ID.String(), Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	_, err = svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID.String()), domain.ErrNotFound)
}

func TestGetRejectsMalformedID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(ownerContext(7), "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestOwnerIsolation(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(ownerContext(7), domain.CreateClientRequest{
		Name: "Acme", Email: "billing@acme.test",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ownerContext(8), created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ownerContext(8), created.ID.String()), domain.ErrNotFound)

	resp, err := svc.List(ownerContext(8), domain.ListClientRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Clients)
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc := newTestService(t)
	ctx := ownerContext(7)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, domain.CreateClientRequest{
			Name:  fmt.Sprintf("Client %d", i),
			Email: fmt.Sprintf("client%d@acme.test", i),
		})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, domain.ListClientRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, first.Clients, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(ctx, domain.ListClientRequest{PageSize: 2, PageToken: first.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, second.Clients, 2)
	assert.True(t, second.HasMore)

	third, err := svc.List(ctx, domain.ListClientRequest{PageSize: 2, PageToken: second.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, third.Clients, 1)
	assert.False(t, third.HasMore)

	seen := map[snowflake.ID]bool{}
	for _, page := range [][]domain.Client{first.Clients, second.Clients, third.Clients} {
		for _, client := range page {
			assert.False(t, seen[client.ID])
			seen[client.ID] = true
		}
	}
	assert.Len(t, seen, 5)

	filtered, err := svc.List(ctx, domain.ListClientRequest{Email: "client3@acme.test"})
	require.NoError(t, err)
	require.Len(t, filtered.Clients, 1)
	assert.Equal(t, "Client 3", filtered.Clients[0].Name)
}
