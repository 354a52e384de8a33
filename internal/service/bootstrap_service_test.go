package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"craftshop-admin/internal/model"
)

func newBootstrapService(store *MockStore) *BootstrapService {
	return NewBootstrapService(store, store, store, NewPasswordHasher())
}

func TestEnsureCreatesMissingOperator(t *testing.T) {
	store := &MockStore{}
	store.On("CredentialByUsername", mock.Anything, "admin").Return(model.Credential{}, model.ErrCredentialNotFound)
	store.On("CreateUserWithCredential", mock.Anything,
		mock.MatchedBy(func(u model.User) bool { return u.Scope == model.ScopeOperator }),
		mock.MatchedBy(func(c model.Credential) bool {
			return c.Username == "admin" && NewPasswordHasher().Verify(c.Password, "changeme")
		}),
	).Return(model.User{ID: 1}, model.Credential{}, nil)

	err := newBootstrapService(store).Ensure(context.Background(), []SeedOperator{{
		Name:     "Admin",
		Email:    "admin@example.com",
		Username: "admin",
		Password: "changeme",
	}}, nil)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestEnsureSkipsExistingOperator(t *testing.T) {
	store := &MockStore{}
	store.On("CredentialByUsername", mock.Anything, "admin").Return(model.Credential{Username: "admin"}, nil)

	err := newBootstrapService(store).Ensure(context.Background(), []SeedOperator{{Username: "admin", Password: "changeme"}}, nil)
	require.NoError(t, err)
	store.AssertNotCalled(t, "CreateUserWithCredential", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureCreatesMissingClientWithDefaults(t *testing.T) {
	store := &MockStore{}
	store.On("ClientByClientID", mock.Anything, "shop").Return(model.Client{}, model.ErrClientNotFound)
	store.On("CreateClient", mock.Anything, mock.MatchedBy(func(c model.Client) bool {
		return c.ID != "" &&
			c.ClientID == "shop" &&
			c.Scope == model.ScopeCustomer &&
			c.AccessTokenLifetime == 3600 &&
			c.RefreshTokenLifetime == 7200 &&
			len(c.Grants) == 2
	})).Return(model.Client{}, nil)

	err := newBootstrapService(store).Ensure(context.Background(), nil, []SeedClient{{
		Name:         "Shop Console",
		ClientID:     "shop",
		ClientSecret: "s3cr3t",
		Scope:        "customer",
	}})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestEnsureSkipsExistingClient(t *testing.T) {
	store := &MockStore{}
	store.On("ClientByClientID", mock.Anything, "shop").Return(testClient(), nil)

	err := newBootstrapService(store).Ensure(context.Background(), nil, []SeedClient{{ClientID: "shop", Scope: "customer"}})
	require.NoError(t, err)
	store.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything)
}

func TestEnsureRejectsInvalidSeedScope(t *testing.T) {
	store := &MockStore{}
	store.On("ClientByClientID", mock.Anything, "shop").Return(model.Client{}, model.ErrClientNotFound)

	err := newBootstrapService(store).Ensure(context.Background(), nil, []SeedClient{{ClientID: "shop", Scope: "galactic"}})
	assert.ErrorIs(t, err, model.ErrInvalidScope)
}
