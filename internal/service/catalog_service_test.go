package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"craftshop-admin/internal/model"
)

// MockCatalogStore implements the three catalog store interfaces.
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) CategoryByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *MockCatalogStore) ListCategories(ctx context.Context, page int, limit int) ([]model.Category, int, error) {
	args := m.Called(ctx, page, limit)
	var categories []model.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]model.Category)
	}
	return categories, args.Int(1), args.Error(2)
}

func (m *MockCatalogStore) CreateCategory(ctx context.Context, category model.Category) (model.Category, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *MockCatalogStore) UpdateCategory(ctx context.Context, category model.Category) (model.Category, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *MockCatalogStore) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogStore) CraftShopByID(ctx context.Context, id string) (model.CraftShop, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.CraftShop), args.Error(1)
}

func (m *MockCatalogStore) ListCraftShops(ctx context.Context, page int, limit int) ([]model.CraftShop, int, error) {
	args := m.Called(ctx, page, limit)
	var shops []model.CraftShop
	if args.Get(0) != nil {
		shops = args.Get(0).([]model.CraftShop)
	}
	return shops, args.Int(1), args.Error(2)
}

func (m *MockCatalogStore) CreateCraftShop(ctx context.Context, shop model.CraftShop) (model.CraftShop, error) {
	args := m.Called(ctx, shop)
	return args.Get(0).(model.CraftShop), args.Error(1)
}

func (m *MockCatalogStore) UpdateCraftShop(ctx context.Context, shop model.CraftShop) (model.CraftShop, error) {
	args := m.Called(ctx, shop)
	return args.Get(0).(model.CraftShop), args.Error(1)
}

func (m *MockCatalogStore) DeleteCraftShop(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogStore) ItemByID(ctx context.Context, id string) (model.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *MockCatalogStore) ListItems(ctx context.Context, itemType model.ItemType, showDisabled bool, page int, limit int) ([]model.Item, int, error) {
	args := m.Called(ctx, itemType, showDisabled, page, limit)
	var items []model.Item
	if args.Get(0) != nil {
		items = args.Get(0).([]model.Item)
	}
	return items, args.Int(1), args.Error(2)
}

func (m *MockCatalogStore) CreateItem(ctx context.Context, item model.Item) (model.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *MockCatalogStore) UpdateItem(ctx context.Context, item model.Item) (model.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *MockCatalogStore) DeleteItem(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newCatalogService(store *MockCatalogStore) *CatalogService {
	return NewCatalogService(store, store, store)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	svc := newCatalogService(&MockCatalogStore{})

	_, err := svc.CreateCategory(context.Background(), model.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestUpdateCategoryRejectsEmptyChange(t *testing.T) {
	svc := newCatalogService(&MockCatalogStore{})

	_, err := svc.UpdateCategory(context.Background(), 1, model.UpdateCategoryRequest{})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestUpdateCategoryPartial(t *testing.T) {
	store := &MockCatalogStore{}
	existing := model.Category{ID: 1, Name: "Rings", Depth: 0}
	updated := existing
	updated.Depth = 2

	store.On("CategoryByID", mock.Anything, int64(1)).Return(existing, nil)
	store.On("UpdateCategory", mock.Anything, updated).Return(updated, nil)

	depth := 2
	got, err := newCatalogService(store).UpdateCategory(context.Background(), 1, model.UpdateCategoryRequest{Depth: &depth})
	require.NoError(t, err)
	assert.Equal(t, "Rings", got.Name)
	assert.Equal(t, 2, got.Depth)
}

func TestCreateCraftShopAssignsID(t *testing.T) {
	store := &MockCatalogStore{}
	store.On("CreateCraftShop", mock.Anything, mock.MatchedBy(func(s model.CraftShop) bool {
		return s.ID != "" && s.Name == "Atelier Han"
	})).Return(model.CraftShop{ID: "generated", Name: "Atelier Han"}, nil)

	_, err := newCatalogService(store).CreateCraftShop(context.Background(), model.CreateCraftShopRequest{Name: "Atelier Han"})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdateCraftShopRejectsEmptyChange(t *testing.T) {
	store := &MockCatalogStore{}
	store.On("CraftShopByID", mock.Anything, "shop-1").Return(model.CraftShop{ID: "shop-1"}, nil)

	_, err := newCatalogService(store).UpdateCraftShop(context.Background(), "shop-1", model.UpdateCraftShopRequest{})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestCreateItemValidatesReferences(t *testing.T) {
	store := &MockCatalogStore{}
	categoryID := int64(9)
	store.On("CategoryByID", mock.Anything, int64(9)).Return(model.Category{}, model.ErrNotFound)

	_, err := newCatalogService(store).CreateItem(context.Background(), model.CreateItemRequest{
		Type:       "product",
		Name:       "Silver Ring",
		CategoryID: &categoryID,
	})
	assert.ErrorIs(t, err, model.ErrNotFound)
	store.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestCreateItemRejectsBadType(t *testing.T) {
	svc := newCatalogService(&MockCatalogStore{})

	_, err := svc.CreateItem(context.Background(), model.CreateItemRequest{Type: "gadget", Name: "Thing"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestListItemsRejectsBadType(t *testing.T) {
	svc := newCatalogService(&MockCatalogStore{})

	_, _, err := svc.ListItems(context.Background(), "gadget", false, 1, 20)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestUpdateItemToggleDisable(t *testing.T) {
	store := &MockCatalogStore{}
	existing := model.Item{ID: "item-1", Type: model.ItemTypeProduct, Name: "Silver Ring"}
	updated := existing
	updated.Disable = true

	store.On("ItemByID", mock.Anything, "item-1").Return(existing, nil)
	store.On("UpdateItem", mock.Anything, updated).Return(updated, nil)

	disable := true
	got, err := newCatalogService(store).UpdateItem(context.Background(), "item-1", model.UpdateItemRequest{Disable: &disable})
	require.NoError(t, err)
	assert.True(t, got.Disable)
}
