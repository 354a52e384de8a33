package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"craftshop-admin/internal/model"
)

type CategoryStore interface {
	CategoryByID(ctx context.Context, id int64) (model.Category, error)
	ListCategories(ctx context.Context, page int, limit int) ([]model.Category, int, error)
	CreateCategory(ctx context.Context, category model.Category) (model.Category, error)
	UpdateCategory(ctx context.Context, category model.Category) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type CraftShopStore interface {
	CraftShopByID(ctx context.Context, id string) (model.CraftShop, error)
	ListCraftShops(ctx context.Context, page int, limit int) ([]model.CraftShop, int, error)
	CreateCraftShop(ctx context.Context, shop model.CraftShop) (model.CraftShop, error)
	UpdateCraftShop(ctx context.Context, shop model.CraftShop) (model.CraftShop, error)
	DeleteCraftShop(ctx context.Context, id string) error
}

type ItemStore interface {
	ItemByID(ctx context.Context, id string) (model.Item, error)
	ListItems(ctx context.Context, itemType model.ItemType, showDisabled bool, page int, limit int) ([]model.Item, int, error)
	CreateItem(ctx context.Context, item model.Item) (model.Item, error)
	UpdateItem(ctx context.Context, item model.Item) (model.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// CatalogService is the CRUD surface over categories, craft shops and
// items. It carries no interesting invariants beyond input validation; the
// access decisions happen in the bearer middleware.
type CatalogService struct {
	categories CategoryStore
	craftShops CraftShopStore
	items      ItemStore
}

func NewCatalogService(categories CategoryStore, craftShops CraftShopStore, items ItemStore) *CatalogService {
	return &CatalogService{categories: categories, craftShops: craftShops, items: items}
}

func (s *CatalogService) Category(ctx context.Context, id int64) (model.Category, error) {
	return s.categories.CategoryByID(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context, page int, limit int) ([]model.Category, int, error) {
	return s.categories.ListCategories(ctx, page, limit)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Category{}, fmt.Errorf("%w: category name is required", model.ErrInvalidInput)
	}

	return s.categories.CreateCategory(ctx, model.Category{Name: name, Depth: req.Depth})
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, req model.UpdateCategoryRequest) (model.Category, error) {
	if req.Name == nil && req.Depth == nil {
		return model.Category{}, fmt.Errorf("%w: there is no value to be changed", model.ErrInvalidInput)
	}

	category, err := s.categories.CategoryByID(ctx, id)
	if err != nil {
		return model.Category{}, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Depth != nil {
		category.Depth = *req.Depth
	}

	return s.categories.UpdateCategory(ctx, category)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.DeleteCategory(ctx, id)
}

func (s *CatalogService) CraftShop(ctx context.Context, id string) (model.CraftShop, error) {
	return s.craftShops.CraftShopByID(ctx, id)
}

func (s *CatalogService) ListCraftShops(ctx context.Context, page int, limit int) ([]model.CraftShop, int, error) {
	return s.craftShops.ListCraftShops(ctx, page, limit)
}

func (s *CatalogService) CreateCraftShop(ctx context.Context, req model.CreateCraftShopRequest) (model.CraftShop, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.CraftShop{}, fmt.Errorf("%w: craft shop name is required", model.ErrInvalidInput)
	}

	return s.craftShops.CreateCraftShop(ctx, model.CraftShop{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		Postcode: req.Postcode,
		Address:  req.Address,
		Detail:   req.Detail,
		Phone:    req.Phone,
	})
}

func (s *CatalogService) UpdateCraftShop(ctx context.Context, id string, req model.UpdateCraftShopRequest) (model.CraftShop, error) {
	shop, err := s.craftShops.CraftShopByID(ctx, id)
	if err != nil {
		return model.CraftShop{}, err
	}

	changed := false
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}
	apply(&shop.Name, req.Name)
	apply(&shop.Postcode, req.Postcode)
	apply(&shop.Address, req.Address)
	apply(&shop.Detail, req.Detail)
	apply(&shop.Phone, req.Phone)

	if !changed {
		return model.CraftShop{}, fmt.Errorf("%w: there is no value to be changed", model.ErrInvalidInput)
	}

	return s.craftShops.UpdateCraftShop(ctx, shop)
}

func (s *CatalogService) DeleteCraftShop(ctx context.Context, id string) error {
	return s.craftShops.DeleteCraftShop(ctx, id)
}

func (s *CatalogService) Item(ctx context.Context, id string) (model.Item, error) {
	return s.items.ItemByID(ctx, id)
}

func (s *CatalogService) ListItems(ctx context.Context, itemType model.ItemType, showDisabled bool, page int, limit int) ([]model.Item, int, error) {
	if !itemType.Valid() {
		return nil, 0, fmt.Errorf("%w: item type %q", model.ErrInvalidInput, itemType)
	}
	return s.items.ListItems(ctx, itemType, showDisabled, page, limit)
}

func (s *CatalogService) CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error) {
	itemType := model.ItemType(req.Type)
	if !itemType.Valid() {
		return model.Item{}, fmt.Errorf("%w: item type %q", model.ErrInvalidInput, req.Type)
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.Item{}, fmt.Errorf("%w: item name is required", model.ErrInvalidInput)
	}

	if req.CategoryID != nil {
		if _, err := s.categories.CategoryByID(ctx, *req.CategoryID); err != nil {
			return model.Item{}, err
		}
	}
	if req.CraftShopID != nil {
		if _, err := s.craftShops.CraftShopByID(ctx, *req.CraftShopID); err != nil {
			return model.Item{}, err
		}
	}

	return s.items.CreateItem(ctx, model.Item{
		ID:          uuid.NewString(),
		Type:        itemType,
		PartNo:      req.PartNo,
		Name:        strings.TrimSpace(req.Name),
		UnitPrice:   req.UnitPrice,
		DefaultFee:  req.DefaultFee,
		Memo:        req.Memo,
		CategoryID:  req.CategoryID,
		CraftShopID: req.CraftShopID,
	})
}

func (s *CatalogService) UpdateItem(ctx context.Context, id string, req model.UpdateItemRequest) (model.Item, error) {
	item, err := s.items.ItemByID(ctx, id)
	if err != nil {
		return model.Item{}, err
	}

	if req.PartNo != nil {
		item.PartNo = *req.PartNo
	}
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.DefaultFee != nil {
		item.DefaultFee = *req.DefaultFee
	}
	if req.Memo != nil {
		item.Memo = *req.Memo
	}
	if req.Disable != nil {
		item.Disable = *req.Disable
	}
	if req.CategoryID != nil {
		if _, err := s.categories.CategoryByID(ctx, *req.CategoryID); err != nil {
			return model.Item{}, err
		}
		item.CategoryID = req.CategoryID
	}
	if req.CraftShopID != nil {
		if _, err := s.craftShops.CraftShopByID(ctx, *req.CraftShopID); err != nil {
			return model.Item{}, err
		}
		item.CraftShopID = req.CraftShopID
	}

	return s.items.UpdateItem(ctx, item)
}

func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	return s.items.DeleteItem(ctx, id)
}
