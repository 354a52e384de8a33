package integration

import (
	"context"
	"sync"
	"time"

	"craftshop-admin/internal/model"
)

// memStore is an in-memory implementation of every store interface the
// services consume, backing full-stack tests without PostgreSQL.
type memStore struct {
	mu sync.Mutex

	clients     map[string]model.Client     // by external client id
	users       map[int64]model.User        // by id
	credentials map[string]model.Credential // by username
	tokens      []model.UserToken

	categories map[int64]model.Category
	craftShops map[string]model.CraftShop
	items      map[string]model.Item
	resources  map[string]model.Resource

	nextUserID     int64
	nextTokenID    int64
	nextCategoryID int64
}

func newMemStore() *memStore {
	return &memStore{
		clients:     make(map[string]model.Client),
		users:       make(map[int64]model.User),
		credentials: make(map[string]model.Credential),
		categories:  make(map[int64]model.Category),
		craftShops:  make(map[string]model.CraftShop),
		items:       make(map[string]model.Item),
		resources:   make(map[string]model.Resource),
	}
}

func (s *memStore) ClientByClientID(_ context.Context, clientID string) (model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[clientID]
	if !ok {
		return model.Client{}, model.ErrClientNotFound
	}
	return client, nil
}

func (s *memStore) CreateClient(_ context.Context, client model.Client) (model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[client.ClientID] = client
	return client, nil
}

func (s *memStore) UserByID(_ context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (s *memStore) UserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *memStore) ListUsers(_ context.Context, _ int, _ int) ([]model.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, len(users), nil
}

func (s *memStore) UpdateUser(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return model.User{}, model.ErrUserNotFound
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *memStore) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *memStore) CreateUserWithCredential(_ context.Context, user model.User, cred model.Credential) (model.User, model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.credentials[cred.Username]; ok {
		return model.User{}, model.Credential{}, model.ErrAlreadyExists
	}

	s.nextUserID++
	user.ID = s.nextUserID
	cred.UserID = user.ID

	s.users[user.ID] = user
	s.credentials[cred.Username] = cred
	return user, cred, nil
}

func (s *memStore) CredentialByUsername(_ context.Context, username string) (model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.credentials[username]
	if !ok {
		return model.Credential{}, model.ErrCredentialNotFound
	}
	return cred, nil
}

func (s *memStore) CredentialByUserID(_ context.Context, userID int64) (model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cred := range s.credentials {
		if cred.UserID == userID {
			return cred, nil
		}
	}
	return model.Credential{}, model.ErrCredentialNotFound
}

func (s *memStore) UpdateCredentialPassword(_ context.Context, credentialID string, hashed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for username, cred := range s.credentials {
		if cred.ID == credentialID {
			cred.Password = hashed
			s.credentials[username] = cred
			return nil
		}
	}
	return model.ErrCredentialNotFound
}

func (s *memStore) CreateToken(_ context.Context, token model.UserToken) (model.UserToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTokenID++
	token.ID = s.nextTokenID
	token.CreatedAt = time.Now()
	s.tokens = append(s.tokens, token)
	return token, nil
}

func (s *memStore) TokenByAccess(ctx context.Context, accessToken string) (model.AuthorizedToken, error) {
	return s.tokenBy(ctx, func(t model.UserToken) bool { return t.AccessToken == accessToken })
}

func (s *memStore) TokenByRefresh(ctx context.Context, refreshToken string) (model.AuthorizedToken, error) {
	return s.tokenBy(ctx, func(t model.UserToken) bool { return t.RefreshToken == refreshToken })
}

func (s *memStore) tokenBy(_ context.Context, match func(model.UserToken) bool) (model.AuthorizedToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, token := range s.tokens {
		if !match(token) {
			continue
		}

		user, ok := s.users[token.UserID]
		if !ok {
			return model.AuthorizedToken{}, model.ErrTokenNotFound
		}
		for _, client := range s.clients {
			if client.ID == token.ClientID {
				return model.AuthorizedToken{UserToken: token, Client: client, User: user}, nil
			}
		}
		return model.AuthorizedToken{}, model.ErrTokenNotFound
	}
	return model.AuthorizedToken{}, model.ErrTokenNotFound
}

func (s *memStore) DeleteToken(_ context.Context, accessToken string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tokens[:0]
	for _, token := range s.tokens {
		if token.AccessToken == accessToken && token.UserID == userID {
			continue
		}
		kept = append(kept, token)
	}
	s.tokens = kept
	return nil
}

func (s *memStore) CategoryByID(_ context.Context, id int64) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return model.Category{}, model.ErrNotFound
	}
	return category, nil
}

func (s *memStore) ListCategories(_ context.Context, _ int, _ int) ([]model.Category, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]model.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category)
	}
	return categories, len(categories), nil
}

func (s *memStore) CreateCategory(_ context.Context, category model.Category) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCategoryID++
	category.ID = s.nextCategoryID
	s.categories[category.ID] = category
	return category, nil
}

func (s *memStore) UpdateCategory(_ context.Context, category model.Category) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[category.ID]; !ok {
		return model.Category{}, model.ErrNotFound
	}
	s.categories[category.ID] = category
	return category, nil
}

func (s *memStore) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *memStore) CraftShopByID(_ context.Context, id string) (model.CraftShop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shop, ok := s.craftShops[id]
	if !ok {
		return model.CraftShop{}, model.ErrNotFound
	}
	return shop, nil
}

func (s *memStore) ListCraftShops(_ context.Context, _ int, _ int) ([]model.CraftShop, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shops := make([]model.CraftShop, 0, len(s.craftShops))
	for _, shop := range s.craftShops {
		shops = append(shops, shop)
	}
	return shops, len(shops), nil
}

func (s *memStore) CreateCraftShop(_ context.Context, shop model.CraftShop) (model.CraftShop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.craftShops[shop.ID] = shop
	return shop, nil
}

func (s *memStore) UpdateCraftShop(_ context.Context, shop model.CraftShop) (model.CraftShop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.craftShops[shop.ID]; !ok {
		return model.CraftShop{}, model.ErrNotFound
	}
	s.craftShops[shop.ID] = shop
	return shop, nil
}

func (s *memStore) DeleteCraftShop(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.craftShops[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.craftShops, id)
	return nil
}

func (s *memStore) ItemByID(_ context.Context, id string) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.DeletedAt != nil {
		return model.Item{}, model.ErrNotFound
	}
	return item, nil
}

func (s *memStore) ListItems(_ context.Context, itemType model.ItemType, showDisabled bool, _ int, _ int) ([]model.Item, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.Item, 0)
	for _, item := range s.items {
		if item.Type != itemType || item.DeletedAt != nil {
			continue
		}
		if item.Disable && !showDisabled {
			continue
		}
		items = append(items, item)
	}
	return items, len(items), nil
}

func (s *memStore) CreateItem(_ context.Context, item model.Item) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[item.ID] = item
	return item, nil
}

func (s *memStore) UpdateItem(_ context.Context, item model.Item) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[item.ID]; !ok || existing.DeletedAt != nil {
		return model.Item{}, model.ErrNotFound
	}
	s.items[item.ID] = item
	return item, nil
}

func (s *memStore) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.DeletedAt != nil {
		return model.ErrNotFound
	}
	now := time.Now()
	item.DeletedAt = &now
	s.items[id] = item
	return nil
}

func (s *memStore) ResourceByID(_ context.Context, id string) (model.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resource, ok := s.resources[id]
	if !ok {
		return model.Resource{}, model.ErrNotFound
	}
	return resource, nil
}

func (s *memStore) CreateResource(_ context.Context, resource model.Resource) (model.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resources[resource.ID] = resource
	return resource, nil
}

func (s *memStore) DeleteResource(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resources[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.resources, id)
	return nil
}
