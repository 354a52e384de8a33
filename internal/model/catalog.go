package model

import "time"

// ItemType splits the catalog into finished products and their parts.
type ItemType string

const (
	ItemTypeProduct ItemType = "product"
	ItemTypeParts   ItemType = "parts"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeProduct || t == ItemTypeParts
}

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Depth     int       `json:"depth"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CraftShop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Postcode  string    `json:"postcode"`
	Address   string    `json:"address"`
	Detail    string    `json:"detail"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Item struct {
	ID          string     `json:"id"`
	Type        ItemType   `json:"type"`
	PartNo      string     `json:"part_no"`
	Name        string     `json:"name"`
	UnitPrice   int64      `json:"unit_price"`
	DefaultFee  int64      `json:"default_fee"`
	Memo        string     `json:"memo"`
	Disable     bool       `json:"disable"`
	CategoryID  *int64     `json:"category_id,omitempty"`
	CraftShopID *string    `json:"craft_shop_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Resource is an uploaded object (item image) living in the resource bucket.
// Key is the object key; the upload itself happens client-side against a
// presigned URL, so only metadata passes through this service.
type Resource struct {
	ID        string    `json:"id"`
	ItemID    *string   `json:"item_id,omitempty"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}
