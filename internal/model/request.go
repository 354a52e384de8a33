package model

// Account endpoints

type UpdateAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// User administration

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Scope    string `json:"scope"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Scope *string `json:"scope"`
}

// Catalog

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Depth *int    `json:"depth"`
}

type CreateCraftShopRequest struct {
	Name     string `json:"name"`
	Postcode string `json:"postcode"`
	Address  string `json:"address"`
	Detail   string `json:"detail"`
	Phone    string `json:"phone"`
}

type UpdateCraftShopRequest struct {
	Name     *string `json:"name"`
	Postcode *string `json:"postcode"`
	Address  *string `json:"address"`
	Detail   *string `json:"detail"`
	Phone    *string `json:"phone"`
}

type CreateItemRequest struct {
	Type        string  `json:"type"`
	PartNo      string  `json:"part_no"`
	Name        string  `json:"name"`
	UnitPrice   int64   `json:"unit_price"`
	DefaultFee  int64   `json:"default_fee"`
	Memo        string  `json:"memo"`
	CategoryID  *int64  `json:"category_id"`
	CraftShopID *string `json:"craft_shop_id"`
}

type UpdateItemRequest struct {
	PartNo      *string `json:"part_no"`
	Name        *string `json:"name"`
	UnitPrice   *int64  `json:"unit_price"`
	DefaultFee  *int64  `json:"default_fee"`
	Memo        *string `json:"memo"`
	Disable     *bool   `json:"disable"`
	CategoryID  *int64  `json:"category_id"`
	CraftShopID *string `json:"craft_shop_id"`
}

type PresignResourceRequest struct {
	FileName string  `json:"file_name"`
	ItemID   *string `json:"item_id"`
}
