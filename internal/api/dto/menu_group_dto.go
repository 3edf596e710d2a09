package dto

// CreateMenuGroupRequest payload for new menu groups.
type CreateMenuGroupRequest struct {
	ShopID   int64  `json:"shop_id"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Priority int    `json:"priority"`
}

// UpdateMenuGroupRequest payload for renaming a menu group.
type UpdateMenuGroupRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
