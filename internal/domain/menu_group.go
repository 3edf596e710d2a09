package domain

import "time"

// MenuGroupStatus represents lifecycle states for a menu group.
type MenuGroupStatus string

const (
	MenuGroupStatusDefault MenuGroupStatus = "DEFAULT"
	MenuGroupStatusDeleted MenuGroupStatus = "DELETED"
)

// MenuGroup is a named section of a shop's menu. Catalog data is plain
// CRUD owned by the shop's owner; deletion is a status flip, the row stays.
type MenuGroup struct {
	ID        int64           `json:"id"`
	ShopID    int64           `json:"shop_id"`
	Name      string          `json:"name"`
	Content   string          `json:"content"`
	Priority  int             `json:"priority"`
	Status    MenuGroupStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
