package models

// ShoppingList is a named list of items to buy.
type ShoppingList struct {
	// ID is the unique identifier for the list (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Name is the display name of the list.
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the list was created.
	CreatedAt int64 `json:"created_at"`

	// Items holds the list's items when loaded with them (export, GET
	// with items); nil otherwise.
	Items []ListItem `json:"items,omitempty"`
}

// ListItem is a single entry on a shopping list.
type ListItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// ListID is the shopping list this item belongs to.
	ListID string `json:"list_id"`

	// Name is the item description.
	Name string `json:"item_name"`

	// Quantity defaults to 1.
	Quantity int `json:"quantity"`

	// Completed marks the item as bought.
	Completed bool `json:"completed"`
}
