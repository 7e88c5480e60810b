package models

// Backup is the JSON document produced by export and consumed by import.
// It carries every row the user owns; goals embed their milestones and
// shopping lists embed their items.
type Backup struct {
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	ExportedAt    int64          `json:"exported_at"`
	Transactions  []Transaction  `json:"transactions"`
	Budgets       []Budget       `json:"budgets"`
	FamilyMembers []FamilyMember `json:"family_members"`
	Events        []Event        `json:"events"`
	Goals         []Goal         `json:"goals"`
	ShoppingLists []ShoppingList `json:"shopping_lists"`
}
