package models

import "time"

// FamilyMember is a person in the user's family profile.
type FamilyMember struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Name is the member's display name.
	Name string `json:"name"`

	// Relationship is one of RelationshipTypes.
	Relationship string `json:"relationship"`

	// BirthDate is optional; zero means unknown.
	BirthDate time.Time `json:"birth_date,omitzero"`
}

// RelationshipTypes is the predefined relationship list offered by the UI.
var RelationshipTypes = []string{
	"Spouse/Partner", "Child", "Parent", "Sibling",
	"Grandparent", "Grandchild", "Uncle/Aunt",
	"Niece/Nephew", "Cousin", "Other",
}
