package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hearthapp/hearth/internal/models"
)

// CreateFamilyMember persists a new family member.
func (s *Store) CreateFamilyMember(ctx context.Context, member *models.FamilyMember) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO family_members (id, user_id, name, relationship, birth_date) VALUES (?, ?, ?, ?, ?)",
		member.ID, member.UserID, member.Name, member.Relationship, storeTime(fmtDate(member.BirthDate)),
	)
	if err != nil {
		return fmt.Errorf("failed to create family member: %w", err)
	}

	return nil
}

// ListFamilyMembers returns the user's family members, ordered by name.
func (s *Store) ListFamilyMembers(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, relationship, birth_date FROM family_members WHERE user_id = ? ORDER BY name",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}
	defer rows.Close()

	var members []models.FamilyMember
	for rows.Next() {
		var (
			m     models.FamilyMember
			birth sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Relationship, &birth); err != nil {
			return nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		if m.BirthDate, err = parseTime(birth); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate family members: %w", err)
	}

	return members, nil
}

// UpdateFamilyMember updates name, relationship and birth date.
func (s *Store) UpdateFamilyMember(ctx context.Context, member *models.FamilyMember) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE family_members
		SET name = ?, relationship = ?, birth_date = ?
		WHERE id = ? AND user_id = ?`,
		member.Name, member.Relationship, storeTime(fmtDate(member.BirthDate)),
		member.ID, member.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update family member: %w", err)
	}
	return rowsAffected(res)
}

// DeleteFamilyMember removes one of the user's family members.
func (s *Store) DeleteFamilyMember(ctx context.Context, userID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM family_members WHERE id = ? AND user_id = ?",
		memberID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete family member: %w", err)
	}
	return rowsAffected(res)
}
