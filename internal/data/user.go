package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/biz/repo"
)

// userRepo implements the User repository
type userRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new User repository
func NewUserRepo(db *sql.DB) repo.UserRepo {
	return &userRepo{db: db}
}

// GetByChatID gets a user by chat id
func (r *userRepo) GetByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, chat_id, first_name, last_name, username, is_registered,
		       role_name, can_add, can_be_assigned
		FROM users
		WHERE chat_id = ?
	`, chatID)

	var user domain.User
	var isRegistered int
	var roleName sql.NullString
	var canAdd, canBeAssigned int
	err := row.Scan(&user.ID, &user.ChatID, &user.FirstName, &user.LastName,
		&user.Username, &isRegistered, &roleName, &canAdd, &canBeAssigned)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user.IsRegistered = isRegistered != 0
	if roleName.Valid {
		user.Role = &domain.Role{
			Name:          roleName.String,
			CanAdd:        canAdd != 0,
			CanBeAssigned: canBeAssigned != 0,
		}
	}

	return &user, nil
}

// Save saves a brand new user
func (r *userRepo) Save(ctx context.Context, user *domain.User) error {
	var roleName sql.NullString
	var canAdd, canBeAssigned bool
	if user.Role != nil {
		roleName = sql.NullString{String: user.Role.Name, Valid: true}
		canAdd = user.Role.CanAdd
		canBeAssigned = user.Role.CanBeAssigned
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (chat_id, first_name, last_name, username, is_registered,
		                   role_name, can_add, can_be_assigned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		user.ChatID,
		user.FirstName,
		user.LastName,
		user.Username,
		boolToInt(user.IsRegistered),
		roleName,
		boolToInt(canAdd),
		boolToInt(canBeAssigned),
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		user.ID = id
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
