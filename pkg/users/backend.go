package users

import (
	"database/sql"

	"github.com/glimpsesocial/glimpse/pkg/users/types"
)

type Backend struct {
	db *sql.DB
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{
		db: db,
	}
}

// GetUserByID returns profile data, used to capture author info on stories at
// creation time.
func (b *Backend) GetUserByID(id int) (*types.User, error) {
	stmt, err := b.db.Prepare("SELECT id, display_name, username, image FROM users WHERE id = $1;")
	if err != nil {
		return nil, err
	}

	user := &types.User{}
	err = stmt.QueryRow(id).Scan(&user.ID, &user.DisplayName, &user.Username, &user.Image)
	if err != nil {
		return nil, err
	}

	return user, nil
}
