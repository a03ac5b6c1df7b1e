package sqlite

import (
	"context"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
)

type usersRepo struct {
	q dbtx
}

// UpsertUser keeps created_at from the first sighting and refreshes the rest.
func (r *usersRepo) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			updated_at = excluded.updated_at`,
		u.ID, u.Email, u.DisplayName, toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var (
		u                domain.User
		created, updated int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, email, display_name, created_at, updated_at
		FROM users
		WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Email, &u.DisplayName, &created, &updated)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)
	return u, nil
}
