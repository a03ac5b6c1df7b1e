package postgres

import (
	"context"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
)

type usersRepo struct {
	q querier
}

// UpsertUser keeps created_at from the first sighting and refreshes the rest.
func (r *usersRepo) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, email, display_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			updated_at = EXCLUDED.updated_at`,
		u.ID, u.Email, u.DisplayName, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := r.q.QueryRow(ctx, `
		SELECT id, email, display_name, created_at, updated_at
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.DisplayName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
