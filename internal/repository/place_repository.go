package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/places-service/internal/domain"
)

// PlaceRepository encapsulates place persistence.
type PlaceRepository interface {
	Create(ctx context.Context, place *domain.Place) error
	Update(ctx context.Context, place *domain.Place) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Place, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Place, error)
}

type placeRepository struct {
	pool *pgxpool.Pool
}

// NewPlaceRepository instantiates repository.
func NewPlaceRepository(pool *pgxpool.Pool) PlaceRepository {
	return &placeRepository{pool: pool}
}

func (r *placeRepository) Create(ctx context.Context, place *domain.Place) error {
	const query = `
        INSERT INTO places (title, description, image_path, address, latitude, longitude, creator_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		place.Title,
		place.Description,
		place.ImagePath,
		place.Address,
		place.Latitude,
		place.Longitude,
		place.CreatorID,
	).Scan(&place.ID, &place.CreatedAt, &place.UpdatedAt)
}

func (r *placeRepository) Update(ctx context.Context, place *domain.Place) error {
	const query = `
        UPDATE places SET title=$1, description=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query,
		place.Title,
		place.Description,
		place.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *placeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM places WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *placeRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	const query = `
        SELECT id, title, description, image_path, address, latitude, longitude, creator_id, created_at, updated_at
        FROM places WHERE id=$1`

	var place domain.Place
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.ImagePath,
		&place.Address,
		&place.Latitude,
		&place.Longitude,
		&place.CreatorID,
		&place.CreatedAt,
		&place.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) ListByCreator(ctx context.Context, creatorID string) ([]domain.Place, error) {
	const query = `
        SELECT id, title, description, image_path, address, latitude, longitude, creator_id, created_at, updated_at
        FROM places WHERE creator_id=$1
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		var place domain.Place
		if err := rows.Scan(
			&place.ID,
			&place.Title,
			&place.Description,
			&place.ImagePath,
			&place.Address,
			&place.Latitude,
			&place.Longitude,
			&place.CreatorID,
			&place.CreatedAt,
			&place.UpdatedAt,
		); err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	return places, rows.Err()
}
