package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)

	AddImage(ctx context.Context, img *Image) error
	ListImages(ctx context.Context, roomID string) ([]Image, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "type", "rent_per_day", "max_count",
		"phone_number", "description", "created_at", "updated_at",
	).
		From("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	var rm Room
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&rm.ID, &rm.Name, &rm.Type, &rm.RentPerDay, &rm.MaxCount,
		&rm.PhoneNumber, &rm.Description, &rm.CreatedAt, &rm.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}

	images, err := r.ListImages(ctx, rm.ID)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		rm.ImageURLs = append(rm.ImageURLs, img.URL())
	}

	return &rm, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"r.id", "r.name", "r.type", "r.rent_per_day", "r.max_count",
		"r.phone_number", "r.description", "r.created_at", "r.updated_at",
	).
		From("public.rooms r").
		OrderBy("r.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	byID := make(map[string]*Room)
	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.Name, &rm.Type, &rm.RentPerDay, &rm.MaxCount,
			&rm.PhoneNumber, &rm.Description, &rm.CreatedAt, &rm.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
		byID[rm.ID] = &rm
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}

	if err := r.attachImageURLs(ctx, byID); err != nil {
		return nil, err
	}

	return rooms, nil
}

// attachImageURLs fills ImageURLs for every room in the map with one query.
func (r *pgxRepository) attachImageURLs(ctx context.Context, byID map[string]*Room) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("room_id", "storage_path").
		From("public.room_images").
		Where(squirrel.Eq{"room_id": ids}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build list room images query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list room images failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roomID, storagePath string
		if err := rows.Scan(&roomID, &storagePath); err != nil {
			return fmt.Errorf("scan room image failed: %w", err)
		}
		if rm, ok := byID[roomID]; ok {
			rm.ImageURLs = append(rm.ImageURLs, Image{StoragePath: storagePath}.URL())
		}
	}
	return rows.Err()
}

func (r *pgxRepository) AddImage(ctx context.Context, img *Image) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.room_images").
		Columns("room_id", "storage_path", "thumbnail_path", "content_type").
		Values(img.RoomID, img.StoragePath, img.ThumbnailPath, img.ContentType).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build add room image query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&img.ID, &img.CreatedAt); err != nil {
		return fmt.Errorf("add room image failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListImages(ctx context.Context, roomID string) ([]Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "room_id", "storage_path", "thumbnail_path", "content_type", "created_at",
	).
		From("public.room_images").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list room images query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list room images failed: %w", err)
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(
			&img.ID, &img.RoomID, &img.StoragePath, &img.ThumbnailPath, &img.ContentType, &img.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan room image failed: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
