package room

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/storage"
)

type Service interface {
	GetByID(ctx context.Context, id string) (*Room, error)

	// List returns all rooms. When from/to are both non-zero, rooms with a
	// conflicting reservation in that window are filtered out.
	List(ctx context.Context, from, to time.Time) ([]*Room, error)

	// AddImage stores an uploaded room photo and a thumbnail.
	AddImage(ctx context.Context, roomID string, header *multipart.FileHeader) (*Image, error)
}

type service struct {
	repo    Repository
	ledger  Ledger
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, ledger Ledger, store storage.Storage) Service {
	return &service{
		repo:    repo,
		ledger:  ledger,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, from, to time.Time) ([]*Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if from.IsZero() || to.IsZero() {
		return rooms, nil
	}

	available := make([]*Room, 0, len(rooms))
	for _, rm := range rooms {
		free, _, err := s.ledger.IsFree(ctx, rm.ID, from, to)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, rm)
		}
	}
	return available, nil
}

func (s *service) AddImage(ctx context.Context, roomID string, header *multipart.FileHeader) (*Image, error) {
	if _, err := s.repo.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidImage
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	imageID := uuid.New().String()

	// Sharding path: rooms/ab/UUID.ext
	shard := imageID[:2]
	storagePath := fmt.Sprintf("%s/%s%s", shard, imageID, ext)

	if err := s.storage.Save(ctx, filepath.Join("rooms", storagePath), bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save image to storage: %w", err)
	}

	var thumbnailPath *string
	// Thumbnail failures do not fail the upload.
	if thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 400, 300); err == nil {
		tPath := fmt.Sprintf("%s/%s_thumb.jpg", shard, imageID)
		if err := s.storage.Save(ctx, filepath.Join("rooms", tPath), thumb); err == nil {
			thumbnailPath = &tPath
		}
	}

	img := &Image{
		RoomID:        roomID,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
	}

	if err := s.repo.AddImage(ctx, img); err != nil {
		return nil, err
	}

	return img, nil
}
