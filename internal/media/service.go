package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"ecolakbay-service/internal/storage/s3"
)

const (
	maxUploadSize = 10 << 20 // 10 MiB
	presignTTL    = 15 * time.Minute
)

var ErrTooLarge = errors.New("file exceeds upload size limit")

type Service interface {
	Upload(ctx context.Context, ownerID, kind string, file multipart.File, header *multipart.FileHeader) (*Media, error)
	Get(id uint64) (*Media, error)
	URL(ctx context.Context, id uint64) (string, error)
	PresignUpload(ctx context.Context, ownerID, fileName string) (key, url string, err error)
}

type service struct {
	repo    Repository
	storage *s3.Storage
}

func NewService(r Repository, st *s3.Storage) Service {
	return &service{repo: r, storage: st}
}

func (s *service) Upload(ctx context.Context, ownerID, kind string, file multipart.File, header *multipart.FileHeader) (*Media, error) {
	if header.Size > maxUploadSize {
		return nil, ErrTooLarge
	}
	if kind != KindPermit {
		kind = KindPhoto
	}
	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxUploadSize {
		return nil, ErrTooLarge
	}

	key := fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	if err := s.storage.Put(ctx, key, contentType, data); err != nil {
		return nil, err
	}

	m := &Media{
		OwnerID:     ownerID,
		FileName:    header.Filename,
		ObjectKey:   key,
		ContentType: contentType,
		Size:        int64(len(data)),
		Kind:        kind,
	}
	if err := s.repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Get(id uint64) (*Media, error) { return s.repo.FindByID(id) }

func (s *service) URL(ctx context.Context, id uint64) (string, error) {
	m, err := s.repo.FindByID(id)
	if err != nil {
		return "", err
	}
	u, err := s.storage.PresignGet(ctx, m.ObjectKey, presignTTL)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *service) PresignUpload(ctx context.Context, ownerID, fileName string) (string, string, error) {
	key := fmt.Sprintf("uploads/%s/%s%s", ownerID, uuid.NewString(), filepath.Ext(fileName))
	u, err := s.storage.PresignPut(ctx, key, presignTTL)
	if err != nil {
		return "", "", err
	}
	return key, u.String(), nil
}
