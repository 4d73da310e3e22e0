package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kubev2v/transcription-service/internal/store/model"
)

// Transcription is the insert-only record store.
type Transcription interface {
	Create(ctx context.Context, record model.Transcription) (*model.Transcription, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Transcription, error)
	List(ctx context.Context, filter *TranscriptionQueryFilter, opts *TranscriptionQueryOptions) (model.TranscriptionList, error)
}

type TranscriptionStore struct {
	db *gorm.DB
}

// Make sure we conform to Transcription interface
var _ Transcription = (*TranscriptionStore)(nil)

func NewTranscriptionStore(db *gorm.DB) Transcription {
	return &TranscriptionStore{db: db}
}

// Create inserts the record. The store assigns the id and, when the caller
// left it zero, the creation time.
func (s *TranscriptionStore) Create(ctx context.Context, record model.Transcription) (*model.Transcription, error) {
	if strings.TrimSpace(record.Filename) == "" {
		return nil, fmt.Errorf("%w: filename is empty", ErrInvalidRecord)
	}
	if record.Transcription == "" {
		record.Transcription = model.NoTranscriptionPlaceholder
	}
	if record.Status == "" {
		record.Status = model.TranscriptionStatusCompleted
	}
	record.ID = uuid.New()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("inserting transcription: %w", err)
	}
	return &record, nil
}

func (s *TranscriptionStore) Get(ctx context.Context, id uuid.UUID) (*model.Transcription, error) {
	var record model.Transcription
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying transcription: %w", err)
	}
	return &record, nil
}

func (s *TranscriptionStore) List(ctx context.Context, filter *TranscriptionQueryFilter, opts *TranscriptionQueryOptions) (model.TranscriptionList, error) {
	tx := s.db.WithContext(ctx).Model(&model.Transcription{})
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if opts == nil {
		opts = NewTranscriptionQueryOptions().WithSortOrder(SortByNewest)
	}
	for _, fn := range opts.QueryFn {
		tx = fn(tx)
	}

	var records model.TranscriptionList
	if err := tx.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing transcriptions: %w", err)
	}
	return records, nil
}
