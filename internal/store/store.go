package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kubev2v/transcription-service/internal/store/model"
)

type Store interface {
	Transcription() Transcription
	InitialMigration(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

type DataStore struct {
	db            *gorm.DB
	transcription Transcription
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:            db,
		transcription: NewTranscriptionStore(db),
	}
}

func (s *DataStore) Transcription() Transcription {
	return s.transcription
}

// InitialMigration creates the schema from the models. Deployments backed by
// postgres run the goose migrations instead.
func (s *DataStore) InitialMigration(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&model.Transcription{})
}

func (s *DataStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
