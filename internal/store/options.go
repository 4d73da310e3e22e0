package store

import (
	"time"

	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type TranscriptionQueryFilter BaseQuerier

func NewTranscriptionQueryFilter() *TranscriptionQueryFilter {
	return &TranscriptionQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *TranscriptionQueryFilter) ByFilename(filename string) *TranscriptionQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("filename = ?", filename)
	})
	return f
}

func (f *TranscriptionQueryFilter) ByAudioURL(audioURL string) *TranscriptionQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("audio_url = ?", audioURL)
	})
	return f
}

func (f *TranscriptionQueryFilter) ByStatus(status string) *TranscriptionQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return f
}

func (f *TranscriptionQueryFilter) CreatedAfter(t time.Time) *TranscriptionQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at > ?", t)
	})
	return f
}

type SortOrder int

const (
	SortByNewest SortOrder = iota
	SortByOldest
)

type TranscriptionQueryOptions BaseQuerier

func NewTranscriptionQueryOptions() *TranscriptionQueryOptions {
	return &TranscriptionQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

// WithSortOrder orders by creation time. Ties are broken on id so repeated
// reads of the same rows return the same sequence.
func (o *TranscriptionQueryOptions) WithSortOrder(sort SortOrder) *TranscriptionQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByOldest:
			return tx.Order("created_at ASC").Order("id ASC")
		default:
			return tx.Order("created_at DESC").Order("id DESC")
		}
	})
	return o
}

func (o *TranscriptionQueryOptions) WithLimit(limit int) *TranscriptionQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}
