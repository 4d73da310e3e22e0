package service

import (
	"context"

	"github.com/kubev2v/transcription-service/internal/store"
	"github.com/kubev2v/transcription-service/internal/store/model"
	"github.com/kubev2v/transcription-service/pkg/log"
)

type HistoryFilter struct {
	Filename string
	Status   string
	Limit    int
}

type HistoryReader struct {
	store  store.Store
	logger *log.StructuredLogger
}

func NewHistoryReader(s store.Store) *HistoryReader {
	return &HistoryReader{store: s, logger: log.NewDebugLogger("history_reader")}
}

// List returns the committed transcriptions, newest first.
func (h *HistoryReader) List(ctx context.Context, filter HistoryFilter) (model.TranscriptionList, error) {
	tracer := h.logger.WithContext(ctx).
		Operation("list_history").
		WithParam("filter", filter).
		Build()

	storeFilter := store.NewTranscriptionQueryFilter()
	if filter.Filename != "" {
		storeFilter = storeFilter.ByFilename(filter.Filename)
	}
	if filter.Status != "" {
		storeFilter = storeFilter.ByStatus(filter.Status)
	}

	opts := store.NewTranscriptionQueryOptions().WithSortOrder(store.SortByNewest)
	if filter.Limit > 0 {
		opts = opts.WithLimit(filter.Limit)
	}

	records, err := h.store.Transcription().List(ctx, storeFilter, opts)
	if err != nil {
		tracer.Error(err).Log()
		return nil, NewErrQuery(err)
	}

	tracer.Success().WithInt("count", len(records)).Log()
	return records, nil
}
