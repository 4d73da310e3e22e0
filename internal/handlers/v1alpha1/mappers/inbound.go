package mappers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/kubev2v/transcription-service/internal/service"
)

const MaxHistoryLimit = 1000

// HistoryFilterFromQuery maps the history query string onto a service filter.
func HistoryFilterFromQuery(query url.Values) (service.HistoryFilter, error) {
	filter := service.HistoryFilter{
		Filename: query.Get("filename"),
		Status:   query.Get("status"),
	}

	raw := query.Get("limit")
	if raw == "" {
		return filter, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > MaxHistoryLimit {
		return service.HistoryFilter{}, fmt.Errorf("limit must be an integer between 1 and %d", MaxHistoryLimit)
	}
	filter.Limit = limit
	return filter, nil
}
