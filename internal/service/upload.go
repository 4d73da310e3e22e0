package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/kubev2v/transcription-service/pkg/blob"
	"github.com/kubev2v/transcription-service/pkg/log"
	"github.com/kubev2v/transcription-service/pkg/metrics"
)

// BlobStore keeps uploaded audio and returns a URL the processor can fetch.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

var _ BlobStore = (*blob.MinioStore)(nil)

type UploadService struct {
	blobs  BlobStore
	now    func() time.Time
	logger *log.StructuredLogger
}

func NewUploadService(blobs BlobStore, now func() time.Time) *UploadService {
	if now == nil {
		now = time.Now
	}
	return &UploadService{blobs: blobs, now: now, logger: log.NewDebugLogger("upload_service")}
}

// Upload stores r under a key derived from the upload time and filename and
// returns its public URL. Existing objects are never overwritten.
func (u *UploadService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "", NewErrInvalidInput("filename is required")
	}

	key := fmt.Sprintf("%d-%s", u.now().UnixMilli(), name)

	tracer := u.logger.WithContext(ctx).
		Operation("upload_audio").
		WithString("key", key).
		WithParam("size", size).
		Build()

	fileURL, err := u.blobs.Put(ctx, key, r, size, contentType)
	if err != nil {
		metrics.IncreaseUploadsTotalMetric(metrics.OutcomeFailed)
		tracer.Error(err).Log()
		return "", NewErrUpload(name, err)
	}

	metrics.IncreaseUploadsTotalMetric(metrics.OutcomeSucceeded)
	tracer.Success().WithString("file_url", fileURL).Log()
	return fileURL, nil
}
