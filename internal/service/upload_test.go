package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/transcription-service/internal/service"
)

type fakeBlobStore struct {
	keys    []string
	content []string
	err     error
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	f.content = append(f.content, string(data))
	return "https://cdn.example.com/audio-uploads/" + key, nil
}

var _ = Describe("upload service", func() {
	var (
		blobs *fakeBlobStore
		svc   *service.UploadService
	)

	BeforeEach(func() {
		blobs = &fakeBlobStore{}
		svc = service.NewUploadService(blobs, func() time.Time { return time.UnixMilli(1700000000000) })
	})

	It("stores the file under a time prefixed key", func() {
		u, err := svc.Upload(context.TODO(), "a.wav", "audio/wav", 4, strings.NewReader("RIFF"))
		Expect(err).To(BeNil())
		Expect(u).To(Equal("https://cdn.example.com/audio-uploads/1700000000000-a.wav"))
		Expect(blobs.keys).To(ConsistOf("1700000000000-a.wav"))
		Expect(blobs.content).To(ConsistOf("RIFF"))
	})

	It("drops directories from the filename", func() {
		_, err := svc.Upload(context.TODO(), "../../etc/a.wav", "audio/wav", 4, strings.NewReader("RIFF"))
		Expect(err).To(BeNil())
		Expect(blobs.keys).To(ConsistOf("1700000000000-a.wav"))
	})

	It("rejects a missing filename", func() {
		_, err := svc.Upload(context.TODO(), "", "audio/wav", 0, strings.NewReader(""))

		var invalid *service.ErrInvalidInput
		Expect(errors.As(err, &invalid)).To(BeTrue())
		Expect(blobs.keys).To(BeEmpty())
	})

	It("wraps storage failures", func() {
		blobs.err = errors.New("object already exists")

		_, err := svc.Upload(context.TODO(), "a.wav", "audio/wav", 4, strings.NewReader("RIFF"))

		var upload *service.ErrUpload
		Expect(errors.As(err, &upload)).To(BeTrue())
	})
})
