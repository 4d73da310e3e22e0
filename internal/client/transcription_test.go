package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/kubev2v/transcription-service/api/v1alpha1"
	"github.com/kubev2v/transcription-service/internal/client"
)

var _ = Describe("transcription service client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("sends a transcribe request and decodes the text", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal(http.MethodPost))
			Expect(r.URL.Path).To(Equal("/api/v1/transcriptions/transcribe"))

			var req api.TranscribeRequest
			Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
			Expect(req.AudioURL).To(Equal("https://blob/a.wav"))
			Expect(req.Filename).To(Equal("a.wav"))

			_ = json.NewEncoder(w).Encode(api.TranscribeResponse{Transcription: "hello world"})
		}))
		defer server.Close()

		c := client.NewTranscriptionClient(server.URL, 5*time.Second)
		resp, err := c.Transcribe(ctx, "https://blob/a.wav", "a.wav")

		Expect(err).To(BeNil())
		Expect(resp.Transcription).To(Equal("hello world"))
	})

	It("returns the error body on failure", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			details := "recovered transcription: hello"
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(api.Error{Message: "failed to persist transcription", Details: &details})
		}))
		defer server.Close()

		c := client.NewTranscriptionClient(server.URL, 5*time.Second)
		_, err := c.Transcribe(ctx, "https://blob/a.wav", "a.wav")

		var apiErr *client.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.StatusCode).To(Equal(http.StatusInternalServerError))
		Expect(err.Error()).To(ContainSubstring("recovered transcription: hello"))
	})

	It("passes history filters as query parameters", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/v1/transcriptions/history"))
			Expect(r.URL.Query().Get("status")).To(Equal("failed"))
			Expect(r.URL.Query().Get("limit")).To(Equal("5"))
			_, _ = w.Write([]byte(`[{"id":"1","filename":"a.wav","audio_url":"u","transcription":"t","status":"failed","created_at":"2024-03-01T10:00:00.000Z"}]`))
		}))
		defer server.Close()

		c := client.NewTranscriptionClient(server.URL, 5*time.Second)
		list, err := c.ListHistory(ctx, client.HistoryParams{Status: "failed", Limit: 5})

		Expect(err).To(BeNil())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Status).To(Equal(api.TranscriptionStatusFailed))
	})

	It("uploads the file as multipart form data", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			file, header, err := r.FormFile("audio")
			Expect(err).To(BeNil())
			defer file.Close()
			data, _ := io.ReadAll(file)
			Expect(header.Filename).To(Equal("a.wav"))
			Expect(string(data)).To(Equal("RIFF"))

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(api.UploadResponse{Message: "File uploaded successfully", FileURL: "https://cdn/a.wav"})
		}))
		defer server.Close()

		c := client.NewTranscriptionClient(server.URL, 5*time.Second)
		resp, err := c.Upload(ctx, "a.wav", strings.NewReader("RIFF"))

		Expect(err).To(BeNil())
		Expect(resp.FileURL).To(Equal("https://cdn/a.wav"))
	})
})
