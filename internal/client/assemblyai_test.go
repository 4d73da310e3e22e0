package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/transcription-service/internal/client"
)

var _ = Describe("assemblyai client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("CreateJob", func() {
		It("posts the audio url with the credential", func() {
			var received client.CreateJobRequest

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/v2/transcript"))
				Expect(r.Header.Get("Authorization")).To(Equal("secret-key"))
				Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
				_ = json.NewDecoder(r.Body).Decode(&received)

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(client.JobStatus{ID: "job-1", Status: client.JobStatusQueued})
			}))
			defer server.Close()

			c := client.NewAssemblyAIClient(server.URL, "secret-key", 5*time.Second)
			id, err := c.CreateJob(ctx, "https://blob/a.wav")

			Expect(err).To(BeNil())
			Expect(id).To(Equal("job-1"))
			Expect(received.AudioURL).To(Equal("https://blob/a.wav"))
		})

		It("returns an error on a non-2xx reply", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
			}))
			defer server.Close()

			c := client.NewAssemblyAIClient(server.URL, "bad", 5*time.Second)
			_, err := c.CreateJob(ctx, "https://blob/a.wav")

			Expect(err).NotTo(BeNil())
			Expect(errors.Is(err, client.ErrUnexpectedStatus)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("401"))
		})

		It("returns an error when the reply has no job id", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			}))
			defer server.Close()

			c := client.NewAssemblyAIClient(server.URL, "k", 5*time.Second)
			_, err := c.CreateJob(ctx, "https://blob/a.wav")
			Expect(err).NotTo(BeNil())
		})

		It("returns an error when the processor is unreachable", func() {
			c := client.NewAssemblyAIClient("http://192.0.2.0:8080", "k", 500*time.Millisecond)
			_, err := c.CreateJob(ctx, "https://blob/a.wav")

			Expect(err).NotTo(BeNil())
			Expect(err.Error()).To(ContainSubstring("failed to call transcription processor"))
		})
	})

	Describe("GetJobStatus", func() {
		It("decodes a completed job", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodGet))
				Expect(r.URL.Path).To(Equal("/v2/transcript/job-1"))
				Expect(r.Header.Get("Authorization")).To(Equal("k"))
				_, _ = w.Write([]byte(`{"id":"job-1","status":"completed","text":"hello world"}`))
			}))
			defer server.Close()

			c := client.NewAssemblyAIClient(server.URL, "k", 5*time.Second)
			status, err := c.GetJobStatus(ctx, "job-1")

			Expect(err).To(BeNil())
			Expect(status.Completed()).To(BeTrue())
			Expect(status.Failed()).To(BeFalse())
			Expect(status.Text).To(Equal("hello world"))
		})

		It("reports both error and failed as failures", func() {
			Expect(client.JobStatus{Status: client.JobStatusError}.Failed()).To(BeTrue())
			Expect(client.JobStatus{Status: client.JobStatusFailed}.Failed()).To(BeTrue())
			Expect(client.JobStatus{Status: client.JobStatusProcessing}.Failed()).To(BeFalse())
		})

		It("returns an error on a malformed body", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			}))
			defer server.Close()

			c := client.NewAssemblyAIClient(server.URL, "k", 5*time.Second)
			_, err := c.GetJobStatus(ctx, "job-1")
			Expect(err).NotTo(BeNil())
			Expect(err.Error()).To(ContainSubstring("failed to decode response"))
		})
	})
})
