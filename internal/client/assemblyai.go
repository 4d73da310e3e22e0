package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Job states reported by the processor.
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusError      = "error"
	JobStatusFailed     = "failed"
)

// ErrUnexpectedStatus is wrapped by errors caused by a non-2xx reply.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// AssemblyAIClient is an HTTP client for an AssemblyAI compatible
// asynchronous transcription API.
type AssemblyAIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAssemblyAIClient(baseURL, apiKey string, timeout time.Duration) *AssemblyAIClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &AssemblyAIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type CreateJobRequest struct {
	AudioURL string `json:"audio_url"`
}

// JobStatus is the processor's view of a job.
type JobStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s JobStatus) Completed() bool {
	return s.Status == JobStatusCompleted
}

func (s JobStatus) Failed() bool {
	return s.Status == JobStatusError || s.Status == JobStatusFailed
}

// CreateJob submits audioURL for transcription and returns the job id.
func (c *AssemblyAIClient) CreateJob(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(&CreateJobRequest{AudioURL: audioURL})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var status JobStatus
	if err := c.do(ctx, http.MethodPost, "/v2/transcript", bytes.NewReader(body), &status); err != nil {
		return "", err
	}
	if status.ID == "" {
		return "", errors.New("processor returned an empty job id")
	}
	return status.ID, nil
}

// GetJobStatus fetches the current state of a job.
func (c *AssemblyAIClient) GetJobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	var status JobStatus
	if err := c.do(ctx, http.MethodGet, "/v2/transcript/"+url.PathEscape(jobID), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *AssemblyAIClient) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.apiKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call transcription processor: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: transcription processor returned %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
