package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	api "github.com/kubev2v/transcription-service/api/v1alpha1"
)

// APIError is returned when the transcription service replies with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       api.Error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("transcription service returned %d: %s", e.StatusCode, e.Body.Message)
	if e.Body.Details != nil && *e.Body.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, *e.Body.Details)
	}
	return msg
}

// TranscriptionClient talks to the transcription service HTTP API.
type TranscriptionClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTranscriptionClient returns a client for baseURL. A transcribe call
// holds the connection until the job ends, so timeout should cover the
// server side polling window.
func NewTranscriptionClient(baseURL string, timeout time.Duration) *TranscriptionClient {
	if timeout == 0 {
		timeout = 15 * time.Minute
	}
	return &TranscriptionClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *TranscriptionClient) Transcribe(ctx context.Context, audioURL, filename string) (*api.TranscribeResponse, error) {
	body, err := json.Marshal(api.TranscribeRequest{AudioURL: audioURL, Filename: filename})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var resp api.TranscribeResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/transcriptions/transcribe", "application/json", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type HistoryParams struct {
	Filename string
	Status   string
	Limit    int
}

func (c *TranscriptionClient) ListHistory(ctx context.Context, params HistoryParams) (api.TranscriptionList, error) {
	query := url.Values{}
	if params.Filename != "" {
		query.Set("filename", params.Filename)
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/api/v1/transcriptions/history"
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}

	var list api.TranscriptionList
	if err := c.do(ctx, http.MethodGet, path, "", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *TranscriptionClient) SaveTranscription(ctx context.Context, filename, text string) (*api.Transcription, error) {
	body, err := json.Marshal(api.SaveTranscriptionRequest{Filename: filename, Transcription: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var created api.Transcription
	if err := c.do(ctx, http.MethodPost, "/api/v1/transcriptions", "application/json", bytes.NewReader(body), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Upload sends r as the audio part of a multipart form.
func (c *TranscriptionClient) Upload(ctx context.Context, filename string, r io.Reader) (*api.UploadResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	var resp api.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/uploads", mw.FormDataContentType(), &body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *TranscriptionClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call transcription service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, &apiErr.Body); err != nil || apiErr.Body.Message == "" {
			apiErr.Body.Message = string(bytes.TrimSpace(data))
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
