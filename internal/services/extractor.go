package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"alfredoptarigan/product-sheet-extractor/internal/models"
)

const (
	ProcessPath         = "/process-pdf"
	GenericBackendError = "An unknown backend error occurred."
)

// BackendError is a non-success HTTP response from the extraction backend.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// NetworkError covers transport failures and malformed success bodies.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type ExtractorService interface {
	Extract(ctx context.Context, file models.SelectedFile) (*models.ExtractionResult, error)
}

type extractorService struct {
	client          *http.Client
	endpoint        string
	maxResponseSize int64
}

func NewExtractorService(baseURL string, timeout time.Duration, maxResponseSize int64) ExtractorService {
	return NewExtractorServiceWithClient(baseURL, &http.Client{Timeout: timeout}, maxResponseSize)
}

func NewExtractorServiceWithClient(baseURL string, client *http.Client, maxResponseSize int64) ExtractorService {
	return &extractorService{
		client:          client,
		endpoint:        strings.TrimRight(baseURL, "/") + ProcessPath,
		maxResponseSize: maxResponseSize,
	}
}

// Extract implements ExtractorService.
func (s *extractorService) Extract(ctx context.Context, file models.SelectedFile) (*models.ExtractionResult, error) {
	body, contentType, err := buildMultipartBody(file)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to build upload body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, s.maxResponseSize+1))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if int64(len(payload)) > s.maxResponseSize {
		return nil, &NetworkError{Err: fmt.Errorf("response exceeds %d bytes", s.maxResponseSize)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BackendError{
			StatusCode: resp.StatusCode,
			Message:    backendMessage(payload),
		}
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("malformed response body: %w", err)}
	}

	return &result, nil
}

func backendMessage(payload []byte) string {
	var body models.ErrorResponse
	if err := json.Unmarshal(payload, &body); err != nil || body.Error == "" {
		return GenericBackendError
	}
	return body.Error
}

func buildMultipartBody(file models.SelectedFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
	header.Set("Content-Type", file.ContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
