package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
	"github.com/dmitrijs2005/gophtimecard/internal/common"
	"github.com/dmitrijs2005/gophtimecard/internal/logging"
	"github.com/dmitrijs2005/gophtimecard/internal/netx"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
	"github.com/google/uuid"
)

const (
	uploadPath = "upload_timecard"
	editPath   = "edit_timecard"

	maxResponseBytes = 10 << 20
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
	schemas *schemas
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the service at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := netx.ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	s, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		schemas: s,
	}, nil
}

func (c *HTTPClient) BaseURL() string { return c.baseURL.String() }

func (c *HTTPClient) Upload(ctx context.Context, img rotation.Image) ([]models.Timecard, error) {
	if len(img.Data) == 0 {
		return nil, errors.New("upload: empty image")
	}

	body, contentType, err := multipartImage(img)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, netx.JoinURL(c.baseURL, uploadPath), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	status, data, err := c.do(req, "upload")
	if err != nil {
		return nil, err
	}
	return c.decodeUpload(status, data)
}

func (c *HTTPClient) Recalculate(ctx context.Context, days []models.Day) (models.EditResult, error) {
	payload, err := models.ToEditRequest(days)
	if err != nil {
		return models.EditResult{}, err
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return models.EditResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, netx.JoinURL(c.baseURL, editPath), bytes.NewReader(b))
	if err != nil {
		return models.EditResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	status, data, err := c.do(req, "recalculate")
	if err != nil {
		return models.EditResult{}, err
	}
	if err := bodyError(status, data); err != nil {
		return models.EditResult{}, err
	}
	if err := validate(c.schemas.editResult, data); err != nil {
		return models.EditResult{}, err
	}

	var res models.EditResult
	if err := json.Unmarshal(data, &res); err != nil {
		return models.EditResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return res, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, netx.JoinURL(c.baseURL, "/"), nil)
	if err != nil {
		return err
	}
	_, _, err = c.do(req, "ping")
	return err
}

// do sends req and returns the status and body of a 2xx response.
func (c *HTTPClient) do(req *http.Request, op string) (int, []byte, error) {
	ctx := req.Context()
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	req.Header.Set("Accept", "application/json")

	log := c.logger.With("op", op, "req_id", reqID)
	log.Debug(ctx, "timecard.http.request", "method", req.Method, "url", req.URL.String())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "timecard.http.error", "err", err.Error(), "elapsed_ms", time.Since(start).Milliseconds())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, fmt.Errorf("%s: %w", op, ctxErr)
		}
		if netx.IsUnreachable(err) {
			return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%s: read body: %w", op, err)
	}

	log.Info(ctx, "timecard.http.response",
		"status", resp.StatusCode,
		"bytes", len(data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		detail := ""
		if eb.Error != nil {
			detail = *eb.Error
		}
		return resp.StatusCode, nil, newStatusError(resp.StatusCode, detail, eb.RawResponse)
	}
	return resp.StatusCode, data, nil
}

type errorBody struct {
	Error       *string `json:"error"`
	RawResponse string  `json:"raw_response"`
}

// bodyError reports an "error" field in an otherwise successful response.
func bodyError(status int, data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var eb errorBody
	if err := json.Unmarshal(trimmed, &eb); err != nil {
		return nil
	}
	if eb.Error == nil {
		return nil
	}
	return &ServiceError{Status: status, Message: *eb.Error, RawResponse: eb.RawResponse}
}

func (c *HTTPClient) decodeUpload(status int, data []byte) ([]models.Timecard, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	if trimmed[0] == '[' {
		if err := validate(c.schemas.upload, trimmed); err != nil {
			return nil, err
		}
		var cards []models.Timecard
		if err := json.Unmarshal(trimmed, &cards); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return cards, nil
	}

	if err := bodyError(status, trimmed); err != nil {
		return nil, err
	}
	if err := validate(c.schemas.editResult, trimmed); err != nil {
		return nil, err
	}
	var res models.EditResult
	if err := json.Unmarshal(trimmed, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return []models.Timecard{{Days: res.Entries, TotalHoursWorked: res.TotalHoursWorked}}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func multipartImage(img rotation.Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := img.Filename
	if filename == "" {
		filename = "timecard"
	}
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", mimeType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
