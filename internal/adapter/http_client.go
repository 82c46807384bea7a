package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lingoreel/lingoreel/internal/utils"
)

// listPerPage is the page size requested from the backend when listing a
// collection. The backend caps pages; List pages through to exhaustion.
const listPerPage = 200

// HTTPClientConfig configures the REST implementation of RecordStore.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpRecordStore struct {
	client *resty.Client

	mu     sync.RWMutex
	token  string
	userID string
}

// NewHTTPRecordStore builds a RecordStore speaking the backend's
// collection/record REST API.
func NewHTTPRecordStore(cfg HTTPClientConfig) RecordStore {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8090"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpRecordStore{client: cli}
}

func (h *httpRecordStore) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		h.mu.Lock()
		h.token, h.userID = "", ""
		h.mu.Unlock()
		return nil
	}

	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return fmt.Errorf("parse auth token: %w", err)
	}

	h.mu.Lock()
	h.token, h.userID = token, userID
	h.mu.Unlock()
	return nil
}

func (h *httpRecordStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpRecordStore) UserID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.userID
}

// listPage mirrors the backend's paginated list envelope.
type listPage struct {
	Page       int               `json:"page"`
	PerPage    int               `json:"perPage"`
	TotalPages int               `json:"totalPages"`
	Items      []json.RawMessage `json:"items"`
}

func (h *httpRecordStore) List(ctx context.Context, collection string, q ListQuery) ([]json.RawMessage, error) {
	var records []json.RawMessage

	for page := 1; ; page++ {
		req := h.authedRequest(ctx).
			SetQueryParam("page", strconv.Itoa(page)).
			SetQueryParam("perPage", strconv.Itoa(listPerPage))
		if q.Filter != "" {
			req.SetQueryParam("filter", q.Filter)
		}
		if q.Sort != "" {
			req.SetQueryParam("sort", q.Sort)
		}

		resp, err := req.Get(collectionURL(collection))
		if err != nil {
			return nil, &TransientError{Err: fmt.Errorf("list %s: %w", collection, err)}
		}
		if err = mapHTTPError(resp); err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}

		var pg listPage
		if err = json.Unmarshal(resp.Body(), &pg); err != nil {
			return nil, fmt.Errorf("decode %s list page %d: %w", collection, page, err)
		}

		records = append(records, pg.Items...)
		if page >= pg.TotalPages || len(pg.Items) == 0 {
			break
		}
	}

	return records, nil
}

func (h *httpRecordStore) Create(ctx context.Context, collection string, body any) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(collectionURL(collection))
	if err != nil {
		return &TransientError{Err: fmt.Errorf("create in %s: %w", collection, err)}
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("create in %s: %w", collection, err)
	}
	return nil
}

func (h *httpRecordStore) Update(ctx context.Context, collection, recordID string, body any) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Patch(recordURL(collection, recordID))
	if err != nil {
		return &TransientError{Err: fmt.Errorf("update %s/%s: %w", collection, recordID, err)}
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, recordID, err)
	}
	return nil
}

func (h *httpRecordStore) Delete(ctx context.Context, collection, recordID string) error {
	resp, err := h.authedRequest(ctx).Delete(recordURL(collection, recordID))
	if err != nil {
		return &TransientError{Err: fmt.Errorf("delete %s/%s: %w", collection, recordID, err)}
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, recordID, err)
	}
	return nil
}

func (h *httpRecordStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func collectionURL(collection string) string {
	return "/api/collections/" + collection + "/records"
}

func recordURL(collection, recordID string) string {
	return collectionURL(collection) + "/" + recordID
}

// mapHTTPError turns a non-2xx response into an error. A missing status
// code counts as transient; everything else is permanent.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}
	if code == 0 {
		return &TransientError{Err: errors.New("no status code in response")}
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}
	return fmt.Errorf("http %d: %s", code, body)
}
