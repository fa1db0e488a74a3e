// Package docstore is a thin HTTP client for the document store API. Every
// call builds exactly one request, authenticates it with HTTP basic auth and
// hands back the raw response body. There is no retry and no caching.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const documentsSuffix = "/documents"

// StatusError is returned when the store answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

// Error is always a single line; whitespace runs in the body, including
// newlines in HTML or indented JSON error pages, collapse to one space.
func (e *StatusError) Error() string {
	body := strings.Join(strings.Fields(e.Body), " ")
	if body == "" {
		return fmt.Sprintf("request failed with status code %d", e.Code)
	}
	return fmt.Sprintf("request failed with status code %d: %s", e.Code, body)
}

type Client struct {
	cfg        Config
	logger     Logger
	httpClient *http.Client
}

// NewClient creates a client for cfg. A zero timeout leaves requests
// unbounded.
func NewClient(cfg Config, logger Logger, timeout time.Duration) *Client {
	return &Client{
		cfg:        cfg,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIRoot is the documents endpoint with the trailing /documents removed.
// Hash sync, search and preferences live directly under it.
func (c *Client) APIRoot() string {
	return strings.TrimSuffix(strings.TrimRight(c.cfg.DocumentsEndpoint, "/"), documentsSuffix)
}

// DocumentURL returns the URL addressing a single stored document.
func (c *Client) DocumentURL(docPath string) string {
	return strings.TrimRight(c.cfg.DocumentsEndpoint, "/") + "/" + strings.TrimLeft(docPath, "/")
}

// SearchURL builds the search query for text, or for a document hash when
// byHash is set.
func (c *Client) SearchURL(query string, byHash bool) string {
	u := c.APIRoot() + "/search?query=" + url.QueryEscape(query)
	if byHash {
		u += "&by_hash=true"
	}
	return u
}

// Ask the store to recalculate the hash of every document.
func (c *Client) SyncHashes(ctx context.Context) ([]byte, error) {
	return c.call(ctx, http.MethodPost, c.APIRoot()+"/sync_hashes?reset=true", nil, "")
}

// Ask the store to recalculate the hash of a single document.
func (c *Client) CalculateHash(ctx context.Context, docPath string) ([]byte, error) {
	return c.call(ctx, http.MethodPatch, c.DocumentURL(docPath), nil, "")
}

func (c *Client) DeleteDocument(ctx context.Context, docPath string) ([]byte, error) {
	return c.call(ctx, http.MethodDelete, c.DocumentURL(docPath), nil, "")
}

// Metadata fetches the document details without its content.
func (c *Client) Metadata(ctx context.Context, docPath string) ([]byte, error) {
	return c.call(ctx, http.MethodGet, c.DocumentURL(docPath)+"?details_only=true", nil, "")
}

func (c *Client) Search(ctx context.Context, query string, byHash bool) ([]byte, error) {
	return c.call(ctx, http.MethodGet, c.SearchURL(query, byHash), nil, "")
}

func (c *Client) SetPreference(ctx context.Context, pref Preference) ([]byte, error) {
	body, err := json.Marshal(pref)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to encode preference")
	}
	return c.call(ctx, http.MethodPut, c.APIRoot()+"/preferences", bytes.NewReader(body), "application/json")
}

// Transfer moves a document between two destinations.
func (c *Client) Transfer(ctx context.Context, tr TransferRequest) ([]byte, error) {
	body, err := json.Marshal(tr)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to encode transfer request")
	}
	return c.call(ctx, http.MethodPost, c.cfg.TransfersEndpoint, bytes.NewReader(body), "application/json")
}

func (c *Client) ListTransfers(ctx context.Context) ([]byte, error) {
	return c.call(ctx, http.MethodGet, c.cfg.TransfersEndpoint, nil, "")
}

// UploadDocument stores content under docPath as a multipart form with a
// single "document" file field named filename.
func (c *Client) UploadDocument(ctx context.Context, docPath, filename string, content io.Reader) ([]byte, error) {
	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	part, err := mw.CreateFormFile(UploadField, filename)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create form field")
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, errors.Wrap(err, "Failed to read upload content")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "Failed to finish multipart form")
	}
	return c.call(ctx, http.MethodPut, c.DocumentURL(docPath), &form, mw.FormDataContentType())
}

// UploadFile is UploadDocument for a file on the local filesystem.
func (c *Client) UploadFile(ctx context.Context, docPath, localPath string) ([]byte, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open "+localPath)
	}
	defer f.Close()
	return c.UploadDocument(ctx, docPath, filepath.Base(localPath), f)
}

// DownloadDocument returns the document content as a stream. The caller must
// close it.
func (c *Client) DownloadDocument(ctx context.Context, docPath string) (io.ReadCloser, error) {
	resp, err := c.do(ctx, http.MethodGet, c.DocumentURL(docPath), nil, "")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// SaveDocument streams the document into localPath, replacing whatever is
// there. The local file is only touched once the store has answered 2xx.
func (c *Client) SaveDocument(ctx context.Context, docPath, localPath string) (int64, error) {
	body, err := c.DownloadDocument(ctx, docPath)
	if err != nil {
		return 0, err
	}
	defer body.Close()
	return WriteStream(body, localPath)
}

func (c *Client) call(ctx context.Context, method, target string, body io.Reader, contentType string) ([]byte, error) {
	resp, err := c.do(ctx, method, target, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read response")
	}
	return data, nil
}

// do sends one request and checks the status. On success the caller owns
// resp.Body.
func (c *Client) do(ctx context.Context, method, target string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build request")
	}
	req.SetBasicAuth(c.cfg.User, c.cfg.Password)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	reqID := uuid.New().String()
	req.Header.Set("X-Request-Id", reqID)

	log := c.logger.WithField("request", reqID)
	log.Debugf("%s %s", method, target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	log.Debugf("status %d", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	return resp, nil
}
