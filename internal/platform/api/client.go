package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

// Client talks to the ClassMood backend. It performs no retries: every
// failed call is terminal for the action that issued it.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type FileRecord struct {
	ID         int64
	Filename   string
	UploadedAt time.Time
}

type SeriesPoint struct {
	T     float64 `json:"t"`
	Value float64 `json:"value"`
}

type UploadFile struct {
	Name   string
	Reader io.Reader
}

type UploadResult struct {
	Filename   string `json:"filename"`
	StoredPath string `json:"path"`
}

func (c *Client) BootID(ctx context.Context) (string, error) {
	var payload struct {
		BootID string `json:"boot_id"`
	}
	if err := c.getJSON(ctx, "/meta/boot", "", &payload); err != nil {
		return "", err
	}
	if payload.BootID == "" {
		return "", fmt.Errorf("%w: empty boot_id", apperrors.ErrMalformedResponse)
	}
	return payload.BootID, nil
}

// Login exchanges username/password for a bearer token. The endpoint
// expects form-encoded credentials, not JSON.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.do(req, &payload); err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access_token", apperrors.ErrMalformedResponse)
	}
	return payload.AccessToken, nil
}

func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", fmt.Errorf("encode register payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build register request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		Msg string `json:"msg"`
	}
	if err := c.do(req, &payload); err != nil {
		return "", err
	}
	return payload.Msg, nil
}

func (c *Client) Me(ctx context.Context, token string) (string, error) {
	var payload struct {
		Username string `json:"username"`
	}
	if err := c.getJSON(ctx, "/auth/me", token, &payload); err != nil {
		return "", err
	}
	if payload.Username == "" {
		return "", fmt.Errorf("%w: empty username", apperrors.ErrMalformedResponse)
	}
	return payload.Username, nil
}

func (c *Client) ListFiles(ctx context.Context, token string) ([]FileRecord, error) {
	var payload struct {
		Files []struct {
			ID         int64  `json:"id"`
			Filename   string `json:"filename"`
			UploadedAt string `json:"uploaded_at"`
		} `json:"files"`
	}
	if err := c.getJSON(ctx, "/media/files", token, &payload); err != nil {
		return nil, err
	}
	out := make([]FileRecord, 0, len(payload.Files))
	for _, f := range payload.Files {
		out = append(out, FileRecord{
			ID:         f.ID,
			Filename:   f.Filename,
			UploadedAt: parseTimestamp(f.UploadedAt),
		})
	}
	return out, nil
}

func (c *Client) Upload(ctx context.Context, token string, files []UploadFile) ([]UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files to upload", apperrors.ErrInvalidInput)
	}
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("copy %s into form: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/media/upload", buf)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	setBearer(req, token)

	var payload struct {
		Results []UploadResult `json:"results"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *Client) DeleteFile(ctx context.Context, token string, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/media/files/%d", c.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	setBearer(req, token)
	return c.do(req, nil)
}

func (c *Client) Analyze(ctx context.Context, token string, id int64) ([]SeriesPoint, error) {
	var payload struct {
		Series *[]SeriesPoint `json:"series"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/media/files/%d/analyze", id), token, &payload); err != nil {
		return nil, err
	}
	if payload.Series == nil {
		return nil, fmt.Errorf("%w: missing series field", apperrors.ErrMalformedResponse)
	}
	return *payload.Series, nil
}

// Download returns the file body and the server-provided filename. The
// caller owns the returned ReadCloser.
func (c *Client) Download(ctx context.Context, token string, id int64) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/media/files/%d/download", c.baseURL, id), nil)
	if err != nil {
		return nil, "", fmt.Errorf("build download request: %w", err)
	}
	setBearer(req, token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, "", statusError(resp)
	}
	return resp.Body, filenameFromDisposition(resp.Header.Get("Content-Disposition")), nil
}

func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	setBearer(req, token)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", apperrors.ErrMalformedResponse, req.URL.Path, err)
	}
	return nil
}

// statusError maps a non-2xx response to an error, preferring the
// backend's {"detail": ...} message when one is present.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := struct {
		Detail string `json:"detail"`
	}{}
	_ = json.Unmarshal(body, &detail)
	msg := detail.Detail
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if resp.StatusCode == http.StatusUnauthorized {
		if msg == "" {
			return apperrors.ErrUnauthorized
		}
		return fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, msg)
	}
	if msg == "" {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return fmt.Errorf("server returned %s: %s", resp.Status, msg)
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// parseTimestamp tolerates both RFC3339 and the offset-less ISO form the
// backend emits for naive datetimes.
func parseTimestamp(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func filenameFromDisposition(header string) string {
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if value, ok := strings.CutPrefix(part, "filename="); ok {
			return strings.Trim(value, `"`)
		}
	}
	return ""
}
