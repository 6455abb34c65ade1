// Package client is a thin programmatic client for the relaybox HTTP API,
// used by the relaybox command-line tool.
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
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UploadedFile mirrors the upload response payload.
type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}

// FileEntry is one row of a storage listing.
type FileEntry struct {
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}

// envelope is the gateway's uniform response shape, with every payload
// field the client cares about flattened in.
type envelope struct {
	Success   bool          `json:"success"`
	Status    string        `json:"status"`
	Message   string        `json:"message"`
	Error     string        `json:"error"`
	MessageID string        `json:"messageId"`
	File      *UploadedFile `json:"file"`
	Files     []FileEntry   `json:"files"`
}

// Client talks to one relaybox gateway.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the gateway at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Health reports the gateway's health message.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return "", err
	}
	env, err := c.do(req)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// SendMail dispatches one message and returns its message id.
func (c *Client) SendMail(ctx context.Context, to, subject, text, html string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"to": to, "subject": subject, "text": text, "html": html,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/mail/send", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	env, err := c.do(req)
	if err != nil {
		return "", err
	}
	return env.MessageID, nil
}

// Upload sends the file at path as a multipart upload and returns the
// stored metadata. The body is streamed through a pipe, so the local file
// is never read into memory as a whole.
func (c *Client) Upload(ctx context.Context, path string) (*UploadedFile, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		fw, err := w.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(fw, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(w.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/storage/upload", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if env.File == nil {
		return nil, fmt.Errorf("upload response carried no file metadata")
	}
	return env.File, nil
}

// ListFiles enumerates the gateway's storage directory.
func (c *Client) ListFiles(ctx context.Context) ([]FileEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/storage/files", nil)
	if err != nil {
		return nil, err
	}
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.Files, nil
}

// Delete removes one stored file by its stored name.
func (c *Client) Delete(ctx context.Context, storedName string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/api/storage/files/"+url.PathEscape(storedName), nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// Download streams one stored file into destPath and returns the byte
// count written.
func (c *Client) Download(ctx context.Context, storedName, destPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/storage/download/"+url.PathEscape(storedName), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, decodeFailure(resp)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return 0, err
	}
	defer dest.Close()

	return io.Copy(dest, resp.Body)
}

// do runs a JSON request/response cycle and converts error envelopes into
// Go errors.
func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, decodeFailure(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("malformed response (%s): %w", resp.Status, err)
	}
	return &env, nil
}

// decodeFailure turns an error-envelope response into an error carrying
// the gateway's message.
func decodeFailure(resp *http.Response) error {
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Message == "" {
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	if env.Error != "" {
		return fmt.Errorf("%s: %s", env.Message, env.Error)
	}
	return fmt.Errorf("%s", env.Message)
}
