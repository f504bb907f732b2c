package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// ListFiles returns relative file paths under the workspace, optionally
// inside one subdirectory.
func (c *Client) ListFiles(ctx context.Context, subdir string) ([]string, error) {
	var query url.Values
	if subdir != "" {
		query = url.Values{"subdir": {subdir}}
	}

	var paths []string
	if err := c.do(ctx, http.MethodGet, "/api/files/list", query, nil, &paths, 0); err != nil {
		return nil, err
	}
	return paths, nil
}

// ReadFile returns the raw contents of a workspace file as plain text.
func (c *Client) ReadFile(ctx context.Context, path string) (string, error) {
	query := url.Values{"path": {path}}
	resp, err := c.send(ctx, http.MethodGet, "/api/files/raw", query, nil, "", 0)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if err := checkStatus(resp.StatusCode, body); err != nil {
		return "", err
	}
	return string(body), nil
}

// MakeDirectory creates a directory (including parents) in the workspace.
func (c *Client) MakeDirectory(ctx context.Context, path string) error {
	query := url.Values{"path": {path}}
	return c.do(ctx, http.MethodPost, "/api/files/mkdir", query, nil, nil, 0)
}

// UploadFile is one file staged for upload. Name may contain slashes; the
// server preserves that structure, which is how whole-folder uploads keep
// their shape.
type UploadFile struct {
	Name   string
	Reader io.Reader
}

// UploadResult reports what the server stored.
type UploadResult struct {
	UploadedFiles []string `json:"uploaded_files"`
	Count         int      `json:"count"`
}

// UploadFiles sends a multipart upload of one or more files into the given
// workspace directory ("" for the root). Uploads can be large and trigger
// server-side indexing, so they run on the AI timeout.
func (c *Client) UploadFiles(ctx context.Context, files []UploadFile, directory, userID string) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeMultipart(mw, files, directory, userID)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	resp, err := c.send(ctx, http.MethodPost, "/api/files/upload", nil, pr, mw.FormDataContentType(), c.aiTimeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if err := checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	var result UploadResult
	if err := unmarshalJSON(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func writeMultipart(mw *multipart.Writer, files []UploadFile, directory, userID string) error {
	if err := mw.WriteField("directory", directory); err != nil {
		return fmt.Errorf("write directory field: %w", err)
	}
	if err := mw.WriteField("user_id", userID); err != nil {
		return fmt.Errorf("write user_id field: %w", err)
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return fmt.Errorf("create part for %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	return nil
}

// AIFile is one agent-readable workspace file.
type AIFile struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// FilesSummary reports which workspace files the agent subsystem can read.
type FilesSummary struct {
	TotalFiles        int            `json:"total_files"`
	FileTypes         map[string]int `json:"file_types"`
	AIAccessibleCount int            `json:"ai_accessible_count"`
	AIAccessibleFiles []AIFile       `json:"ai_accessible_files"`
	WorkspaceTools    []string       `json:"workspace_tools"`
}

// GetFilesSummary fetches the AI accessibility summary.
func (c *Client) GetFilesSummary(ctx context.Context) (*FilesSummary, error) {
	var summary FilesSummary
	if err := c.do(ctx, http.MethodGet, "/api/files/summary", nil, nil, &summary, 0); err != nil {
		return nil, err
	}
	return &summary, nil
}
