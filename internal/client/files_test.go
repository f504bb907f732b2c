package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFilesMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Inspect the raw body: mime/multipart parsing base-names the
		// part filenames, but the backend reads the slashed name as
		// sent, which is what keeps uploaded folders intact.
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body := string(raw)
		assert.Contains(t, body, `filename="a.md"`)
		assert.Contains(t, body, `filename="sub/b.txt"`)
		assert.Contains(t, body, "alpha")
		assert.Contains(t, body, "beta")

		r.Body = io.NopCloser(strings.NewReader(body))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "docs", r.FormValue("directory"))
		assert.Equal(t, "u1", r.FormValue("user_id"))
		require.Len(t, r.MultipartForm.File["files"], 2)

		json.NewEncoder(w).Encode(UploadResult{
			UploadedFiles: []string{"docs/a.md", "docs/sub/b.txt"},
			Count:         2,
		})
	}))
	defer srv.Close()

	files := []UploadFile{
		{Name: "a.md", Reader: strings.NewReader("alpha")},
		{Name: "sub/b.txt", Reader: strings.NewReader("beta")},
	}
	result, err := New(srv.URL).UploadFiles(context.Background(), files, "docs", "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []string{"docs/a.md", "docs/sub/b.txt"}, result.UploadedFiles)
}

func TestUploadFilesEmpty(t *testing.T) {
	_, err := New("http://unused").UploadFiles(context.Background(), nil, "", "u1")
	require.Error(t, err)
}

func TestUploadFailureSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Failed to save big.bin: disk full"})
	}))
	defer srv.Close()

	files := []UploadFile{{Name: "big.bin", Reader: strings.NewReader("x")}}
	_, err := New(srv.URL).UploadFiles(context.Background(), files, "", "u1")
	require.Error(t, err)
	assert.Equal(t, "Failed to save big.bin: disk full", Detail(err, "upload failed"))
}

func TestMakeDirectoryQueryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "research/q3", r.URL.Query().Get("path"))
		json.NewEncoder(w).Encode(map[string]string{"detail": "Directory created", "path": "research/q3"})
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).MakeDirectory(context.Background(), "research/q3"))
}

func TestGetFilesSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(FilesSummary{
			TotalFiles:        5,
			FileTypes:         map[string]int{".md": 3, ".bin": 2},
			AIAccessibleCount: 3,
			AIAccessibleFiles: []AIFile{{Path: "a.md", Type: ".md", Size: 10}},
		})
	}))
	defer srv.Close()

	summary, err := New(srv.URL).GetFilesSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, summary.TotalFiles)
	assert.Equal(t, 3, summary.AIAccessibleCount)
	assert.Len(t, summary.AIAccessibleFiles, 1)
}
