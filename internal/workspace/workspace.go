// Package workspace holds the client-side helpers around the shared file
// workspace: directory grouping for display, text-preview detection, and
// staging local files or folders for upload.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/edgehq/edge-cli/internal/client"
)

// RootGroup is the display bucket for workspace files with no directory
// component.
const RootGroup = "[root]"

// textExtensions are the file types shown inline as text. Anything else
// is download-only.
var textExtensions = map[string]struct{}{
	".py":   {},
	".js":   {},
	".ts":   {},
	".tsx":  {},
	".jsx":  {},
	".html": {},
	".css":  {},
	".md":   {},
	".txt":  {},
	".json": {},
	".yaml": {},
	".yml":  {},
	".sql":  {},
}

// IsTextFile reports whether a workspace path can be previewed as text.
func IsTextFile(path string) bool {
	_, ok := textExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Group is one display bucket of workspace files.
type Group struct {
	Directory string
	Files     []string
}

// GroupByDirectory buckets relative workspace paths by their first path
// segment. Paths without a separator land in the root group. Groups come
// back sorted by directory name with the root group first; files keep
// their listing order.
func GroupByDirectory(paths []string) []Group {
	buckets := make(map[string][]string)
	for _, p := range paths {
		dir := RootGroup
		if i := strings.IndexRune(p, '/'); i >= 0 {
			dir = p[:i]
		}
		buckets[dir] = append(buckets[dir], p)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		if name != RootGroup {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := buckets[RootGroup]; ok {
		names = append([]string{RootGroup}, names...)
	}

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{Directory: name, Files: buckets[name]})
	}
	return groups
}

// DownloadName returns the local file name for a fetched workspace path.
func DownloadName(path string) string {
	name := filepath.Base(filepath.FromSlash(path))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "download"
	}
	return name
}

// Stage prepares local paths for upload. Files are staged under their
// base name; directories are walked recursively and their files staged
// under slash-separated paths relative to the directory's parent, so the
// folder keeps its shape server-side. The returned closer releases the
// opened files and must be called after the upload.
func Stage(paths []string) ([]client.UploadFile, func(), error) {
	var files []client.UploadFile
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	stage := func(localPath, name string) error {
		f, err := os.Open(localPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", localPath, err)
		}
		opened = append(opened, f)
		files = append(files, client.UploadFile{Name: name, Reader: f})
		return nil
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			if err := stage(p, filepath.Base(p)); err != nil {
				closeAll()
				return nil, nil, err
			}
			continue
		}

		root := filepath.Clean(p)
		base := filepath.Base(root)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			return stage(path, filepath.ToSlash(filepath.Join(base, rel)))
		})
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}

	if len(files) == 0 {
		closeAll()
		return nil, nil, fmt.Errorf("nothing to upload")
	}
	return files, closeAll, nil
}
