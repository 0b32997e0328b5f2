package loader

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"docq/internal/domain"
)

// Loader enumerates local text documents. Only .txt and .md files are
// picked up; format extraction for anything richer is out of scope.
type Loader struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Load expands each path (globs allowed, directories walked one level) into
// documents. Matches are sorted so the document order, and with it the
// global chunk id sequence, is deterministic. Unreadable files are skipped
// with a warning rather than failing the whole run.
func (l *Loader) Load(paths []string) ([]domain.Document, error) {
	var files []string
	for _, p := range paths {
		expanded, err := expand(p)
		if err != nil {
			return nil, err
		}
		files = append(files, expanded...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .txt or .md documents found")
	}
	docs := make([]domain.Document, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			l.log.Warn("skipping unreadable file", zap.String("path", f), zap.Error(err))
			continue
		}
		docs = append(docs, domain.Document{
			ID:      hashPath(f),
			Path:    f,
			Content: string(data),
		})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no readable documents among %d files", len(files))
	}
	return docs, nil
}

func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := filepath.Join(path, e.Name())
			if supported(name) {
				files = append(files, name)
			}
		}
		sort.Strings(files)
		return files, nil
	}
	matches, err := filepath.Glob(path)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []string{path}
	}
	var files []string
	for _, m := range matches {
		if supported(m) {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func supported(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".txt") || strings.HasSuffix(lower, ".md")
}

func hashPath(path string) string {
	h := sha1.Sum([]byte(path))
	return hex.EncodeToString(h[:8])
}
