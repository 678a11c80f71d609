// Package fs provides file-based persistence for generated brochures.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/brochure"
)

// brochureSuffix marks files created by this package. Cleanup only touches
// files carrying it so unrelated files in the output directory survive.
const brochureSuffix = "_brochure_"

// FileName builds the brochure file name for a result.
// Example: Acme Corp, "en", 2026-08-26T10:30:00 → acme_corp_brochure_en_20260826_103000.md
func FileName(companyName, language string, t time.Time) string {
	slug := Slugify(companyName)
	if slug == "" {
		slug = "company"
	}
	return slug + brochureSuffix + language + "_" + t.Format("20060102_150405") + ".md"
}

// Slugify lowercases a name and replaces non-alphanumeric runs with
// underscores. Deterministic: the same name always yields the same slug.
func Slugify(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	return b.String()
}

// Ensure Writer implements brochure.ResultWriter at compile time.
var _ brochure.ResultWriter = (*Writer)(nil)

// Writer saves brochures as markdown files, with an optional JSON metadata
// sidecar next to each brochure.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir. The directory is created
// on first write.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteResult saves the brochure content and, when the run requested it,
// a metadata sidecar. It sets result.FilePath to the saved brochure path.
func (w *Writer) WriteResult(ctx context.Context, result *brochure.GenerationResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return brochure.Errorf(brochure.EINTERNAL, "create output dir: %v", err)
	}

	meta := result.Metadata
	name := FileName(meta.CompanyName, meta.Language, meta.StartedAt)
	path := filepath.Join(w.baseDir, name)

	if err := os.WriteFile(path, []byte(result.Content), 0644); err != nil {
		return brochure.Errorf(brochure.EINTERNAL, "write brochure: %v", err)
	}
	result.FilePath = path
	return nil
}

// WriteMetadata saves the metadata sidecar for a result. The sidecar shares
// the brochure's base name with a .json extension.
func (w *Writer) WriteMetadata(ctx context.Context, result *brochure.GenerationResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", brochure.Errorf(brochure.EINTERNAL, "create output dir: %v", err)
	}

	meta := result.Metadata
	name := FileName(meta.CompanyName, meta.Language, meta.StartedAt)
	path := filepath.Join(w.baseDir, strings.TrimSuffix(name, ".md")+".json")

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", brochure.Errorf(brochure.EINTERNAL, "encode metadata: %v", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", brochure.Errorf(brochure.EINTERNAL, "write metadata: %v", err)
	}
	return path, nil
}

// CleanupOlderThan removes generated brochure and metadata files whose
// modification time is before the cutoff. It returns the number of files
// removed. Files without the brochure suffix are never touched.
func (w *Writer) CleanupOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(w.baseDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, brochure.Errorf(brochure.EINTERNAL, "read output dir: %v", err)
	}

	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() || !strings.Contains(entry.Name(), brochureSuffix) {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".md" && ext != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(w.baseDir, entry.Name())); err != nil {
			return removed, brochure.Errorf(brochure.EINTERNAL, "remove %s: %v", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
