package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/net/html"
)

// Write packages the book back into a new EPUB at outPath. Mutated
// document trees are re-serialized; every other entry is copied through
// unchanged. The mimetype entry is written first and uncompressed, as the
// OCF container format requires.
func (b *Book) Write(outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating epub: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	mimetype, ok := b.entries[mimetypePath]
	if !ok {
		mimetype = []byte(epubMimetype)
	}
	w, err := zw.CreateHeader(&zip.FileHeader{Name: mimetypePath, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("writing mimetype: %w", err)
	}
	if _, err := w.Write(mimetype); err != nil {
		return fmt.Errorf("writing mimetype: %w", err)
	}

	for _, name := range b.entryOrder {
		if name == mimetypePath {
			continue
		}

		data := b.entries[name]
		if doc, ok := b.docByName[name]; ok && !doc.failed {
			var buf bytes.Buffer
			if err := html.Render(&buf, doc.Root); err != nil {
				return fmt.Errorf("serializing %s: %w", name, err)
			}
			data = buf.Bytes()
		}

		method := b.methods[name]
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing epub: %w", err)
	}
	return nil
}
