// Package output turns rendered Markdown into bytes on disk. Writes replace the
// target atomically and removals tolerate a missing file.
package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/textutil"
)

// Options controls how documents are encoded.
type Options struct {
	Encoding Encoding
	// Normalize applies Unicode NFC to the rendered text.
	Normalize bool
	// Fingerprint prepends YAML frontmatter carrying a content fingerprint.
	Fingerprint bool
}

// Writer writes and removes document files.
type Writer struct {
	opts Options
}

// NewWriter creates a Writer.
func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts}
}

// Encode produces the exact bytes Write stores for a document titled title.
func (w *Writer) Encode(title string, body []byte) ([]byte, error) {
	text := string(body)
	if w.opts.Normalize {
		text = textutil.NFC(text)
	}
	if w.opts.Fingerprint {
		fm, err := fingerprintFrontmatter(title, text)
		if err != nil {
			return nil, err
		}
		text = fm + text
	}
	codec := w.opts.Encoding.codec()
	if codec == nil {
		return []byte(text), nil
	}
	out, err := codec.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "encode document").
			WithContext("encoding", string(w.opts.Encoding)).
			Build()
	}
	return out, nil
}

// Write encodes body and replaces path with it. The content is written to a
// temporary file in the same directory and renamed into place.
func (w *Writer) Write(path, title string, body []byte) error {
	data, err := w.Encode(title, body)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fsError(err, "create output directory", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fsError(err, "create temp file", dir)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fsError(err, "write temp file", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fsError(err, "sync temp file", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return fsError(err, "close temp file", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fsError(err, "chmod temp file", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fsError(err, "atomic rename", path)
	}
	committed = true
	return nil
}

// Remove deletes path, reporting whether a file was actually removed.
func (w *Writer) Remove(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fsError(err, "remove stale document", path)
	}
}

// Decode reverses the configured encoding, for callers reading documents back.
func (w *Writer) Decode(data []byte) ([]byte, error) {
	codec := w.opts.Encoding.codec()
	if codec == nil {
		return data, nil
	}
	return codec.NewDecoder().Bytes(data)
}

// StripFrontmatter removes a leading YAML frontmatter block if present.
func StripFrontmatter(body []byte) []byte {
	if !bytes.HasPrefix(body, []byte("---\n")) {
		return body
	}
	rest := body[4:]
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		return body
	}
	return rest[end+5:]
}

func fingerprintFrontmatter(title, body string) (string, error) {
	fields := map[string]any{"title": title}
	hashInput, err := yaml.Marshal(fields)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryInternal, "serialize frontmatter").Build()
	}
	fields[mdfp.FingerprintField] = mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(hashInput), "\n"), body)
	serialized, err := yaml.Marshal(fields)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryInternal, "serialize frontmatter").Build()
	}
	return "---\n" + string(serialized) + "---\n", nil
}

func fsError(err error, message, path string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, message).WithContext("path", path).Build()
}
