// Package document implements the repository interfaces on top of a single
// JSON document holding every household, pantry and recipe. The document
// is read from and written to a Backend: a local file or a remote HTTP
// endpoint.
package document

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

var (
	// ErrBackendUnavailable wraps transport failures of a backend.
	ErrBackendUnavailable = errors.New("document backend unavailable")
	// ErrRevisionMismatch is returned by a conditional save when the
	// stored dataset changed since it was loaded.
	ErrRevisionMismatch = errors.New("stored dataset changed since load")
)

// Backend loads and saves the raw dataset. Load returns a nil document when
// none exists yet, together with the revision of what it read. Save writes
// only while the stored revision still equals rev and returns the new
// revision; an empty rev writes unconditionally.
type Backend interface {
	Load(ctx context.Context) (data []byte, rev string, err error)
	Save(ctx context.Context, data []byte, rev string) (string, error)
}

const (
	lockSuffix   = ".lock"
	lockPoll     = 10 * time.Millisecond
	lockWait     = 5 * time.Second
	lockStaleAge = 30 * time.Second
)

// FileBackend keeps the dataset in a single file. Its revision is the
// content hash. Saves hold a lock file next to the dataset, compare the
// revision, then write a temp file in the same directory and rename it over
// the target.
type FileBackend struct {
	fs   afero.Fs
	path string
}

func contentRevision(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewFileBackend returns a backend for path on the OS filesystem.
func NewFileBackend(path string) *FileBackend {
	return NewFileBackendFs(afero.NewOsFs(), path)
}

// NewFileBackendFs returns a backend for path on fs.
func NewFileBackendFs(fs afero.Fs, path string) *FileBackend {
	return &FileBackend{fs: fs, path: path}
}

// Path returns the dataset file path.
func (b *FileBackend) Path() string {
	return b.path
}

// Load reads the dataset file. A missing file has the revision of empty
// content.
func (b *FileBackend) Load(_ context.Context) ([]byte, string, error) {
	data, err := b.read()
	if err != nil {
		return nil, "", err
	}
	rev := contentRevision(data)
	if len(data) == 0 {
		return nil, rev, nil
	}
	return data, rev, nil
}

func (b *FileBackend) read() ([]byte, error) {
	data, err := afero.ReadFile(b.fs, b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrBackendUnavailable, b.path, err)
	}
	return data, nil
}

// Save replaces the dataset file atomically when its content still has
// revision rev.
func (b *FileBackend) Save(ctx context.Context, data []byte, rev string) (string, error) {
	dir := filepath.Dir(b.path)
	if err := b.fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrBackendUnavailable, dir, err)
	}

	unlock, err := b.lock(ctx)
	if err != nil {
		return "", err
	}
	defer unlock()

	if rev != "" {
		current, err := b.read()
		if err != nil {
			return "", err
		}
		if contentRevision(current) != rev {
			return "", fmt.Errorf("%w: %s", ErrRevisionMismatch, b.path)
		}
	}
	if err := b.replace(dir, data); err != nil {
		return "", err
	}
	return contentRevision(data), nil
}

// lock creates the lock file exclusively. A lock older than lockStaleAge is
// taken to be left over from a crashed writer and removed.
func (b *FileBackend) lock(ctx context.Context) (func(), error) {
	name := b.path + lockSuffix
	deadline := time.Now().Add(lockWait)
	for {
		f, err := b.fs.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_ = f.Close()
			return func() { _ = b.fs.Remove(name) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: lock %s: %v", ErrBackendUnavailable, name, err)
		}
		if info, statErr := b.fs.Stat(name); statErr == nil && time.Since(info.ModTime()) > lockStaleAge {
			_ = b.fs.Remove(name)
			continue
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s is held by another writer", ErrBackendUnavailable, name)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPoll):
		}
	}
}

func (b *FileBackend) replace(dir string, data []byte) error {
	tmp, err := afero.TempFile(b.fs, dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", ErrBackendUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("%w: write: %v", ErrBackendUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("%w: sync: %v", ErrBackendUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("%w: close: %v", ErrBackendUnavailable, err)
	}
	if err := b.fs.Rename(tmpName, b.path); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// DefaultHTTPTimeout bounds every remote load and save.
const DefaultHTTPTimeout = 10 * time.Second

// HTTPBackend reads the dataset with GET and writes it with POST to the
// same URL. The revision is the ETag of the response; saves send it as
// If-Match and a 412 reply means the dataset changed. Endpoints that send
// no ETag get unconditional writes. There is no retry; failed calls surface
// to the caller.
type HTTPBackend struct {
	url    string
	token  string
	client *http.Client
}

// NewHTTPBackend creates a remote backend. token, when set, is sent as a
// bearer token.
func NewHTTPBackend(url, token string, timeout time.Duration) *HTTPBackend {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTPBackend{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

// Load fetches the dataset. A 404 or an empty body means no dataset yet.
func (b *HTTPBackend) Load(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	b.authorize(req)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	rev := resp.Header.Get("ETag")
	if resp.StatusCode == http.StatusNotFound {
		return nil, rev, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: GET %s: status %d", ErrBackendUnavailable, b.url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read body: %v", ErrBackendUnavailable, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, rev, nil
	}
	return data, rev, nil
}

// Save posts the full dataset.
func (b *HTTPBackend) Save(ctx context.Context, data []byte, rev string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if rev != "" {
		req.Header.Set("If-Match", rev)
	}
	b.authorize(req)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusPreconditionFailed {
		return "", fmt.Errorf("%w: POST %s", ErrRevisionMismatch, b.url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: POST %s: status %d", ErrBackendUnavailable, b.url, resp.StatusCode)
	}
	return resp.Header.Get("ETag"), nil
}

func (b *HTTPBackend) authorize(req *http.Request) {
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
}
