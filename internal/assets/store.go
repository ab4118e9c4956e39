package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofrs/uuid/v5"
)

const (
	// URLPrefix is where the assets root is served from.
	URLPrefix = "/assets"
	newsDir   = "news_assets"

	// mimetype needs at most this many bytes to detect a type.
	sniffLen = 3072
)

var (
	ErrInvalidCorrelationID = errors.New("invalid correlation id")

	correlationIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// ValidCorrelationID reports whether id is usable as an asset directory name.
func ValidCorrelationID(id string) bool {
	return correlationIDRe.MatchString(id)
}

// NewCorrelationID returns a fresh random correlation id for a news draft.
func NewCorrelationID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Store keeps uploaded news images under <root>/news_assets/<correlation id>/.
type Store struct {
	root string
	log  *slog.Logger
}

func NewStore(root string, log *slog.Logger) *Store {
	return &Store{
		root: root,
		log:  log,
	}
}

func (s *Store) dir(correlationID string) string {
	return filepath.Join(s.root, newsDir, correlationID)
}

// Save writes r under a fresh random name that keeps the extension of
// filename and returns the public path of the file. If filename has no
// extension it is detected from the content.
func (s *Store) Save(correlationID, filename string, r io.Reader) (string, error) {
	if !ValidCorrelationID(correlationID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCorrelationID, correlationID)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || ext == "." {
		head := make([]byte, sniffLen)
		n, err := io.ReadFull(r, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read upload: %w", err)
		}
		head = head[:n]
		ext = mimetype.Detect(head).Extension()
		r = io.MultiReader(bytes.NewReader(head), r)
	}

	dir := s.dir(correlationID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create asset dir: %w", err)
	}

	name := uuid.Must(uuid.NewV4()).String() + ext
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create asset file: %w", err)
	}

	defer func() {
		if errClose := file.Close(); errClose != nil {
			s.log.Error("failed to close asset file", "error", errClose)
		}
	}()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write asset file: %w", err)
	}

	return path.Join(URLPrefix, newsDir, correlationID, name), nil
}

// Purge removes every asset of correlationID. A missing directory is not an
// error.
func (s *Store) Purge(correlationID string) error {
	if !ValidCorrelationID(correlationID) {
		return fmt.Errorf("%w: %q", ErrInvalidCorrelationID, correlationID)
	}

	if err := os.RemoveAll(s.dir(correlationID)); err != nil {
		return fmt.Errorf("remove asset dir: %w", err)
	}

	return nil
}
