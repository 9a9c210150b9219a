package invoice

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArtifactStore persists rendered invoice PDFs and serves them back
// for download.
type ArtifactStore interface {
	// Store saves PDF bytes and returns the storage path recorded on
	// the order.
	Store(ctx context.Context, sellerID, orderID uuid.UUID, pdfData []byte) (string, error)
	// Get opens a previously stored PDF by its path
	Get(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileSystemStore keeps invoice PDFs on the local file system under
// {base}/{seller_id}/{year}/{order_id}.pdf
type FileSystemStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewFileSystemStore creates the store and its base directory
func NewFileSystemStore(baseDir string, logger *zap.Logger) (*FileSystemStore, error) {
	if baseDir == "" {
		baseDir = "./data/invoices"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed,
			fmt.Sprintf("failed to create invoice directory: %s", baseDir), err)
	}

	return &FileSystemStore{baseDir: baseDir, logger: logger}, nil
}

func (s *FileSystemStore) Store(ctx context.Context, sellerID, orderID uuid.UUID, pdfData []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", NewRenderError(ErrCodeStorageFailed, "operation cancelled", ctx.Err())
	default:
	}

	if sellerID == uuid.Nil || orderID == uuid.Nil {
		return "", NewRenderError(ErrCodeStorageFailed, "seller and order IDs are required", nil)
	}
	if len(pdfData) == 0 {
		return "", NewRenderError(ErrCodeStorageFailed, "PDF data is empty", nil)
	}

	relPath := filepath.Join(
		sellerID.String(),
		fmt.Sprintf("%d", time.Now().Year()),
		orderID.String()+".pdf",
	)
	fullPath := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to create invoice subdirectory", err)
	}
	if err := os.WriteFile(fullPath, pdfData, 0o644); err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to write invoice file", err)
	}

	s.logger.Debug("invoice stored",
		zap.String("path", relPath),
		zap.Int("bytes", len(pdfData)),
	)
	return relPath, nil
}

func (s *FileSystemStore) Get(_ context.Context, path string) (io.ReadCloser, error) {
	cleaned, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cleaned)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewRenderError(ErrCodeStorageFailed, "invoice file not found: "+path, err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open invoice file", err)
	}
	return f, nil
}

// resolve joins the path under the base directory and rejects traversal
// outside of it.
func (s *FileSystemStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.Join(s.baseDir, path))

	base, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve base directory", err)
	}
	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve invoice path", err)
	}
	if abs != base && !strings.HasPrefix(abs, base+string(os.PathSeparator)) {
		return "", NewRenderError(ErrCodeStorageFailed, "invalid invoice path: "+path, nil)
	}
	return abs, nil
}

var _ ArtifactStore = (*FileSystemStore)(nil)
