package commands

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// FileUpload is a file received from a client, not yet stored.
type FileUpload struct {
	Name        string
	ContentType string
	Content     io.Reader

	// Size is -1 when unknown.
	Size int64
}

func (f FileUpload) validate() error {
	if f.Content == nil {
		return errs.NewValueIsRequiredError("file")
	}
	if strings.TrimSpace(f.Name) == "" {
		return errs.NewValueIsRequiredError("file_name")
	}
	return nil
}

func (f FileUpload) store(ctx context.Context, storage ports.FileStorage) (kernel.FileRef, error) {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return storage.Upload(ctx, strings.TrimSpace(f.Name), contentType, f.Content, f.Size)
}

// discardFile removes a stored file that ended up unreferenced. Failures are
// logged only; the object is left for manual cleanup.
func discardFile(ctx context.Context, storage ports.FileStorage, logger *slog.Logger, ref kernel.FileRef) {
	if ref.IsZero() {
		return
	}
	if err := storage.Delete(context.WithoutCancel(ctx), ref); err != nil {
		logger.WarnContext(ctx, "failed to delete unreferenced file", "key", ref.Key(), "error", err)
	}
}
