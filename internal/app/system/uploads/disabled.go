// internal/app/system/uploads/disabled.go
package uploads

import (
	"context"
	"errors"
	"io"
)

// Disabled is the uploader used when no storage backend is configured.
// Requests with attachments fail cleanly instead of panicking on a nil
// uploader.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, filename, mimetype, contextTag string, body io.Reader) (string, error) {
	return "", errors.New("file storage is not configured")
}
