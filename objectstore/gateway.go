package objectstore

import (
	"context"
	"errors"
	"io"

	"best-memories/models"
)

var ErrObjectNotFound = errors.New("object not found")

// Gateway is the object storage boundary used by the S3 routes.
type Gateway interface {
	SignUpload(ctx context.Context, fileName, fileType string) (models.SignedUpload, error)
	GetObject(ctx context.Context, fileName string) (*Object, error)
	HeadObject(ctx context.Context, fileName string) (*ObjectInfo, error)
	DeleteObject(ctx context.Context, fileName string) error
	PutObject(ctx context.Context, fileName, contentType string, body io.Reader) (string, error)
	PublicURL(fileName string) string
}

type ObjectInfo struct {
	ContentType   string
	ContentLength int64
	ETag          string
	LastModified  string
}

// Object must be closed by the caller.
type Object struct {
	ObjectInfo
	Body io.ReadCloser
}
