package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"best-memories/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const SignedURLExpiry = 60 * time.Second

type S3GatewayConfig struct {
	Client    *s3.Client
	Bucket    string
	PublicURL string
}

type S3Gateway struct {
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
	bucket    string
	publicURL string
}

func NewS3Gateway(config S3GatewayConfig) *S3Gateway {
	return &S3Gateway{
		client:    config.Client,
		presigner: s3.NewPresignClient(config.Client),
		uploader:  manager.NewUploader(config.Client),
		bucket:    config.Bucket,
		publicURL: BaseURL(config.PublicURL, config.Bucket),
	}
}

func (g *S3Gateway) SignUpload(ctx context.Context, fileName, fileType string) (models.SignedUpload, error) {
	req, err := g.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(fileName),
		ContentType: aws.String(fileType),
		ACL:         types.ObjectCannedACLPublicRead,
	}, s3.WithPresignExpires(SignedURLExpiry))
	if err != nil {
		return models.SignedUpload{}, fmt.Errorf("presign put %s: %w", fileName, err)
	}
	return models.SignedUpload{
		SignedRequest: req.URL,
		URL:           g.PublicURL(fileName),
	}, nil
}

func (g *S3Gateway) GetObject(ctx context.Context, fileName string) (*Object, error) {
	out, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(fileName),
	})
	if err != nil {
		return nil, classify(err, "get object "+fileName)
	}
	return &Object{
		ObjectInfo: objectInfo(out.ContentType, out.ContentLength, out.ETag, out.LastModified),
		Body:       out.Body,
	}, nil
}

func (g *S3Gateway) HeadObject(ctx context.Context, fileName string) (*ObjectInfo, error) {
	out, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(fileName),
	})
	if err != nil {
		return nil, classify(err, "head object "+fileName)
	}
	info := objectInfo(out.ContentType, out.ContentLength, out.ETag, out.LastModified)
	return &info, nil
}

func (g *S3Gateway) DeleteObject(ctx context.Context, fileName string) error {
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(fileName),
	})
	if err != nil {
		return classify(err, "delete object "+fileName)
	}
	return nil
}

func (g *S3Gateway) PutObject(ctx context.Context, fileName, contentType string, body io.Reader) (string, error) {
	_, err := g.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(fileName),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", fileName, err)
	}
	return g.PublicURL(fileName), nil
}

func (g *S3Gateway) PublicURL(fileName string) string {
	return g.publicURL + fileName
}

// BaseURL returns the public prefix objects are served from, always ending in a slash.
func BaseURL(publicURL, bucket string) string {
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.amazonaws.com/", bucket)
	}
	if !strings.HasSuffix(publicURL, "/") {
		publicURL += "/"
	}
	return publicURL
}

func objectInfo(contentType *string, length *int64, etag *string, modified *time.Time) ObjectInfo {
	info := ObjectInfo{
		ContentType:   aws.ToString(contentType),
		ContentLength: aws.ToInt64(length),
		ETag:          aws.ToString(etag),
	}
	if modified != nil {
		info.LastModified = modified.UTC().Format(http.TimeFormat)
	}
	return info
}

func classify(err error, op string) error {
	if IsNotFound(err) {
		return fmt.Errorf("%s: %w", op, ErrObjectNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsNotFound reports whether err is a 404-class object storage error.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrObjectNotFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
