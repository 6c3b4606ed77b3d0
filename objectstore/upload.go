package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"best-memories/models"
	"best-memories/utils"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

const ThumbnailSize = 200

// UploadProcessor stores proxied uploads and a square JPEG thumbnail for images.
type UploadProcessor struct {
	gateway Gateway
	logger  *logrus.Entry
}

func NewUploadProcessor(gateway Gateway, logger *logrus.Entry) *UploadProcessor {
	return &UploadProcessor{
		gateway: gateway,
		logger:  logger,
	}
}

func (p *UploadProcessor) Upload(ctx context.Context, fileName string, data []byte) (models.UploadedObject, error) {
	detected := mimetype.Detect(data)
	key := utils.ObjectKey(fileName)

	url, err := p.gateway.PutObject(ctx, key, detected.String(), bytes.NewReader(data))
	if err != nil {
		return models.UploadedObject{}, err
	}

	uploaded := models.UploadedObject{
		FileName: key,
		FileType: detected.String(),
		URL:      url,
	}

	if !strings.HasPrefix(detected.String(), "image/") {
		return uploaded, nil
	}

	thumb, err := thumbnail(data)
	if err != nil {
		// Formats imaging cannot decode (HEIC and friends) are stored without a thumbnail.
		p.logger.WithError(err).WithField("key", key).Warn("skipping thumbnail")
		return uploaded, nil
	}

	thumbURL, err := p.gateway.PutObject(ctx, thumbnailKey(key), "image/jpeg", bytes.NewReader(thumb))
	if err != nil {
		// the original is already stored, so the upload still succeeds
		p.logger.WithError(err).WithField("key", key).Warn("failed to store thumbnail")
		return uploaded, nil
	}
	uploaded.ThumbnailURL = thumbURL
	return uploaded, nil
}

func thumbnail(data []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	thumb := imaging.Fill(src, ThumbnailSize, ThumbnailSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// thumbnailKey always ends in .jpg since thumbnails are re-encoded as JPEG.
func thumbnailKey(key string) string {
	return utils.ThumbnailKey(strings.TrimSuffix(key, path.Ext(key)) + ".jpg")
}
