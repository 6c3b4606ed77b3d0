package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"best-memories/models"
	"best-memories/objectstore"

	"github.com/sirupsen/logrus"
)

const (
	MB                   = 1 << 20
	DefaultMaxUploadSize = 25 * MB
)

type ObjectControllerConfig struct {
	Gateway       objectstore.Gateway
	Uploads       *objectstore.UploadProcessor
	Logger        *logrus.Entry
	MaxUploadSize int64
}

type ObjectController struct {
	gateway       objectstore.Gateway
	uploads       *objectstore.UploadProcessor
	logger        *logrus.Entry
	maxUploadSize int64
}

func NewObjectController(config ObjectControllerConfig) ObjectController {
	if config.MaxUploadSize <= 0 {
		config.MaxUploadSize = DefaultMaxUploadSize
	}
	if config.Uploads == nil {
		config.Uploads = objectstore.NewUploadProcessor(config.Gateway, config.Logger)
	}
	return ObjectController{
		gateway:       config.Gateway,
		uploads:       config.Uploads,
		logger:        config.Logger,
		maxUploadSize: config.MaxUploadSize,
	}
}

// SignUpload handles GET /api/sign-s3?file-name=&file-type=
func (c ObjectController) SignUpload() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		fileName, err := requiredQuery(r, "file-name")
		if err != nil {
			handleError(rw, c.logger, err, "sign upload")
			return
		}
		fileType, err := requiredQuery(r, "file-type")
		if err != nil {
			handleError(rw, c.logger, err, "sign upload")
			return
		}

		signed, err := c.gateway.SignUpload(ctx, fileName, fileType)
		if err != nil {
			c.objectError(rw, err, "sign upload")
			return
		}
		jsonResponse(rw, http.StatusOK, signed)
	}
}

// GetObject handles GET /api/get-object-s3?file-name=
func (c ObjectController) GetObject() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		fileName, err := requiredQuery(r, "file-name")
		if err != nil {
			handleError(rw, c.logger, err, "get object")
			return
		}

		object, err := c.gateway.GetObject(ctx, fileName)
		if err != nil {
			c.objectError(rw, err, "get object")
			return
		}
		defer object.Body.Close()

		writeObjectHeaders(rw, object.ObjectInfo)
		rw.WriteHeader(http.StatusOK)
		if _, err := io.Copy(rw, object.Body); err != nil {
			c.logger.WithError(err).WithField("fileName", fileName).Warn("object stream interrupted")
		}
	}
}

// HeadObject handles GET /api/get-head-object-s3?file-name=
func (c ObjectController) HeadObject() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		fileName, err := requiredQuery(r, "file-name")
		if err != nil {
			handleError(rw, c.logger, err, "head object")
			return
		}

		info, err := c.gateway.HeadObject(ctx, fileName)
		if err != nil {
			c.objectError(rw, err, "head object")
			return
		}
		headers := *info
		// the response has no body, so the object size cannot go out as Content-Length
		headers.ContentLength = 0
		writeObjectHeaders(rw, headers)
		rw.WriteHeader(http.StatusOK)
	}
}

// DeleteObject handles DELETE /api/delete-object-s3
// The key comes from the JSON body {"fileName": ...} or the file-name query parameter.
func (c ObjectController) DeleteObject() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		fileName := r.URL.Query().Get("file-name")
		if fileName == "" && r.ContentLength != 0 {
			body := models.DeleteObjectBody{}
			if err := decodeJSON(r, &body); err != nil {
				handleError(rw, c.logger, err, "delete object")
				return
			}
			fileName = body.FileName
		}
		if fileName == "" {
			handleError(rw, c.logger, badRequest("Missing `fileName` in request body"), "delete object")
			return
		}

		if err := c.gateway.DeleteObject(ctx, fileName); err != nil {
			c.objectError(rw, err, "delete object")
			return
		}
		rw.WriteHeader(http.StatusNoContent)
	}
}

// UploadObject handles POST /api/upload-object-s3
// multipart/form-data with the media in the "file" field.
func (c ObjectController) UploadObject() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		r.Body = http.MaxBytesReader(rw, r.Body, c.maxUploadSize)
		if err := r.ParseMultipartForm(10 * MB); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				messageResponse(rw, http.StatusRequestEntityTooLarge, "Upload exceeds "+strconv.FormatInt(c.maxUploadSize/MB, 10)+"MB")
				return
			}
			handleError(rw, c.logger, badRequest("Invalid multipart body: %v", err), "upload object")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			handleError(rw, c.logger, badRequest("Missing `file` in request body"), "upload object")
			return
		}
		defer file.Close()

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			handleError(rw, c.logger, err, "upload object")
			return
		}

		uploaded, err := c.uploads.Upload(ctx, header.Filename, fileBytes)
		if err != nil {
			c.objectError(rw, err, "upload object")
			return
		}

		c.logger.WithFields(logrus.Fields{
			"fileName": uploaded.FileName,
			"fileType": uploaded.FileType,
			"bytes":    len(fileBytes),
		}).Info("uploaded object")
		jsonResponse(rw, http.StatusCreated, uploaded)
	}
}

func (c ObjectController) objectError(rw http.ResponseWriter, err error, operation string) {
	if objectstore.IsNotFound(err) {
		messageResponse(rw, http.StatusNotFound, "Not Found")
		return
	}
	handleError(rw, c.logger, err, operation)
}

func requiredQuery(r *http.Request, name string) (string, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return "", badRequest("Missing `%s` query parameter", name)
	}
	return value, nil
}

func writeObjectHeaders(rw http.ResponseWriter, info objectstore.ObjectInfo) {
	if info.ContentType != "" {
		rw.Header().Set("Content-Type", info.ContentType)
	}
	if info.ContentLength > 0 {
		rw.Header().Set("Content-Length", strconv.FormatInt(info.ContentLength, 10))
	}
	if info.ETag != "" {
		rw.Header().Set("ETag", info.ETag)
	}
	if info.LastModified != "" {
		rw.Header().Set("Last-Modified", info.LastModified)
	}
}
