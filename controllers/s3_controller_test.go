package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"best-memories/models"
	"best-memories/objectstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadlineGateway remembers whether each call arrived with a context deadline.
type deadlineGateway struct {
	deadlines map[string]bool
}

func newDeadlineGateway() *deadlineGateway {
	return &deadlineGateway{deadlines: map[string]bool{}}
}

func (g *deadlineGateway) record(ctx context.Context, op string) {
	_, ok := ctx.Deadline()
	g.deadlines[op] = ok
}

func (g *deadlineGateway) SignUpload(ctx context.Context, fileName, fileType string) (models.SignedUpload, error) {
	g.record(ctx, "sign")
	return models.SignedUpload{SignedRequest: "https://signed.example/" + fileName, URL: g.PublicURL(fileName)}, nil
}

func (g *deadlineGateway) GetObject(ctx context.Context, fileName string) (*objectstore.Object, error) {
	g.record(ctx, "get")
	return &objectstore.Object{
		ObjectInfo: objectstore.ObjectInfo{ContentType: "text/plain", ContentLength: 5},
		Body:       io.NopCloser(strings.NewReader("hello")),
	}, nil
}

func (g *deadlineGateway) HeadObject(ctx context.Context, fileName string) (*objectstore.ObjectInfo, error) {
	g.record(ctx, "head")
	return &objectstore.ObjectInfo{ContentType: "text/plain", ContentLength: 5}, nil
}

func (g *deadlineGateway) DeleteObject(ctx context.Context, fileName string) error {
	g.record(ctx, "delete")
	return nil
}

func (g *deadlineGateway) PutObject(ctx context.Context, fileName, contentType string, body io.Reader) (string, error) {
	g.record(ctx, "put")
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return g.PublicURL(fileName), nil
}

func (g *deadlineGateway) PublicURL(fileName string) string {
	return "https://bucket.example/" + fileName
}

func multipartUpload(t *testing.T, name string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-object-s3", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestObjectRoutesUseRequestContext(t *testing.T) {
	gateway := newDeadlineGateway()
	controller := NewObjectController(ObjectControllerConfig{Gateway: gateway, Logger: discardLogger()})

	rec := httptest.NewRecorder()
	controller.SignUpload()(rec, httptest.NewRequest(http.MethodGet, "/api/sign-s3?file-name=a.txt&file-type=text/plain", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	controller.GetObject()(rec, httptest.NewRequest(http.MethodGet, "/api/get-object-s3?file-name=a.txt", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())

	rec = httptest.NewRecorder()
	controller.HeadObject()(rec, httptest.NewRequest(http.MethodGet, "/api/get-head-object-s3?file-name=a.txt", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	controller.DeleteObject()(rec, httptest.NewRequest(http.MethodDelete, "/api/delete-object-s3?file-name=a.txt", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	controller.UploadObject()(rec, multipartUpload(t, "notes.txt", []byte("hello world")))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, op := range []string{"sign", "get", "head", "delete", "put"} {
		hasDeadline, called := gateway.deadlines[op]
		require.True(t, called, op)
		assert.False(t, hasDeadline, "%s should not carry a handler deadline", op)
	}
}
