package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"best-memories/models"
	"best-memories/stores"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func strPtr(s string) *string {
	return &s
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "missing field", err: &stores.MissingFieldError{Field: "albumName"}, status: http.StatusBadRequest, body: "{\"message\":\"Missing `albumName` in request body\"}"},
		{name: "id mismatch", err: &stores.IDMismatchError{PathID: "a", BodyID: "b"}, status: http.StatusBadRequest, body: "{\"message\":\"Request path id `a` and request body id `b` must match.\"}"},
		{name: "filter too long", err: stores.ErrFilterTooLong, status: http.StatusBadRequest, body: `{"message":"search filter exceeds 100 characters"}`},
		{name: "bad request", err: badRequest("Invalid `%s`", "dateAdded"), status: http.StatusBadRequest, body: "{\"message\":\"Invalid `dateAdded`\"}"},
		{name: "not found", err: fmt.Errorf("lookup: %w", stores.ErrNotFound), status: http.StatusNotFound, body: `{"message":"Not Found"}`},
		{name: "conflict", err: &stores.NameConflictError{Name: "Trip"}, status: http.StatusConflict, body: "{\"code\":409,\"reason\":\"ValidationError\",\"message\":\"Album name `Trip` already taken\",\"location\":\"albumName\"}"},
		{name: "database down", err: errors.New("connection refused"), status: http.StatusInternalServerError, body: `{"status":500,"message":"Internal server error"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, discardLogger(), tc.err, "test")
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestParseDate(t *testing.T) {
	day, err := parseDate("dateCreated", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), day)

	stamp, err := parseDate("dateCreated", "2024-06-01T10:30:00.5+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 8, 30, 0, 500000000, time.UTC), stamp.UTC())

	_, err = parseDate("dateAdded", "01/06/2024")
	assert.EqualError(t, err, "Invalid `dateAdded` in request body")
}

func TestToFiles(t *testing.T) {
	files, err := toFiles([]models.FileBody{
		{ID: "65f0c0ffee0000000000beef", FileName: "a.png", DateAdded: strPtr("2024-06-01")},
		{FileName: "b.png", Width: "200"},
	})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "65f0c0ffee0000000000beef", files[0].ID.Hex())
	require.NotNil(t, files[0].DateAdded)
	assert.True(t, files[1].ID.IsZero())
	assert.Equal(t, "200", files[1].Width)

	_, err = toFiles([]models.FileBody{{ID: "nope", FileName: "a.png"}})
	assert.EqualError(t, err, "Invalid file id `nope` in request body")

	empty, err := toFiles(nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		body     models.RegisterBody
		location string
		message  string
	}{
		{name: "valid", body: models.RegisterBody{Username: strPtr("alice"), Password: strPtr("0123456789")}},
		{name: "missing username", body: models.RegisterBody{Password: strPtr("0123456789")}, location: "username", message: "Missing field"},
		{name: "trailing space", body: models.RegisterBody{Username: strPtr("alice"), Password: strPtr("0123456789 ")}, location: "password", message: "Cannot start or end with whitespace"},
		{name: "empty username", body: models.RegisterBody{Username: strPtr(""), Password: strPtr("0123456789")}, location: "username", message: "Must be at least 1 characters long"},
		{name: "short password", body: models.RegisterBody{Username: strPtr("alice"), Password: strPtr("012345678")}, location: "password", message: "Must be at least 10 characters long"},
		{name: "long password", body: models.RegisterBody{Username: strPtr("alice"), Password: strPtr(strings.Repeat("x", 73))}, location: "password", message: "Must be at most 72 characters long"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			location, message := validateRegistration(tc.body)
			assert.Equal(t, tc.location, location)
			assert.Equal(t, tc.message, message)
		})
	}
}

func TestNewAlbumPrefersComment(t *testing.T) {
	album, err := newAlbum(models.AlbumBody{
		AlbumName:   strPtr("Trip"),
		DateCreated: strPtr("2024-06-01"),
		Comment:     strPtr("new"),
		Text:        strPtr("legacy"),
	}, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new", album.Comment)
	assert.Equal(t, "alice", album.Owner)
	assert.Nil(t, album.Files)
}

func TestNotFoundHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
}
