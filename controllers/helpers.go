package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"best-memories/middleware"
	"best-memories/models"
	"best-memories/responses"
	"best-memories/stores"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 10 * time.Second

// badRequestError marks request problems found before the store is called.
type badRequestError struct {
	message string
}

func (e *badRequestError) Error() string {
	return e.message
}

func badRequest(format string, args ...interface{}) error {
	return &badRequestError{message: fmt.Sprintf(format, args...)}
}

func jsonResponse(rw http.ResponseWriter, code int, body interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	json.NewEncoder(rw).Encode(body)
}

func messageResponse(rw http.ResponseWriter, code int, message string) {
	jsonResponse(rw, code, responses.MessageResponse{Message: message})
}

func errorResponse(rw http.ResponseWriter, err error, code int) {
	jsonResponse(rw, code, responses.ErrorResponse{Status: code, Message: err.Error()})
}

// NotFound answers every unmatched route.
func NotFound() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		messageResponse(rw, http.StatusNotFound, "Not Found")
	}
}

// handleError maps store and request errors to responses. Anything unexpected is logged and
// answered with a generic 500.
func handleError(rw http.ResponseWriter, logger *logrus.Entry, err error, operation string) {
	var (
		badReq   *badRequestError
		missing  *stores.MissingFieldError
		mismatch *stores.IDMismatchError
		conflict *stores.NameConflictError
	)

	switch {
	case errors.As(err, &badReq), errors.As(err, &missing), errors.As(err, &mismatch), errors.Is(err, stores.ErrFilterTooLong):
		messageResponse(rw, http.StatusBadRequest, err.Error())
	case errors.Is(err, stores.ErrNotFound):
		messageResponse(rw, http.StatusNotFound, "Not Found")
	case errors.As(err, &conflict):
		jsonResponse(rw, http.StatusConflict, responses.ValidationError{
			Code:     http.StatusConflict,
			Reason:   "ValidationError",
			Message:  conflict.Error(),
			Location: conflict.Location(),
		})
	default:
		logger.WithError(err).WithField("operation", operation).Error("request failed")
		errorResponse(rw, errors.New("Internal server error"), http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest("Invalid JSON body: %v", err)
	}
	return nil
}

// requestOwner is the authenticated user id, or "" when auth is disabled.
func requestOwner(r *http.Request) string {
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		return user.ID
	}
	return ""
}

// parseDate accepts RFC 3339 timestamps and plain calendar dates.
// Example: "2024-06-01T10:00:00Z", "2024-06-01"
func parseDate(field, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, badRequest("Invalid `%s` in request body", field)
}

func toFiles(bodies []models.FileBody) ([]models.File, error) {
	files := make([]models.File, 0, len(bodies))
	for _, body := range bodies {
		file := models.File{
			FileName:         body.FileName,
			FrontEndFileName: body.FrontEndFileName,
			Comment:          body.Comment,
			StorageLocation:  body.StorageLocation,
			PositionTop:      body.PositionTop,
			PositionLeft:     body.PositionLeft,
			Width:            body.Width,
			Height:           body.Height,
			FileType:         body.FileType,
		}
		if body.ID != "" {
			id, err := primitive.ObjectIDFromHex(body.ID)
			if err != nil {
				return nil, badRequest("Invalid file id `%s` in request body", body.ID)
			}
			file.ID = id
		}
		if body.DateAdded != nil {
			added, err := parseDate("dateAdded", *body.DateAdded)
			if err != nil {
				return nil, err
			}
			file.DateAdded = &added
		}
		files = append(files, file)
	}
	return files, nil
}
