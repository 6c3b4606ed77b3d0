package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"best-memories/auth"
	"best-memories/models"
	"best-memories/responses"
	"best-memories/stores"

	"github.com/sirupsen/logrus"
)

const (
	minUsernameLength = 1
	minPasswordLength = 10
	// bcrypt only looks at the first 72 bytes
	maxPasswordLength = 72
)

type UserControllerConfig struct {
	Store  stores.UserStore
	Logger *logrus.Entry
}

type UserController struct {
	store  stores.UserStore
	logger *logrus.Entry
}

func NewUserController(config UserControllerConfig) UserController {
	return UserController{
		store:  config.Store,
		logger: config.Logger,
	}
}

// RegisterUser handles POST /api/users
func (c UserController) RegisterUser() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		body := models.RegisterBody{}
		if err := decodeJSON(r, &body); err != nil {
			handleError(rw, c.logger, err, "register user")
			return
		}

		if location, message := validateRegistration(body); location != "" {
			jsonResponse(rw, http.StatusUnprocessableEntity, responses.ValidationError{
				Code:     http.StatusUnprocessableEntity,
				Reason:   "ValidationError",
				Message:  message,
				Location: location,
			})
			return
		}

		hash, err := auth.HashPassword(*body.Password)
		if err != nil {
			handleError(rw, c.logger, err, "register user")
			return
		}

		user, err := c.store.CreateUser(ctx, models.User{
			Username:  *body.Username,
			Password:  hash,
			FirstName: strings.TrimSpace(body.FirstName),
			LastName:  strings.TrimSpace(body.LastName),
		})
		if errors.Is(err, stores.ErrUsernameTaken) {
			jsonResponse(rw, http.StatusConflict, responses.ValidationError{
				Code:     http.StatusConflict,
				Reason:   "ValidationError",
				Message:  "Username already taken",
				Location: "username",
			})
			return
		}
		if err != nil {
			handleError(rw, c.logger, err, "register user")
			return
		}

		c.logger.WithField("userId", user.ID).Info("registered user")
		jsonResponse(rw, http.StatusCreated, user.Serialize())
	}
}

// validateRegistration returns the offending field and a message, or "" when the body is valid.
func validateRegistration(body models.RegisterBody) (string, string) {
	credentials := []struct {
		field string
		value *string
		min   int
		max   int
	}{
		{field: "username", value: body.Username, min: minUsernameLength},
		{field: "password", value: body.Password, min: minPasswordLength, max: maxPasswordLength},
	}

	for _, credential := range credentials {
		if credential.value == nil {
			return credential.field, "Missing field"
		}
	}
	for _, credential := range credentials {
		if strings.TrimSpace(*credential.value) != *credential.value {
			return credential.field, "Cannot start or end with whitespace"
		}
	}
	for _, credential := range credentials {
		length := len(*credential.value)
		if length < credential.min {
			return credential.field, fmt.Sprintf("Must be at least %d characters long", credential.min)
		}
		if credential.max > 0 && length > credential.max {
			return credential.field, fmt.Sprintf("Must be at most %d characters long", credential.max)
		}
	}
	return "", ""
}
