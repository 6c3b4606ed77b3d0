package controllers

import (
	"context"
	"errors"
	"net/http"

	"best-memories/auth"
	"best-memories/middleware"
	"best-memories/models"
	"best-memories/responses"
	"best-memories/stores"

	"github.com/sirupsen/logrus"
)

const incorrectCredentials = "Incorrect username or password"

type AuthControllerConfig struct {
	Users  stores.UserStore
	Tokens *auth.TokenIssuer
	Logger *logrus.Entry
}

type AuthController struct {
	users  stores.UserStore
	tokens *auth.TokenIssuer
	logger *logrus.Entry
}

func NewAuthController(config AuthControllerConfig) AuthController {
	return AuthController{
		users:  config.Users,
		tokens: config.Tokens,
		logger: config.Logger,
	}
}

// Login handles POST /api/auth/login
func (c AuthController) Login() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		body := models.LoginBody{}
		if err := decodeJSON(r, &body); err != nil {
			handleError(rw, c.logger, err, "login")
			return
		}

		user, err := c.users.FindByUsername(ctx, body.Username)
		if errors.Is(err, stores.ErrNotFound) {
			messageResponse(rw, http.StatusUnauthorized, incorrectCredentials)
			return
		}
		if err != nil {
			handleError(rw, c.logger, err, "login")
			return
		}
		if !auth.CheckPassword(user.Password, body.Password) {
			messageResponse(rw, http.StatusUnauthorized, incorrectCredentials)
			return
		}

		c.issue(rw, user.Serialize())
	}
}

// Refresh handles POST /api/auth/refresh
// Trades a still valid token for a fresh one.
func (c AuthController) Refresh() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			messageResponse(rw, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.issue(rw, user)
	}
}

// Protected handles GET /api/protected
func Protected() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		jsonResponse(rw, http.StatusOK, responses.DataResponse{Data: "rosebud"})
	}
}

func (c AuthController) issue(rw http.ResponseWriter, user models.UserProfile) {
	token, err := c.tokens.Issue(user)
	if err != nil {
		handleError(rw, c.logger, err, "issue token")
		return
	}
	jsonResponse(rw, http.StatusOK, models.AuthToken{AuthToken: token})
}
