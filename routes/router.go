package routes

import (
	"net/http"

	"best-memories/auth"
	"best-memories/configs"
	"best-memories/controllers"
	"best-memories/events"
	"best-memories/middleware"
	"best-memories/objectstore"
	"best-memories/stores"

	"github.com/gorilla/mux"
)

type Dependencies struct {
	Albums  stores.AlbumStore
	Users   stores.UserStore
	Events  events.Publisher
	Objects objectstore.Gateway
	// Tokens switches authentication on. Users must be set with it.
	Tokens *auth.TokenIssuer
}

// NewRouter wires every API route group. Unknown paths and known paths called with the
// wrong method both get the JSON 404.
func NewRouter(deps Dependencies) *mux.Router {
	logger := configs.LogWithContext("routes", "register")

	router := mux.NewRouter()
	router.NotFoundHandler = controllers.NotFound()
	router.MethodNotAllowedHandler = controllers.NotFound()

	var authMiddleware mux.MiddlewareFunc
	if deps.Tokens != nil {
		authMiddleware = middleware.JWTAuth(deps.Tokens)

		UserRoutes(router, controllers.NewUserController(controllers.UserControllerConfig{
			Store:  deps.Users,
			Logger: configs.LogWithContext("users", "http"),
		}))
		AuthRoutes(router, controllers.NewAuthController(controllers.AuthControllerConfig{
			Users:  deps.Users,
			Tokens: deps.Tokens,
			Logger: configs.LogWithContext("auth", "http"),
		}), authMiddleware)
		logger.Info("User and auth routes registered")
	} else {
		logger.Warn("Authentication disabled, albums are shared by every client")
	}

	AlbumRoutes(router, controllers.NewAlbumController(controllers.AlbumControllerConfig{
		Store:  deps.Albums,
		Events: deps.Events,
		Logger: configs.LogWithContext("albums", "http"),
	}), authMiddleware)
	logger.Info("Album routes registered")

	if deps.Objects != nil {
		ObjectRoutes(router, controllers.NewObjectController(controllers.ObjectControllerConfig{
			Gateway: deps.Objects,
			Logger:  configs.LogWithContext("objects", "http"),
		}), authMiddleware)
		logger.Info("Object storage routes registered")
	}

	return router
}

// Handler puts CORS, request logging and panic recovery in front of the router. They sit
// outside mux so unmatched requests are logged as well.
func Handler(router http.Handler, clientOrigin string) http.Handler {
	return middleware.CORS(clientOrigin)(
		middleware.LoggingMiddleware(middleware.RecoveryMiddleware(router)),
	)
}
