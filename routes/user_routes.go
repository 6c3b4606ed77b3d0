package routes

import (
	"best-memories/controllers"

	"github.com/gorilla/mux"
)

func UserRoutes(router *mux.Router, controller controllers.UserController) {
	router.HandleFunc("/api/users", controller.RegisterUser()).Methods("POST")
	router.HandleFunc("/api/users/", controller.RegisterUser()).Methods("POST")
}

// AuthRoutes mounts login plus the token protected refresh and probe endpoints.
func AuthRoutes(router *mux.Router, controller controllers.AuthController, authMiddleware mux.MiddlewareFunc) {
	router.HandleFunc("/api/auth/login", controller.Login()).Methods("POST")

	protected := router.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/api/auth/refresh", controller.Refresh()).Methods("POST")
	protected.HandleFunc("/api/protected", controllers.Protected()).Methods("GET")
}
