package routes

import (
	"best-memories/controllers"

	"github.com/gorilla/mux"
)

func ObjectRoutes(router *mux.Router, controller controllers.ObjectController, authMiddleware mux.MiddlewareFunc) {
	objects := router.PathPrefix("/api").Subrouter()
	if authMiddleware != nil {
		objects.Use(authMiddleware)
	}

	objects.HandleFunc("/sign-s3", controller.SignUpload()).Methods("GET")
	objects.HandleFunc("/get-object-s3", controller.GetObject()).Methods("GET")
	objects.HandleFunc("/get-head-object-s3", controller.HeadObject()).Methods("GET")
	objects.HandleFunc("/delete-object-s3", controller.DeleteObject()).Methods("DELETE")
	objects.HandleFunc("/upload-object-s3", controller.UploadObject()).Methods("POST")
}
