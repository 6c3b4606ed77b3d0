package routes

import (
	"best-memories/controllers"

	"github.com/gorilla/mux"
)

// AlbumRoutes mounts the album API under /api/albums. authMiddleware may be nil when
// authentication is disabled.
func AlbumRoutes(router *mux.Router, controller controllers.AlbumController, authMiddleware mux.MiddlewareFunc) {
	albums := router.PathPrefix("/api/albums").Subrouter()
	if authMiddleware != nil {
		albums.Use(authMiddleware)
	}

	albums.HandleFunc("", controller.ListAlbums()).Methods("GET")
	albums.HandleFunc("/", controller.ListAlbums()).Methods("GET")
	albums.HandleFunc("", controller.CreateAlbum()).Methods("POST")
	albums.HandleFunc("/", controller.CreateAlbum()).Methods("POST")

	// must stay ahead of /{id}/{fileid}
	albums.HandleFunc("/search/{id}", controller.SearchFiles()).Methods("GET")

	albums.HandleFunc("/{id}", controller.GetAlbum()).Methods("GET")
	albums.HandleFunc("/{id}", controller.ReplaceAlbum()).Methods("PUT")
	albums.HandleFunc("/{id}", controller.AppendFiles()).Methods("PATCH")
	albums.HandleFunc("/{id}", controller.DeleteAlbum()).Methods("DELETE")

	albums.HandleFunc("/{id}/{fileid}", controller.GetFile()).Methods("GET")
	albums.HandleFunc("/{id}/{fileid}", controller.UpdateFile()).Methods("PATCH")
	albums.HandleFunc("/{id}/{fileid}", controller.RemoveFile()).Methods("DELETE")
}
