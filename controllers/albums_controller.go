package controllers

import (
	"context"
	"net/http"
	"time"

	"best-memories/events"
	"best-memories/models"
	"best-memories/stores"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type AlbumControllerConfig struct {
	Store  stores.AlbumStore
	Events events.Publisher
	Logger *logrus.Entry
}

type AlbumController struct {
	store  stores.AlbumStore
	events events.Publisher
	logger *logrus.Entry
}

func NewAlbumController(config AlbumControllerConfig) AlbumController {
	if config.Events == nil {
		config.Events = events.NopPublisher{}
	}
	return AlbumController{
		store:  config.Store,
		events: config.Events,
		logger: config.Logger,
	}
}

// ListAlbums handles GET /api/albums?text=
func (c AlbumController) ListAlbums() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		albums, err := c.store.ListAlbums(ctx, requestOwner(r), r.URL.Query().Get("text"))
		if err != nil {
			handleError(rw, c.logger, err, "list albums")
			return
		}

		result := models.AlbumList{Albums: make([]models.Album, 0, len(albums))}
		for _, album := range albums {
			result.Albums = append(result.Albums, album.Serialize())
		}
		jsonResponse(rw, http.StatusOK, result)
	}
}

// GetAlbum handles GET /api/albums/{id}
func (c AlbumController) GetAlbum() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		album, err := c.store.GetAlbum(ctx, mux.Vars(r)["id"], requestOwner(r))
		if err != nil {
			handleError(rw, c.logger, err, "get album")
			return
		}
		jsonResponse(rw, http.StatusOK, album.Serialize())
	}
}

// GetFile handles GET /api/albums/{id}/{fileid}
func (c AlbumController) GetFile() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		vars := mux.Vars(r)

		file, err := c.store.GetFile(ctx, vars["id"], vars["fileid"], requestOwner(r))
		if err != nil {
			handleError(rw, c.logger, err, "get file")
			return
		}
		jsonResponse(rw, http.StatusOK, file)
	}
}

// SearchFiles handles GET /api/albums/search/{id}?text=
func (c AlbumController) SearchFiles() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		album, err := c.store.SearchFilesInAlbum(ctx, mux.Vars(r)["id"], requestOwner(r), r.URL.Query().Get("text"))
		if err != nil {
			handleError(rw, c.logger, err, "search files")
			return
		}
		jsonResponse(rw, http.StatusOK, album.Serialize())
	}
}

// CreateAlbum handles POST /api/albums
func (c AlbumController) CreateAlbum() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		body := models.AlbumBody{}
		if err := decodeJSON(r, &body); err != nil {
			handleError(rw, c.logger, err, "create album")
			return
		}

		album, err := newAlbum(body, requestOwner(r))
		if err != nil {
			handleError(rw, c.logger, err, "create album")
			return
		}

		created, err := c.store.CreateAlbum(ctx, album)
		if err != nil {
			handleError(rw, c.logger, err, "create album")
			return
		}

		c.publish(ctx, models.AlbumCreated, created)
		jsonResponse(rw, http.StatusCreated, created.Serialize())
	}
}

// ReplaceAlbum handles PUT /api/albums/{id}
// Only albumName, dateCreated, comment (or text) and files are applied.
func (c AlbumController) ReplaceAlbum() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		id := mux.Vars(r)["id"]

		body := models.AlbumBody{}
		if err := decodeJSON(r, &body); err != nil {
			handleError(rw, c.logger, err, "replace album")
			return
		}

		fields, err := albumFields(body)
		if err != nil {
			handleError(rw, c.logger, err, "replace album")
			return
		}

		c.logger.WithField("albumId", id).Debug("updating album")
		updated, err := c.store.ReplaceAlbumFields(ctx, id, requestOwner(r), fields)
		if err != nil {
			handleError(rw, c.logger, err, "replace album")
			return
		}

		c.publish(ctx, models.AlbumUpdated, updated)
		jsonResponse(rw, http.StatusCreated, updated.Serialize())
	}
}

// AppendFiles handles PATCH /api/albums/{id}
// Appends body.files to the album.
func (c AlbumController) AppendFiles() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		id := mux.Vars(r)["id"]

		body := models.AlbumBody{}
		if err := decodeJSON(r, &body); err != nil {
			handleError(rw, c.logger, err, "append files")
			return
		}
		if body.Files == nil {
			handleError(rw, c.logger, &stores.MissingFieldError{Field: "files"}, "append files")
			return
		}

		files, err := toFiles(*body.Files)
		if err != nil {
			handleError(rw, c.logger, err, "append files")
			return
		}

		updated, err := c.store.AppendFiles(ctx, id, requestOwner(r), body.ID, files)
		if err != nil {
			handleError(rw, c.logger, err, "append files")
			return
		}

		c.publish(ctx, models.AlbumFilesAdded, updated)
		jsonResponse(rw, http.StatusCreated, updated.Serialize())
	}
}

// UpdateFile handles PATCH /api/albums/{id}/{fileid}
func (c AlbumController) UpdateFile() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		vars := mux.Vars(r)
		owner := requestOwner(r)

		body := models.FileFieldsBody{}
		if err := decodeJSON(r, &body); err != nil {
			handleError(rw, c.logger, err, "update file")
			return
		}

		fields := stores.FileFields{FrontEndFileName: body.FrontEndFileName, Comment: body.Comment}
		if err := c.store.UpdateFileFields(ctx, vars["id"], vars["fileid"], owner, fields); err != nil {
			handleError(rw, c.logger, err, "update file")
			return
		}

		c.publishIDs(ctx, models.AlbumFileUpdated, vars["id"], vars["fileid"], owner)
		rw.WriteHeader(http.StatusNoContent)
	}
}

// RemoveFile handles DELETE /api/albums/{id}/{fileid}
func (c AlbumController) RemoveFile() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		vars := mux.Vars(r)
		owner := requestOwner(r)

		if err := c.store.RemoveFile(ctx, vars["id"], vars["fileid"], owner); err != nil {
			handleError(rw, c.logger, err, "remove file")
			return
		}

		c.publishIDs(ctx, models.AlbumFileRemoved, vars["id"], vars["fileid"], owner)
		rw.WriteHeader(http.StatusNoContent)
	}
}

// DeleteAlbum handles DELETE /api/albums/{id}
func (c AlbumController) DeleteAlbum() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		id := mux.Vars(r)["id"]
		owner := requestOwner(r)

		if err := c.store.DeleteAlbum(ctx, id, owner); err != nil {
			handleError(rw, c.logger, err, "delete album")
			return
		}

		c.logger.WithField("albumId", id).Info("deleted album")
		c.publishIDs(ctx, models.AlbumDeleted, id, "", owner)
		rw.WriteHeader(http.StatusNoContent)
	}
}

func (c AlbumController) publish(ctx context.Context, eventType models.AlbumEventType, album *models.Album) {
	c.send(ctx, models.AlbumEvent{
		Type:      eventType,
		AlbumID:   album.ID.Hex(),
		Owner:     album.Owner,
		AlbumName: album.AlbumName,
		At:        time.Now().UTC(),
	})
}

func (c AlbumController) publishIDs(ctx context.Context, eventType models.AlbumEventType, albumID, fileID, owner string) {
	c.send(ctx, models.AlbumEvent{
		Type:    eventType,
		AlbumID: albumID,
		FileID:  fileID,
		Owner:   owner,
		At:      time.Now().UTC(),
	})
}

func (c AlbumController) send(ctx context.Context, event models.AlbumEvent) {
	if err := c.events.Publish(ctx, event); err != nil {
		c.logger.WithError(err).WithField("event", event.Type).Warn("failed to publish album event")
	}
}

func newAlbum(body models.AlbumBody, owner string) (models.Album, error) {
	if body.AlbumName == nil {
		return models.Album{}, &stores.MissingFieldError{Field: "albumName"}
	}
	if body.DateCreated == nil {
		return models.Album{}, &stores.MissingFieldError{Field: "dateCreated"}
	}

	created, err := parseDate("dateCreated", *body.DateCreated)
	if err != nil {
		return models.Album{}, err
	}

	album := models.Album{
		AlbumName:   *body.AlbumName,
		DateCreated: created,
		Owner:       owner,
	}
	if comment := body.CommentValue(); comment != nil {
		album.Comment = *comment
	}
	if body.Files != nil {
		if album.Files, err = toFiles(*body.Files); err != nil {
			return models.Album{}, err
		}
	}
	return album, nil
}

func albumFields(body models.AlbumBody) (stores.AlbumFields, error) {
	fields := stores.AlbumFields{
		ID:        body.ID,
		AlbumName: body.AlbumName,
		Comment:   body.CommentValue(),
	}
	if body.DateCreated != nil {
		created, err := parseDate("dateCreated", *body.DateCreated)
		if err != nil {
			return stores.AlbumFields{}, err
		}
		fields.DateCreated = &created
	}
	if body.Files != nil {
		files, err := toFiles(*body.Files)
		if err != nil {
			return stores.AlbumFields{}, err
		}
		fields.Files = &files
	}
	return fields, nil
}
