package stores

import (
	"context"
	"time"
	"unicode/utf8"

	"best-memories/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxFilterLength = 100

// AlbumStore translates album operations into document database calls. An empty owner
// disables ownership scoping.
type AlbumStore interface {
	ListAlbums(ctx context.Context, owner, nameFilter string) ([]models.Album, error)
	GetAlbum(ctx context.Context, id, owner string) (*models.Album, error)
	GetFile(ctx context.Context, albumID, fileID, owner string) (*models.File, error)
	SearchFilesInAlbum(ctx context.Context, albumID, owner, textFilter string) (*models.Album, error)
	CreateAlbum(ctx context.Context, album models.Album) (*models.Album, error)
	ReplaceAlbumFields(ctx context.Context, id, owner string, fields AlbumFields) (*models.Album, error)
	AppendFiles(ctx context.Context, id, owner, bodyID string, files []models.File) (*models.Album, error)
	UpdateFileFields(ctx context.Context, albumID, fileID, owner string, fields FileFields) error
	RemoveFile(ctx context.Context, albumID, fileID, owner string) error
	DeleteAlbum(ctx context.Context, id, owner string) error
}

// AlbumFields is the update allowlist of PUT /albums/{id}. Nil fields are left untouched.
type AlbumFields struct {
	ID          string
	AlbumName   *string
	DateCreated *time.Time
	Comment     *string
	Files       *[]models.File
}

func (f AlbumFields) empty() bool {
	return f.AlbumName == nil && f.DateCreated == nil && f.Comment == nil && f.Files == nil
}

type FileFields struct {
	FrontEndFileName *string
	Comment          *string
}

func (f FileFields) empty() bool {
	return f.FrontEndFileName == nil && f.Comment == nil
}

func validateNewAlbum(album models.Album) error {
	if album.AlbumName == "" {
		return &MissingFieldError{Field: "albumName"}
	}
	if album.DateCreated.IsZero() {
		return &MissingFieldError{Field: "dateCreated"}
	}
	return validateFiles(album.Files)
}

func validateFiles(files []models.File) error {
	for _, file := range files {
		if file.FileName == "" {
			return &MissingFieldError{Field: "fileName"}
		}
	}
	return nil
}

func validateFields(id string, fields AlbumFields) error {
	if id == "" || fields.ID != id {
		return &IDMismatchError{PathID: id, BodyID: fields.ID}
	}
	if fields.AlbumName != nil && *fields.AlbumName == "" {
		return &MissingFieldError{Field: "albumName"}
	}
	if fields.DateCreated != nil && fields.DateCreated.IsZero() {
		return &MissingFieldError{Field: "dateCreated"}
	}
	if fields.Files != nil {
		return validateFiles(*fields.Files)
	}
	return nil
}

func validateFilter(filter string) error {
	if utf8.RuneCountInString(filter) > MaxFilterLength {
		return ErrFilterTooLong
	}
	return nil
}

func assignFileIDs(files []models.File) []models.File {
	out := make([]models.File, len(files))
	for i, file := range files {
		if file.ID.IsZero() {
			file.ID = primitive.NewObjectID()
		}
		out[i] = file
	}
	return out
}
