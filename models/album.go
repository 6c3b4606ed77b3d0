package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Album struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AlbumName   string             `json:"albumName" bson:"albumName"`
	DateCreated time.Time          `json:"dateCreated" bson:"dateCreated"`
	Comment     string             `json:"comment" bson:"comment"`
	Owner       string             `json:"-" bson:"user,omitempty"`
	Files       []File             `json:"files" bson:"files"`
}

// File is a media record embedded in an Album. The bytes live in object storage under FileName.
type File struct {
	ID               primitive.ObjectID `json:"id" bson:"_id"`
	FileName         string             `json:"fileName" bson:"fileName"`
	FrontEndFileName string             `json:"frontEndFileName,omitempty" bson:"frontEndFileName,omitempty"`
	Comment          string             `json:"comment,omitempty" bson:"comment,omitempty"`
	DateAdded        *time.Time         `json:"dateAdded,omitempty" bson:"dateAdded,omitempty"`
	StorageLocation  string             `json:"storageLocation,omitempty" bson:"storageLocation,omitempty"`
	PositionTop      string             `json:"positionTop,omitempty" bson:"positionTop,omitempty"`
	PositionLeft     string             `json:"positionLeft,omitempty" bson:"positionLeft,omitempty"`
	Width            string             `json:"width,omitempty" bson:"width,omitempty"`
	Height           string             `json:"height,omitempty" bson:"height,omitempty"`
	FileType         string             `json:"fileType,omitempty" bson:"fileType,omitempty"`
}

// Serialize returns a copy safe to encode: files is always an array, never null.
func (a Album) Serialize() Album {
	if a.Files == nil {
		a.Files = []File{}
	}
	return a
}

// Clone copies the album including its files.
func (a Album) Clone() Album {
	if a.Files != nil {
		files := make([]File, len(a.Files))
		copy(files, a.Files)
		a.Files = files
	}
	return a
}

type AlbumList struct {
	Albums []Album `json:"albums"`
}

// AlbumBody is the request body for POST, PUT and PATCH on an album. Pointer fields tell
// "absent" from "empty"; keys outside this struct are ignored.
type AlbumBody struct {
	ID          string      `json:"id,omitempty"`
	AlbumName   *string     `json:"albumName,omitempty"`
	DateCreated *string     `json:"dateCreated,omitempty"`
	Comment     *string     `json:"comment,omitempty"`
	Text        *string     `json:"text,omitempty"`
	Files       *[]FileBody `json:"files,omitempty"`
}

// CommentValue prefers comment over the legacy text key.
func (b AlbumBody) CommentValue() *string {
	if b.Comment != nil {
		return b.Comment
	}
	return b.Text
}

type FileBody struct {
	ID               string  `json:"id,omitempty"`
	FileName         string  `json:"fileName"`
	FrontEndFileName string  `json:"frontEndFileName,omitempty"`
	Comment          string  `json:"comment,omitempty"`
	DateAdded        *string `json:"dateAdded,omitempty"`
	StorageLocation  string  `json:"storageLocation,omitempty"`
	PositionTop      string  `json:"positionTop,omitempty"`
	PositionLeft     string  `json:"positionLeft,omitempty"`
	Width            string  `json:"width,omitempty"`
	Height           string  `json:"height,omitempty"`
	FileType         string  `json:"fileType,omitempty"`
}

// FileFieldsBody carries the display fields of PATCH /albums/{id}/{fileid}.
type FileFieldsBody struct {
	FrontEndFileName *string `json:"frontEndFileName,omitempty"`
	Comment          *string `json:"comment,omitempty"`
}
