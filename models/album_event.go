package models

import "time"

type AlbumEventType string

const (
	AlbumCreated     AlbumEventType = "album.created"
	AlbumUpdated     AlbumEventType = "album.updated"
	AlbumFilesAdded  AlbumEventType = "album.files_added"
	AlbumFileUpdated AlbumEventType = "album.file_updated"
	AlbumFileRemoved AlbumEventType = "album.file_removed"
	AlbumDeleted     AlbumEventType = "album.deleted"
)

type AlbumEvent struct {
	Type      AlbumEventType `json:"type"`
	AlbumID   string         `json:"albumId"`
	FileID    string         `json:"fileId,omitempty"`
	Owner     string         `json:"owner,omitempty"`
	AlbumName string         `json:"albumName,omitempty"`
	At        time.Time      `json:"at"`
}
