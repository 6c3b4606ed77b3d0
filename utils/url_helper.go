package utils

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

const ThumbnailPrefix = "thumb_"

// ObjectKey returns a unique object key that keeps the uploaded file's base name readable.
// Example: "My Photo.JPG" -> "0b6f...-My-Photo.JPG"
func ObjectKey(fileName string) string {
	base := SanitizeFileName(fileName)
	if base == "" {
		return uuid.NewString()
	}
	return uuid.NewString() + "-" + base
}

// SanitizeFileName drops any directory part and replaces whitespace and path separators.
func SanitizeFileName(fileName string) string {
	fileName = strings.ReplaceAll(fileName, "\\", "/")
	base := path.Base(fileName)
	if base == "." || base == "/" {
		return ""
	}
	return strings.Join(strings.Fields(base), "-")
}

// ThumbnailKey returns the key a thumbnail of key is stored under.
// Example: users/photo.jpg -> users/thumb_photo.jpg
func ThumbnailKey(key string) string {
	dir, file := path.Split(key)
	return dir + ThumbnailPrefix + file
}
