package models

type SignedUpload struct {
	SignedRequest string `json:"signedRequest"`
	URL           string `json:"url"`
}

type UploadedObject struct {
	FileName     string `json:"fileName"`
	FileType     string `json:"fileType"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type DeleteObjectBody struct {
	FileName string `json:"fileName"`
}
