package dto

// PresignedURLRequest asks for a direct-upload URL scoped to one folder.
type PresignedURLRequest struct {
	FileType string `json:"fileType" validate:"required"`
	Folder   string `json:"folder" validate:"required"`
}

type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	PublicURL string `json:"publicUrl"`
}

// UploadedImage is what the upload service hands back after a multipart
// upload: public URLs for rendering, keys for later deletion.
type UploadedImage struct {
	URL          string `json:"url"`
	Key          string `json:"key"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	ThumbnailKey string `json:"thumbnail_key,omitempty"`
}
