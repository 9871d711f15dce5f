package storage

import "errors"

var (
	ErrNotFound     = errors.New("row not found")
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrSlugTaken    = errors.New("slug already in use")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrUntrustedURL    = errors.New("untrusted object storage url")
)
