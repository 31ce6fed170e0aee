package domain

import "context"

// MediaUploader stores a binary file with a third-party media service and
// returns the public URL of the stored file.
type MediaUploader interface {
	Upload(ctx context.Context, data []byte, fileName string) (url string, err error)
}
