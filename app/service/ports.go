package service

import (
	"context"

	"github.com/vibast-solutions/ms-go-bridal/app/imageproc"
	"github.com/vibast-solutions/ms-go-bridal/app/storage"
)

type objectStore interface {
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
	Delete(ctx context.Context, bucket, key string) error
	List(ctx context.Context, bucket string) ([]storage.Object, error)
}

type imagePreparer interface {
	Prepare(filename string, data []byte) (*imageproc.Image, error)
}

// UploadFile is one file received from a multipart form.
type UploadFile struct {
	Filename string
	Data     []byte
}
