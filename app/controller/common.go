package controller

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-bridal/app/dto"
	"github.com/vibast-solutions/ms-go-bridal/app/service"
	"github.com/vibast-solutions/ms-go-bridal/app/session"
)

var (
	errFileTooLarge = errors.New("file too large")
	errNoFile       = errors.New("no file uploaded")
	errTooManyFiles = errors.New("too many files")
)

func writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &dto.ErrorResponse{Error: message})
}

// subjectID returns the id of the logged-in provider or user. The route
// middleware guarantees the session kind.
func subjectID(ctx echo.Context) string {
	if sess := session.FromContext(ctx); sess != nil {
		return sess.SubjectID
	}
	return ""
}

func currentUserID(ctx echo.Context) *string {
	sess := session.FromContext(ctx)
	if sess == nil || sess.Kind != session.KindUser {
		return nil
	}
	id := sess.SubjectID
	return &id
}

// readUploads reads the files under field. The file count is checked before
// any file is read.
func readUploads(ctx echo.Context, field string, maxBytes int64, maxFiles int) ([]service.UploadFile, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, errNoFile
	}

	headers := form.File[field]
	if maxFiles > 0 && len(headers) > maxFiles {
		return nil, fmt.Errorf("%w: at most %d per request", errTooManyFiles, maxFiles)
	}
	files := make([]service.UploadFile, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header, maxBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readUpload(header *multipart.FileHeader, maxBytes int64) (service.UploadFile, error) {
	if maxBytes > 0 && header.Size > maxBytes {
		return service.UploadFile{}, fmt.Errorf("%w: %s", errFileTooLarge, header.Filename)
	}

	f, err := header.Open()
	if err != nil {
		return service.UploadFile{}, err
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return service.UploadFile{}, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return service.UploadFile{}, fmt.Errorf("%w: %s", errFileTooLarge, header.Filename)
	}
	return service.UploadFile{Filename: header.Filename, Data: data}, nil
}

func writeUploadError(ctx echo.Context, err error) error {
	if errors.Is(err, errFileTooLarge) {
		return writeError(ctx, http.StatusRequestEntityTooLarge, err.Error())
	}
	if errors.Is(err, errNoFile) {
		return writeError(ctx, http.StatusBadRequest, "no file uploaded")
	}
	if errors.Is(err, errTooManyFiles) {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}
	return writeError(ctx, http.StatusBadRequest, "invalid upload")
}
