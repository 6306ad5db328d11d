package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/MarcGrol/pharmacare/lib/myerrors"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
)

const (
	UploadURLPrefix = "/uploads/"

	maxImageSize = 5 * 1024 * 1024
)

var allowedImageTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// imageUploader stores product images on disk; they are served under UploadURLPrefix.
type imageUploader struct {
	dir    string
	uuider myuuid.UUIDer
}

func newImageUploader(dir string, uuider myuuid.UUIDer) (*imageUploader, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("error creating upload dir %s: %s", dir, err)
	}
	return &imageUploader{
		dir:    dir,
		uuider: uuider,
	}, nil
}

// save validates and stores an uploaded image and returns the url path it is served on.
func (u *imageUploader) save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > maxImageSize {
		return "", myerrors.NewRequestTooLargeError(fmt.Errorf("image %s exceeds %d bytes", header.Filename, maxImageSize))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	expectedType, allowed := allowedImageTypes[ext]
	if !allowed {
		return "", myerrors.NewUnsupportedMediaTypeError(fmt.Errorf("Only image files are allowed"))
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", myerrors.NewInvalidInputError(fmt.Errorf("error reading image %s: %s", header.Filename, err))
	}
	sniffed := http.DetectContentType(head[:n])
	if sniffed != expectedType {
		return "", myerrors.NewUnsupportedMediaTypeError(fmt.Errorf("Only image files are allowed"))
	}

	filename := "image-" + u.uuider.Create() + ext
	dest, err := os.Create(filepath.Join(u.dir, filename))
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error creating image file: %s", err))
	}
	defer dest.Close()

	written, err := io.Copy(dest, io.LimitReader(io.MultiReader(bytes.NewReader(head[:n]), file), maxImageSize+1))
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error writing image file: %s", err))
	}
	if written > maxImageSize {
		dest.Close()
		os.Remove(filepath.Join(u.dir, filename))
		return "", myerrors.NewRequestTooLargeError(fmt.Errorf("image %s exceeds %d bytes", header.Filename, maxImageSize))
	}

	return UploadURLPrefix + filename, nil
}

// remove deletes an image saved earlier. Images that were not uploaded are left alone.
func (u *imageUploader) remove(urlPath string) error {
	if !strings.HasPrefix(urlPath, UploadURLPrefix) {
		return nil
	}
	filename := filepath.Base(strings.TrimPrefix(urlPath, UploadURLPrefix))
	err := os.Remove(filepath.Join(u.dir, filename))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// fileServer serves the uploaded images.
func (u *imageUploader) fileServer() http.Handler {
	return http.StripPrefix(UploadURLPrefix, http.FileServer(http.Dir(u.dir)))
}
