package stories

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Store places story media in the designated directory and returns its name.
func (fb *FileBackend) Store(bytes []byte) (string, error) {
	ext, err := extensionFor(bytes)
	if err != nil {
		return "", err
	}

	file, err := ioutil.TempFile(fb.path, "*"+ext)
	if err != nil {
		return "", errors.Wrap(err, "unable to create media file")
	}

	defer file.Close()

	_, err = file.Write(bytes)
	if err != nil {
		return "", errors.Wrap(err, "unable to write media file")
	}

	return filepath.Base(file.Name()), nil
}

// Remove permanently deletes story media from the file system.
func (fb *FileBackend) Remove(name string) error {
	return os.Remove(filepath.Join(fb.path, name))
}

func extensionFor(bytes []byte) (string, error) {
	contentType := http.DetectContentType(bytes)

	switch contentType {
	case "image/png":
		return ".png", nil
	case "image/jpeg":
		return ".jpg", nil
	case "video/mp4":
		return ".mp4", nil
	}

	return "", fmt.Errorf("unsupported content type %#v", contentType)
}
