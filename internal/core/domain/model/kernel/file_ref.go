package kernel

import (
	"errors"
	"strings"

	"freight/internal/pkg/errs"
)

// FileRef is an opaque reference to an object held by the file storage.
// The domain never reads file content; it only keeps where it lives and what
// the uploader called it.
type FileRef struct {
	key         string
	name        string
	contentType string
	size        int64
}

// NewFileRef validates and builds a file reference.
func NewFileRef(key, name, contentType string, size int64) (FileRef, error) {
	var errList []error
	if strings.TrimSpace(key) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("file.key"))
	}
	if size < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("file.size", size, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return FileRef{}, err
	}

	return FileRef{key: key, name: name, contentType: contentType, size: size}, nil
}

func (f FileRef) Key() string         { return f.key }
func (f FileRef) Name() string        { return f.name }
func (f FileRef) ContentType() string { return f.contentType }
func (f FileRef) Size() int64         { return f.size }

// IsZero reports whether the reference is empty.
func (f FileRef) IsZero() bool {
	return f.key == ""
}
