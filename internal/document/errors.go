package document

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrRender     = errors.New("render error")
	ErrIO         = errors.New("io error")
	ErrStorage    = errors.New("storage error")
	ErrArchive    = errors.New("archive error")
	ErrNotFound   = errors.New("document not found")
)

// Kind names the failure class of err for logs and metric labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrRender):
		return "render"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrStorage):
		return "storage"
	case errors.Is(err, ErrArchive):
		return "archive"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	}
	return "unknown"
}
