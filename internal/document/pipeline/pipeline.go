package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/crmhub/crm/backend/go-services/internal/document"
	"github.com/crmhub/crm/backend/go-services/internal/document/pdf"
	"github.com/crmhub/crm/backend/go-services/pkg/logger"
	"github.com/crmhub/crm/backend/go-services/pkg/metrics"
	"github.com/google/uuid"
)

const ContentType = "application/pdf"

// Store persists a generated document request.
type Store interface {
	Save(ctx context.Context, req *document.Request) error
}

// Archiver keeps a copy of generated files in object storage.
// It is satisfied by *storage.MinIOStorage.
type Archiver interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

type Option func(*Pipeline)

// WithArchiver uploads every generated file before the request is saved.
func WithArchiver(a Archiver) Option {
	return func(p *Pipeline) { p.archiver = a }
}

// Pipeline renders a document request, streams it to the client and persists it.
type Pipeline struct {
	renderer pdf.Renderer
	store    Store
	archiver Archiver
	now      func() time.Time
}

func New(renderer pdf.Renderer, store Store, opts ...Option) *Pipeline {
	p := &Pipeline{renderer: renderer, store: store, now: time.Now}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Generate streams req as a PDF attachment to w and then saves req.
// The store is called only after the file was written successfully.
func (p *Pipeline) Generate(ctx context.Context, w http.ResponseWriter, req *document.Request) error {
	data, err := p.Stream(w, req.Name, req.Content)
	if err != nil {
		return err
	}
	if p.archiver != nil {
		key := ArchiveKey(p.now(), document.NormalizeFilename(req.Name))
		if err := p.archiver.UploadFile(ctx, key, bytes.NewReader(data), int64(len(data)), ContentType); err != nil {
			metrics.DocumentFailures.WithLabelValues(document.Kind(document.ErrArchive)).Inc()
			logger.Warnf("%v: upload %s: %v", document.ErrArchive, key, err)
		} else {
			req.ObjectKey = key
		}
	}
	if err := p.store.Save(ctx, req); err != nil {
		return err
	}
	return nil
}

// Stream renders content and writes it to w as an attachment named after name.
// Rendering happens before any header is touched, so a render failure leaves w untouched.
func (p *Pipeline) Stream(w http.ResponseWriter, name, content string) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, content); err != nil {
		return nil, fmt.Errorf("%w: %v", document.ErrRender, err)
	}

	SetAttachmentHeaders(w.Header(), name, int64(buf.Len()))

	defer flush(w)
	data := buf.Bytes()
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", document.ErrIO, err)
	}
	metrics.DocumentSize.Observe(float64(len(data)))
	return data, nil
}

// SetAttachmentHeaders marks a response as a PDF download named after name.
// A negative size leaves Content-Length unset.
func SetAttachmentHeaders(h http.Header, name string, size int64) {
	h.Set("Content-Type", ContentType)
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, document.NormalizeFilename(name)))
	if size >= 0 {
		h.Set("Content-Length", strconv.FormatInt(size, 10))
	}
}

// ArchiveKey builds the object key for a generated file: documents/yyyy/mm/dd/<uuid>/<filename>.
func ArchiveKey(t time.Time, filename string) string {
	return path.Join("documents", t.UTC().Format("2006/01/02"), uuid.NewString(), filename)
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
