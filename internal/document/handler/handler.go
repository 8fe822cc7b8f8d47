package handler

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/crmhub/crm/backend/go-services/internal/document"
	"github.com/crmhub/crm/backend/go-services/internal/document/pipeline"
	"github.com/crmhub/crm/backend/go-services/internal/document/service"
	"github.com/crmhub/crm/backend/go-services/pkg/logger"
	"github.com/crmhub/crm/backend/go-services/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	FormPath = "/document-generator"

	ViewForm    = "generator.html"
	ViewSuccess = "success.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the form and success views.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// Outcome is what the form submission resolved to: a redirect back to the
// form or the success view. Err carries a masked pipeline failure.
type Outcome struct {
	Redirect bool
	View     string
	Errors   document.FieldErrors
	Err      error
}

// ArchiveReader opens archived copies of generated files.
// It is satisfied by *storage.MinIOStorage.
type ArchiveReader interface {
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
}

type Handler struct {
	svc      service.Service
	pipeline *pipeline.Pipeline
	archive  ArchiveReader
}

type Option func(*Handler)

// WithArchive makes Download serve the archived copy of a document when one exists.
func WithArchive(a ArchiveReader) Option {
	return func(h *Handler) { h.archive = a }
}

func New(svc service.Service, p *pipeline.Pipeline, opts ...Option) *Handler {
	h := &Handler{svc: svc, pipeline: p}
	for _, o := range opts {
		o(h)
	}
	return h
}

// RegisterDocumentRoutes installs the HTML views, the generator form and the read API.
// submit wraps the POST route (rate limiting); it may be empty.
func RegisterDocumentRoutes(r *gin.Engine, h *Handler, submit ...gin.HandlerFunc) {
	chain := func(last gin.HandlerFunc) []gin.HandlerFunc {
		out := make([]gin.HandlerFunc, 0, len(submit)+1)
		return append(append(out, submit...), last)
	}
	r.SetHTMLTemplate(Templates())

	r.GET(FormPath, h.ShowForm)
	r.POST(FormPath, chain(h.SubmitForm)...)

	api := r.Group("/api/documents")
	api.GET("", h.List)
	api.GET("/:id", h.Get)
	api.GET("/:id/download", chain(h.Download)...)
}

// ShowForm renders an empty generator form.
func (h *Handler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, ViewForm, gin.H{"document": document.Request{}, "action": FormPath})
}

// SubmitForm binds the posted form fields and resolves them through Submit.
// Only name and content come from the client; other bodies bind as empty.
func (h *Handler) SubmitForm(c *gin.Context) {
	var req document.Request
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		logger.Debugf("document form: bind failed: %v", err)
		c.Redirect(http.StatusFound, FormPath)
		return
	}
	req.ID, req.ObjectKey, req.CreatedAt = "", "", time.Time{}
	out := h.Submit(c.Request.Context(), c.Writer, &req)
	if out.Redirect {
		c.Redirect(http.StatusFound, FormPath)
		return
	}
	if c.Writer.Written() {
		// the download already owns the response
		return
	}
	c.HTML(http.StatusOK, out.View, gin.H{"filename": document.NormalizeFilename(req.Name), "action": FormPath})
}

// Submit validates req and runs the pipeline against w. Invalid input yields a
// redirect without touching storage. Pipeline failures are logged and counted
// but still resolve to the success view.
func (h *Handler) Submit(ctx context.Context, w http.ResponseWriter, req *document.Request) Outcome {
	if errs := document.Validate(req); len(errs) > 0 {
		metrics.DocumentFailures.WithLabelValues(document.Kind(errs)).Inc()
		logger.Debugf("document form rejected: %v", errs)
		return Outcome{Redirect: true, View: ViewForm, Errors: errs}
	}
	if err := h.pipeline.Generate(ctx, w, req); err != nil {
		kind := document.Kind(err)
		metrics.DocumentFailures.WithLabelValues(kind).Inc()
		logger.Warnf("document %q: %s failure: %v", req.Name, kind, err)
		return Outcome{View: ViewSuccess, Err: err}
	}
	metrics.DocumentsGenerated.Inc()
	logger.Infof("document %s generated as %q", req.ID, document.NormalizeFilename(req.Name))
	return Outcome{View: ViewSuccess}
}

// List returns stored requests without their content.
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list documents: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, d := range list {
		out = append(out, gin.H{"id": d.ID, "name": d.Name, "createdAt": d.CreatedAt})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d)
}

// Download serves a stored request as an attachment without saving it again:
// the archived copy when there is one, a fresh rendering otherwise.
func (h *Handler) Download(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	if h.serveArchived(c, d) {
		return
	}
	if _, err := h.pipeline.Stream(c.Writer, d.Name, d.Content); err != nil {
		kind := document.Kind(err)
		metrics.DocumentFailures.WithLabelValues(kind).Inc()
		logger.Warnf("download %s: %s failure: %v", d.ID, kind, err)
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render document"})
		}
	}
}

func (h *Handler) serveArchived(c *gin.Context, d *document.Request) bool {
	if h.archive == nil || d.ObjectKey == "" {
		return false
	}
	rc, err := h.archive.DownloadFile(c.Request.Context(), d.ObjectKey)
	if err != nil {
		metrics.DocumentFailures.WithLabelValues(document.Kind(document.ErrArchive)).Inc()
		logger.Warnf("download %s: %v: open %s: %v; rendering again", d.ID, document.ErrArchive, d.ObjectKey, err)
		return false
	}
	defer rc.Close()
	pipeline.SetAttachmentHeaders(c.Writer.Header(), d.Name, -1)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		metrics.DocumentFailures.WithLabelValues(document.Kind(document.ErrIO)).Inc()
		logger.Warnf("download %s: %v: %v", d.ID, document.ErrIO, err)
	}
	return true
}

func (h *Handler) lookup(c *gin.Context) (*document.Request, bool) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return nil, false
		}
		logger.Errorf("get document %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return nil, false
	}
	return d, true
}
