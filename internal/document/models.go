package document

import (
	"strings"
	"time"
)

// Extension is the file extension every generated download carries.
const Extension = ".pdf"

// Request is the user-submitted record driving document generation.
// Name and Content come from the form; ID and CreatedAt are assigned on save.
type Request struct {
	ID        string    `json:"id" bson:"id" form:"-"`
	Name      string    `json:"name" bson:"name" form:"name" validate:"required,notblank,max=255"`
	Content   string    `json:"content" bson:"content" form:"content" validate:"required,notblank"`
	ObjectKey string    `json:"objectKey,omitempty" bson:"objectKey,omitempty" form:"-"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" form:"-"`
}

// NormalizeFilename returns name as a download filename: characters that would
// break a quoted Content-Disposition value are replaced and ".pdf" is appended
// unless already present.
func NormalizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if !strings.HasSuffix(strings.ToLower(name), Extension) {
		name += Extension
	}
	return name
}
