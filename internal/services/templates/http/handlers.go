// Package http provides the prompt template endpoints
package http

import (
	"net/http"

	"sellerbot/internal/core/prompt"
	"sellerbot/internal/modkit/httpkit"
)

// Deps are the handler dependencies
type Deps struct {
	Store *prompt.Store
	// WriteToken guards writes; empty leaves them open
	WriteToken string
}

// Template is a template body
type Template struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// WriteRequest is the body of a template write
type WriteRequest struct {
	Content string `json:"content" validate:"required,max=65536"`
}

type handlers struct {
	deps Deps
}

// Register mounts the template routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.GetJSON(r, "/templates", h.list)
	httpkit.GetJSON(r, "/read/template/{name}", h.read)
	httpkit.Guarded(r, d.WriteToken, func(g httpkit.Router) {
		httpkit.PostJSON(g, "/write/template/{name}", h.write)
	})
}

func (h *handlers) list(*http.Request) (any, error) {
	return h.deps.Store.List()
}

func (h *handlers) read(r *http.Request) (any, error) {
	name := httpkit.Param(r, "name")
	body, err := h.deps.Store.Read(name)
	if err != nil {
		return nil, err
	}
	return Template{Name: name, Content: body}, nil
}

func (h *handlers) write(r *http.Request, in WriteRequest) (any, error) {
	name := httpkit.Param(r, "name")
	if err := h.deps.Store.Write(name, in.Content); err != nil {
		return nil, err
	}
	return Template{Name: name, Content: in.Content}, nil
}
