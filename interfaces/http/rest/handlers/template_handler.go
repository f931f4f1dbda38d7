package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"journeybuilder/application/templates"
	"journeybuilder/domain/core/valueobjects"
	pkgerrors "journeybuilder/pkg/errors"
)

// TemplateHandler serves the node palette
type TemplateHandler struct {
	base
	catalog *templates.Catalog
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(catalog *templates.Catalog, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{base: newBase(errs, logger), catalog: catalog}
}

// ListTemplates handles GET /templates, optionally filtered by ?category=
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	category := valueobjects.NodeCategory(r.URL.Query().Get("category"))
	if category == "" {
		h.ok(w, r, h.catalog.All())
		return
	}
	if !category.IsValid() {
		h.fail(w, r, pkgerrors.NewValidationError(fmt.Sprintf("unknown category %q", category)))
		return
	}

	list := h.catalog.ByCategory(category)
	if list == nil {
		list = []templates.Template{}
	}
	h.ok(w, r, list)
}
