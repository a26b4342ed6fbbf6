package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/proposaltoc/internal/catalog"
	"github.com/dgallion1/proposaltoc/internal/parser"
	"github.com/go-chi/chi/v5"
)

type templateView struct {
	catalog.Template
	Summary string `json:"summary"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	list := s.catalog.List()
	views := make([]templateView, 0, len(list))
	for _, t := range list {
		views = append(views, templateView{Template: t, Summary: t.Summary()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": views})
}

func (s *Server) handlePreviewTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateID")
	md, ok := s.catalog.Preview(id)
	if !ok {
		jsonError(w, "template not found: "+id, http.StatusNotFound)
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "text/markdown") {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(md))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"template_id": id, "markdown": md})
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateID")
	t, ok := s.catalog.Get(id)
	if !ok {
		jsonError(w, "template not found: "+id, http.StatusNotFound)
		return
	}
	if t.Builtin {
		jsonError(w, "built-in templates cannot be deleted", http.StatusForbidden)
		return
	}
	if err := s.catalog.Delete(id); err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLearnTemplate turns an uploaded proposal's headings into a custom
// template.
func (s *Server) handleLearnTemplate(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	tree, ok := s.parse(w, up)
	if !ok {
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(up.Filename, filepath.Ext(up.Filename))
	}
	t, err := s.catalog.Learn(name, up.Filename, parser.Outline(tree))
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.log.Info("template learned", "template_id", t.ID, "filename", up.Filename, "headings", tree.HeadingCount(), "sections", len(t.Sections))
	writeJSON(w, http.StatusCreated, templateView{Template: t, Summary: t.Summary()})
}
