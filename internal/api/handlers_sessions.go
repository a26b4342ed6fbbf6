package api

import (
	"net/http"
	"strings"

	"github.com/dgallion1/proposaltoc/internal/parser"
	"github.com/dgallion1/proposaltoc/internal/suggest"
	"github.com/dgallion1/proposaltoc/internal/toc"
)

const defaultProposalTitle = "Untitled Proposal"

type createSessionRequest struct {
	Title      string `json:"title"`
	TemplateID string `json:"template_id"`
	Records    []any  `json:"records"`
}

// handleCreateSession starts a session from a template, raw records, or
// both (template sections first).
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var records []toc.Suggestion
	title := req.Title
	if req.TemplateID != "" {
		t, ok := s.catalog.Get(req.TemplateID)
		if !ok {
			jsonError(w, "template not found: "+req.TemplateID, http.StatusNotFound)
			return
		}
		records = t.Suggestions()
		if title == "" {
			title = t.Name
		}
	}
	records = append(records, toc.SuggestionsFromAny(req.Records, toc.SourceUser)...)

	s.createSession(w, title, records)
}

// handleUploadSession starts a session from the headings of an uploaded
// document.
func (s *Server) handleUploadSession(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	tree, ok := s.parse(w, up)
	if !ok {
		return
	}
	title := r.FormValue("title")
	if title == "" {
		title = tree.Title
	}
	s.createSession(w, title, parser.OutlineSuggestions(tree))
}

// handleSuggestSession reviews an uploaded RFP with the model and starts a
// session from the optional template plus the model's suggestions.
func (s *Server) handleSuggestSession(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		jsonError(w, "suggestions are disabled (ANTHROPIC_API_KEY not set)", http.StatusServiceUnavailable)
		return
	}
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	tree, ok := s.parse(w, up)
	if !ok {
		return
	}

	title := r.FormValue("title")
	var base []toc.Suggestion
	if id := r.FormValue("template_id"); id != "" {
		t, ok := s.catalog.Get(id)
		if !ok {
			jsonError(w, "template not found: "+id, http.StatusNotFound)
			return
		}
		base = t.Suggestions()
		if title == "" {
			title = t.Name
		}
	}
	if title == "" {
		title = tree.Title
	}

	outline := make([]string, 0, len(base))
	for _, b := range base {
		outline = append(outline, b.Title)
	}
	suggestions, err := s.suggester.Suggest(r.Context(), suggest.Request{
		Title:   title,
		Outline: outline,
		RFP:     suggest.Excerpt(tree, suggest.DefaultExcerptTokens),
	})
	if err != nil {
		s.log.Error("suggestion request failed", "filename", up.Filename, "error", err)
		jsonError(w, "suggestion failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	s.createSession(w, title, suggest.Merge(base, suggestions))
}

func (s *Server) createSession(w http.ResponseWriter, title string, records []toc.Suggestion) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultProposalTitle
	}
	sess, err := s.sessions.Create(title, records)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r.Context()).Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(sessionFrom(r.Context()).ID)
	w.WriteHeader(http.StatusNoContent)
}
