package api

import (
	"net/http"

	"github.com/dgallion1/proposaltoc/internal/drag"
	"github.com/dgallion1/proposaltoc/internal/session"
	"github.com/dgallion1/proposaltoc/internal/toc"
	"github.com/go-chi/chi/v5"
)

// mutationResponse reports whether an action changed the tree. Actions that
// name unknown sections or break structural rules are no-ops, not errors.
type mutationResponse struct {
	Applied   bool             `json:"applied"`
	SectionID string           `json:"section_id,omitempty"`
	Session   session.Snapshot `json:"session"`
}

func respondMutation(w http.ResponseWriter, sess *session.Session, applied bool) {
	writeJSON(w, http.StatusOK, mutationResponse{Applied: applied, Session: sess.Snapshot()})
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess := sessionFrom(r.Context())
	id, ok := sess.AddSection(req.Title)
	writeJSON(w, http.StatusOK, mutationResponse{Applied: ok, SectionID: id, Session: sess.Snapshot()})
}

type updateSectionRequest struct {
	Title   *string     `json:"title"`
	Content *string     `json:"content"`
	Status  *toc.Status `json:"status"`
}

// handleUpdateSection applies a rename, content edit and status change, in
// that order. Each change is its own undo step.
func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var req updateSectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == nil && req.Content == nil && req.Status == nil {
		jsonError(w, "one of title, content or status is required", http.StatusBadRequest)
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		jsonError(w, "unknown status: "+string(*req.Status), http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r.Context())
	id := chi.URLParam(r, "sectionID")
	applied := false
	if req.Title != nil {
		applied = sess.RenameSection(id, *req.Title) || applied
	}
	if req.Content != nil {
		applied = sess.SetContent(id, *req.Content) || applied
	}
	if req.Status != nil {
		applied = sess.SetStatus(id, *req.Status) || applied
	}
	respondMutation(w, sess, applied)
}

func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	respondMutation(w, sess, sess.RemoveSection(chi.URLParam(r, "sectionID")))
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	respondMutation(w, sess, sess.Accept(chi.URLParam(r, "sectionID")))
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	respondMutation(w, sess, sess.Reject(chi.URLParam(r, "sectionID")))
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From *int `json:"from"`
		To   *int `json:"to"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.From == nil || req.To == nil {
		jsonError(w, "from and to are required", http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r.Context())
	respondMutation(w, sess, sess.ReorderTopLevel(*req.From, *req.To))
}

func (s *Server) handleNest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID  string `json:"child_id"`
		ParentID string `json:"parent_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess := sessionFrom(r.Context())
	respondMutation(w, sess, sess.NestUnderParent(req.ChildID, req.ParentID))
}

func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentID string `json:"parent_id"`
		Index    *int   `json:"index"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Index == nil {
		jsonError(w, "index is required", http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r.Context())
	respondMutation(w, sess, sess.PromoteToTopLevel(req.ParentID, *req.Index))
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	respondMutation(w, sess, sess.Undo())
}

// handleShortcut forwards a key combination to the session's shortcut
// registry.
func (s *Server) handleShortcut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Combo string `json:"combo"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Combo == "" {
		jsonError(w, "combo is required", http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r.Context())
	handled := sess.Shortcut(req.Combo)
	writeJSON(w, http.StatusOK, map[string]any{"handled": handled, "session": sess.Snapshot()})
}

type dropRequest struct {
	TargetID string    `json:"target_id"`
	Zone     drag.Zone `json:"zone"`
}

func decodeDrop(w http.ResponseWriter, r *http.Request) (dropRequest, bool) {
	var req dropRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	if req.Zone != drag.ZoneGap && req.Zone != drag.ZoneBody {
		jsonError(w, "zone must be gap or body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SectionID string `json:"section_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ok := sessionFrom(r.Context()).Drag().Start(req.SectionID)
	writeJSON(w, http.StatusOK, map[string]any{"dragging": ok, "section_id": req.SectionID})
}

func (s *Server) handleDragHover(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDrop(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionFrom(r.Context()).Drag().Hover(req.TargetID, req.Zone))
}

func (s *Server) handleDragDrop(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDrop(w, r)
	if !ok {
		return
	}
	sess := sessionFrom(r.Context())
	res := sess.Drag().Drop(req.TargetID, req.Zone)
	writeJSON(w, http.StatusOK, map[string]any{"result": res, "session": sess.Snapshot()})
}

func (s *Server) handleDragCancel(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).Drag().Cancel()
	w.WriteHeader(http.StatusNoContent)
}
