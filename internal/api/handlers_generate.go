package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dgallion1/proposaltoc/internal/generation"
	"github.com/go-chi/chi/v5"
)

// handleOutline returns the generation-ready outline and the sections that
// were left out because they still await triage.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	sections, untriaged := sess.Outline()
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"title":      sess.Title,
		"sections":   sections,
		"untriaged":  untriaged,
	})
}

type generateRequest struct {
	RFQName string `json:"rfq_name"`
	Title   string `json:"title"`
	Tone    string `json:"tone"`
}

// handleGenerate hands the curated outline to the generation service and
// relays its reply.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		jsonError(w, "generation service not configured", http.StatusServiceUnavailable)
		return
	}
	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess := sessionFrom(r.Context())
	sections := sess.Flatten()
	if len(sections) == 0 {
		jsonError(w, "outline has no accepted sections", http.StatusBadRequest)
		return
	}
	title := req.Title
	if title == "" {
		title = sess.Title
	}
	rfq := req.RFQName
	if rfq == "" {
		rfq = title
	}

	// The generator can outlast the server's write timeout.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Now().Add(generation.Timeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		s.log.Warn("extend write deadline", "session_id", sess.ID, "error", err)
	}

	s.log.Info("generation requested", "session_id", sess.ID, "sections", len(sections))
	resp, err := s.generator.Generate(r.Context(), generation.Request{
		RFQName:   rfq,
		Title:     title,
		Tone:      req.Tone,
		SessionID: sess.ID,
		Sections:  sections,
	})
	if err != nil {
		s.log.Error("generation failed", "session_id", sess.ID, "error", err)
		jsonError(w, "generation failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerationControl(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		jsonError(w, "generation service not configured", http.StatusServiceUnavailable)
		return
	}
	ctl := generation.Control(chi.URLParam(r, "control"))
	if !ctl.Valid() {
		jsonError(w, "control must be pause, resume or stop", http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r.Context())
	acked, err := s.generator.Signal(r.Context(), sess.ID, ctl)
	if err != nil {
		s.log.Error("generation control failed", "session_id", sess.ID, "control", ctl, "error", err)
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":   sess.ID,
		"control":      ctl,
		"acknowledged": acked,
	})
}
