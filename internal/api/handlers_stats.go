package api

import (
	"net/http"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"model":    s.cfg.AnthropicModel,
		"sessions": s.sessions.Len(),
		"stats":    s.suggester.Stats().Snapshot(),
	})
}
