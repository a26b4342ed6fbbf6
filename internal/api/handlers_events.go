package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgallion1/proposaltoc/internal/session"
)

const eventKeepAlive = 25 * time.Second

// handleEvents streams session changes as server-sent events. The first
// event is a snapshot; each later "change" event carries the full tree.
// A client too slow to keep up misses intermediate changes but the next one
// it receives is complete.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	changes := make(chan session.Change, 16)
	cancel := sess.Subscribe(func(c session.Change) {
		select {
		case changes <- c:
		default:
			s.log.Warn("event subscriber lagging, change dropped", "session_id", c.SessionID, "version", c.Version)
		}
	})
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "snapshot", sess.Snapshot()); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		s.log.Warn("event stream not flushable", "error", err)
		return
	}

	ticker := time.NewTicker(eventKeepAlive)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case c := <-changes:
			if err := writeEvent(w, "change", c); err != nil {
				return
			}
		case <-ticker.C:
			if sess.Closed() {
				writeEvent(w, "closed", map[string]string{"session_id": sess.ID})
				rc.Flush()
				return
			}
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeEvent(w io.Writer, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
