package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goliatone/go-fnaform/pkg/contract"
	"github.com/goliatone/go-fnaform/pkg/controller"
	"github.com/goliatone/go-fnaform/pkg/orchestrator"
	"github.com/goliatone/go-fnaform/pkg/registry"
	"github.com/goliatone/go-fnaform/pkg/renderers/tui"
	"github.com/goliatone/go-fnaform/pkg/renderers/vanilla"
)

// Form post actions carried by the button that submitted the page.
const (
	ActionSubmit = "submit"
	ActionReset  = "reset"
)

type fieldChange struct {
	Value string `json:"value"`
}

// handlePage renders the caller's form. format=text selects the plain-text
// renderer.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	name := vanilla.Name
	if r.URL.Query().Get("format") == "text" {
		name = tui.Name
	}

	out, err := s.pages.Generate(r.Context(), orchestrator.Request{
		View:     sess.ctrl.View(),
		Renderer: name,
	})
	if err != nil {
		s.cfg.logger.Error("render failed", zap.String("renderer", name), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Body)
}

// handleFormPost applies the posted values and the chosen action, then
// redirects back to the page.
func (s *Server) handleFormPost(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	switch r.PostForm.Get("action") {
	case ActionReset:
		sess.ctrl.HandleReset()
	case ActionSubmit, "":
		values := make(map[string]string)
		for _, id := range registry.IDs() {
			if posted, ok := r.PostForm[id]; ok && len(posted) > 0 {
				values[id] = posted[0]
			}
		}
		if _, err := sess.ctrl.HandleChanges(values); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := sess.ctrl.HandleSubmit(r.Context()); err != nil && !errors.Is(err, controller.ErrSubmitInFlight) {
			respondError(w, http.StatusInternalServerError, "submit failed")
			return
		}
	default:
		respondError(w, http.StatusBadRequest, "unknown action")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sess.ctrl.View())
}

func (s *Server) handleFieldChange(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var change fieldChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := sess.ctrl.HandleChange(mux.Vars(r)["id"], change.Value); err != nil {
		if errors.Is(err, controller.ErrUnknownField) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sess.ctrl.View())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.ctrl.HandleReset()
	respondJSON(w, http.StatusOK, sess.ctrl.View())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.ctrl.HandleSubmit(r.Context()); err != nil {
		if errors.Is(err, controller.ErrSubmitInFlight) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sess.ctrl.View())
}

// handleHealth reports liveness and, when the predictor supports it, whether
// the prediction service answers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok"}
	checker, ok := s.predictor.(HealthChecker)
	if !ok {
		respondJSON(w, http.StatusOK, body)
		return
	}
	if err := checker.Health(r.Context()); err != nil {
		s.cfg.logger.Warn("prediction service health check failed", zap.Error(err))
		body["predictor"] = "unavailable"
		respondJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	body["predictor"] = "ok"
	respondJSON(w, http.StatusOK, body)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(contract.Raw())
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, err := s.sessions.acquire(w, r)
	if errors.Is(err, ErrSessionLimit) {
		s.cfg.logger.Warn("session limit reached", zap.Int("max", s.cfg.maxSessions))
		respondError(w, http.StatusServiceUnavailable, "too many active sessions")
		return nil, false
	}
	if err != nil {
		s.cfg.logger.Error("session unavailable", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "session unavailable")
		return nil, false
	}
	return sess, true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
