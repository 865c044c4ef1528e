package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

type sessionHandler func(w http.ResponseWriter, r *http.Request, c *workflow.Container)

type sessionResponse struct {
	ID    string         `json:"id"`
	State workflow.State `json:"state"`
}

func (s *Server) newSession() (string, *workflow.Container) {
	id := uuid.New().String()
	c := workflow.NewContainer()
	s.sessions.Set(id, c, cache.DefaultExpiration)
	return id, c
}

func (s *Server) lookupSession(id string) (*workflow.Container, bool) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}
	c, ok := v.(*workflow.Container)
	return c, ok
}

// withSession は URL のセッション ID を解決し、見つからなければ 404 を返します。
func (s *Server) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, paramSessionID)
		c, ok := s.lookupSession(id)
		if !ok {
			respondWithError(w, http.StatusNotFound, "session not found")
			return
		}
		// アクセスのたびに有効期限を延ばす
		s.sessions.Set(id, c, cache.DefaultExpiration)
		next(w, r, c)
	}
}

func respondWithState(w http.ResponseWriter, status int, r *http.Request, c *workflow.Container) {
	respondWithJSON(w, status, sessionResponse{
		ID:    chi.URLParam(r, paramSessionID),
		State: c.State(),
	})
}
