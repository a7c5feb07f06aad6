package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// EventsSocket streams content events to an admin client. Browsers cannot set
// headers on websocket requests, so the token may come as ?token= as well as
// the session cookie.
func (s *Server) EventsSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = sessionToken(r)
	}
	if _, err := s.Tokens.VerifySession(token); err != nil {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	upgrader := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Debug("events: upgrade failed")
		return
	}
	s.Events.Add(conn)
	defer func() {
		s.Events.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// checkOrigin accepts any origin unless CORS origins are configured.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.Config.CorsOrigins) == 0 {
		return true
	}
	for _, allowed := range s.Config.CorsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
