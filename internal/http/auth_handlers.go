package httpapi

import (
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"sitecms-backend-go/internal/services"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool  `json:"success"`
	ExpiresAt int64 `json:"expiresAt"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if !s.Limiter.Check(ip) {
		w.Header().Set("Retry-After", "60")
		WriteError(w, http.StatusTooManyRequests, "Too many login attempts. Please try again in a minute.")
		return
	}
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	admin, err := s.Admins.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if services.StatusOf(err) == http.StatusUnauthorized {
			s.Limiter.Record(ip)
			logrus.WithField("ip", ip).Warn("failed admin login")
		}
		WriteServiceError(w, r, err)
		return
	}
	s.Limiter.Reset(ip)
	token, exp, err := s.Tokens.CreateSessionToken(admin.ID, admin.Email)
	if err != nil {
		logrus.WithError(err).Error("sign session token")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(exp, 0),
		HttpOnly: true,
		Secure:   s.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	WriteJSON(w, http.StatusOK, LoginResponse{Success: true, ExpiresAt: exp})
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeSuccess(w)
}

func (s *Server) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := CurrentSession(r)
	if !ok {
		WriteJSON(w, http.StatusOK, SessionResponse{Authenticated: false})
		return
	}
	WriteJSON(w, http.StatusOK, SessionResponse{Authenticated: true, Email: session.Email})
}
