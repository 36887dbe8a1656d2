package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sessionkit/pkg/clientip"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/jwt"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/requestid"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

type user struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// resolveSessionUser builds the user from the session payload.
func resolveSessionUser(_ context.Context, userID string, data map[string]any) (any, error) {
	name, _ := data["name"].(string)
	return user{ID: userID, Name: name}, nil
}

// resolveTokenUser builds the user named by a token subject.
func resolveTokenUser(_ context.Context, subject string) (any, error) {
	return user{ID: subject}, nil
}

type app struct {
	sessions *session.Manager
	tokens   *jwt.Service
	log      *slog.Logger
	checks   map[string]httpserver.HealthCheckFunc
	ipHeader string
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware(""))
	r.Use(clientip.Middleware(a.ipHeader))

	r.Get("/healthz", httpserver.HealthCheckHandler(a.log, a.checks))

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.Middleware)

		r.Get("/", a.home)
		r.Post("/flash", a.setFlash)
		r.Post("/rotate", a.rotate)
		r.Post("/logout", a.logout)
		r.With(a.sessions.RequireGuest).Post("/login", a.login)

		r.Group(func(r chi.Router) {
			r.Use(a.sessions.RequireAuth)
			r.Get("/me", a.me)
			r.Post("/token", a.issueToken)
		})
	})

	return r
}

func (a *app) home(w http.ResponseWriter, r *http.Request) {
	st := session.MustFromContext(r.Context())

	resp := map[string]any{"stateless": st.Stateless()}
	if !st.Stateless() {
		visits, _ := st.GetInt("visits")
		visits++
		st.Set("visits", visits)
		resp["session_id"] = st.ID()
		resp["visits"] = visits
	}
	if notice, ok := st.Flash("notice"); ok {
		resp["notice"] = notice
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *app) setFlash(w http.ResponseWriter, r *http.Request) {
	st := session.MustFromContext(r.Context())

	message := r.FormValue("message")
	if message == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "message is required"})
		return
	}
	st.SetFlash("notice", message)
	w.WriteHeader(http.StatusNoContent)
}

func (a *app) login(w http.ResponseWriter, r *http.Request) {
	st := session.MustFromContext(r.Context())

	userID := r.FormValue("user_id")
	if userID == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "user_id is required"})
		return
	}

	data := map[string]any{}
	if name := r.FormValue("name"); name != "" {
		data["name"] = name
	}
	if err := st.Login(r.Context(), userID, data); err != nil {
		a.fail(w, r, "login failed", err)
		return
	}
	st.SetFlash("notice", "welcome back")
	writeJSON(w, http.StatusOK, st.User())
}

func (a *app) logout(w http.ResponseWriter, r *http.Request) {
	st := session.MustFromContext(r.Context())
	if err := st.Logout(r.Context()); err != nil {
		a.fail(w, r, "logout failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *app) rotate(w http.ResponseWriter, r *http.Request) {
	session.MustFromContext(r.Context()).RequestRotation()
	w.WriteHeader(http.StatusNoContent)
}

func (a *app) me(w http.ResponseWriter, r *http.Request) {
	st := session.MustFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"user":      st.User(),
		"stateless": st.Stateless(),
	})
}

func (a *app) issueToken(w http.ResponseWriter, r *http.Request) {
	if a.tokens == nil {
		http.NotFound(w, r)
		return
	}
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		// Stateless requests carry no user ID and cannot mint new tokens.
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	token, err := a.tokens.Issue(userID)
	if err != nil {
		a.fail(w, r, "token issue failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": token, "token_type": "Bearer"})
}

func (a *app) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	a.log.ErrorContext(r.Context(), msg, logger.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
