package public

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
)

func (h *Handler) userSignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req signupRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		user, err := h.users.Signup(ctx, publicapp.SignupCommand{
			Username: req.Username,
			Password: req.Password,
			Name:     req.Name,
			Email:    req.Email,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.logger.Info("user signed up", "user_id", user.ID, "username", user.Username)
		h.ok(w, http.StatusCreated, buildPrivateUser(*user))
	}
}

func (h *Handler) meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		user, err := h.users.Me(ctx, common.PrincipalFromContext(ctx))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildPrivateUser(*user))
	}
}

func (h *Handler) meUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req meUpdateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		user, err := h.users.UpdateMe(ctx, common.PrincipalFromContext(ctx), publicapp.UpdateProfileCommand{
			Name:      req.Name,
			Email:     req.Email,
			AvatarURL: req.Avatar,
			IsHost:    req.IsHost,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildPrivateUser(*user))
	}
}

func (h *Handler) changePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req changePasswordRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.users.ChangePassword(ctx, common.PrincipalFromContext(ctx), req.OldPassword, req.NewPassword); err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, map[string]string{"ok": "password changed"})
	}
}

func (h *Handler) logInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req logInRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		user, err := h.users.Authenticate(ctx, req.Username, req.Password)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		sessionID, err := h.sessions.Create(ctx, user.ID)
		if err != nil {
			h.fail(w, r, fmt.Errorf("create session: %w", err))
			return
		}
		h.setSessionCookie(w, sessionID)
		h.logger.Info("user logged in", "user_id", user.ID)
		h.ok(w, http.StatusOK, map[string]string{"ok": "Welcome!"})
	}
}

func (h *Handler) logOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		cred := common.CredentialFromContext(ctx)
		sessionID := cred.SessionID
		if sessionID == "" {
			if cookie, err := r.Cookie(common.SessionCookieName); err == nil {
				sessionID = cookie.Value
			}
		}
		if sessionID != "" {
			if err := h.sessions.Delete(ctx, sessionID); err != nil {
				h.fail(w, r, fmt.Errorf("delete session: %w", err))
				return
			}
		}
		h.clearCookie(w, common.SessionCookieName)
		h.ok(w, http.StatusOK, map[string]string{"ok": "bye!"})
	}
}

func (h *Handler) publicUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		user, err := h.users.PublicProfile(ctx, chi.URLParam(r, "username"))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildTinyUser(user.Summary()))
	}
}
