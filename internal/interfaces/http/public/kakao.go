package public

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sngm3741/delight-spot/api/internal/auth"
	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
)

type kakaoLoginResponse struct {
	IsMember     bool   `json:"is_member"`
	KakaoJWT     string `json:"kakao_jwt,omitempty"`
	SignupTicket string `json:"signup_ticket,omitempty"`
}

type kakaoSignupResponse struct {
	Signup   bool   `json:"signup"`
	KakaoJWT string `json:"kakao_jwt"`
}

func (h *Handler) kakaoLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req kakaoLoginRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.kakaoFail(w, r, err)
			return
		}
		result, err := h.kakao.Login(ctx, req.Code)
		if err != nil {
			h.kakaoFail(w, r, err)
			return
		}
		if !result.IsMember {
			h.setCookie(w, common.SignupTicketCookieName, result.SignupTicket, h.signupTicketTTL)
			h.ok(w, http.StatusOK, kakaoLoginResponse{IsMember: false, SignupTicket: result.SignupTicket})
			return
		}
		h.setSessionCookie(w, result.SessionID)
		h.ok(w, http.StatusOK, kakaoLoginResponse{IsMember: true, KakaoJWT: result.Token})
	}
}

func (h *Handler) kakaoSignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req kakaoSignupRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.kakaoFail(w, r, err)
			return
		}
		ticket := strings.TrimSpace(req.SignupTicket)
		if ticket == "" {
			ticket = signupTicketFromCookie(r)
		}
		result, err := h.kakao.Signup(ctx, req.Email, ticket)
		if err != nil {
			h.kakaoFail(w, r, err)
			return
		}
		h.clearCookie(w, common.SignupTicketCookieName)
		h.setSessionCookie(w, result.SessionID)
		h.ok(w, http.StatusOK, kakaoSignupResponse{Signup: true, KakaoJWT: result.Token})
	}
}

// kakaoFail reports every Kakao flow failure as 400. Provider bodies pass through verbatim.
func (h *Handler) kakaoFail(w http.ResponseWriter, r *http.Request, err error) {
	var providerErr *auth.ProviderError
	if errors.As(err, &providerErr) {
		h.logger.Warn("kakao provider error", "stage", providerErr.Stage, "status", providerErr.Status)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(providerErr.Body)
		return
	}
	var validation *publicapp.ValidationError
	if errors.As(err, &validation) {
		h.ok(w, http.StatusBadRequest, map[string]string{"detail": validation.Message})
		return
	}
	h.logger.Error("kakao flow failed", "method", r.Method, "path", r.URL.Path, "error", err)
	h.ok(w, http.StatusBadRequest, map[string]string{"error": "kakao login failed"})
}
