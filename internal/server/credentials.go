package server

import (
	"net/http"
	"strings"

	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
)

// bearerToken は Authorization ヘッダー（Bearer 付き/なし）か旧クライアントの Jwt ヘッダーからトークンを取り出す。
func bearerToken(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return header
	}
	return strings.TrimSpace(r.Header.Get("Jwt"))
}

// credentialMiddleware はトークンまたはセッション Cookie から呼び出し元を解決しコンテキストへ詰める。
// 資格情報が無い場合は匿名として通し、認可は各ルートのミドルウェアに任せる。
func (s *Server) credentialMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if token := bearerToken(r); token != "" {
			claims, err := s.tokens.Parse(token)
			if err != nil {
				s.logger.Debug("rejecting token", "error", err)
				common.WriteError(s.logger, w, r, publicapp.ErrAuthenticationFailed)
				return
			}
			ctx = common.ContextWithCredential(ctx, common.Credential{
				Principal: claims.Principal(),
				Source:    common.SourceToken,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if cookie, err := r.Cookie(common.SessionCookieName); err == nil && cookie.Value != "" {
			userID, ok, err := s.sessions.Lookup(ctx, cookie.Value)
			if err != nil {
				common.WriteError(s.logger, w, r, err)
				return
			}
			if ok {
				ctx = common.ContextWithCredential(ctx, common.Credential{
					Principal: publicapp.Principal{UserID: userID},
					Source:    common.SourceSession,
					SessionID: cookie.Value,
				})
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
