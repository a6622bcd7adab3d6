package common

const (
	// MaxRequestBody limits JSON request bodies.
	MaxRequestBody = 1 << 20
	// SessionCookieName is the cookie carrying the server-side session id.
	SessionCookieName = "sessionid"
	// SignupTicketCookieName mirrors the Kakao signup ticket for browser clients.
	SignupTicketCookieName = "kakao_signup_ticket"
)
