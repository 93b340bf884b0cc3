package server

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
)

// CSRFCookieName is the cookie carrying the double-submit copy of the
// handshake token.
const CSRFCookieName = "__marquee_csrf"

// Token layout: 16-byte random nonce followed by a 32-byte HMAC-SHA256
// signature of the nonce, base64url encoded without padding.
const (
	csrfNonceLen = 16
	csrfTokenLen = csrfNonceLen + sha256.Size
)

// GenerateCSRFToken mints a signed token. The token is embedded in the
// page as a meta tag and echoed by the client during the handshake.
// Panics if the system random source fails.
func (s *Server) GenerateCSRFToken() string {
	nonce := make([]byte, csrfNonceLen)
	if _, err := rand.Read(nonce); err != nil {
		panic("server: failed to generate CSRF nonce: " + err.Error())
	}
	raw := make([]byte, 0, csrfTokenLen)
	raw = append(raw, nonce...)
	raw = append(raw, signCSRF(s.config.CSRFSecret, nonce)...)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// SetCSRFCookie mints a token, sets the double-submit cookie on the
// response and returns the token for embedding in the page.
func (s *Server) SetCSRFCookie(w http.ResponseWriter, r *http.Request) string {
	token := s.GenerateCSRFToken()
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// validateCSRF checks the token echoed in the client hello. The token
// must carry a valid signature and match the double-submit cookie sent
// with the upgrade request. Validation is skipped when no secret is
// configured.
func (s *Server) validateCSRF(r *http.Request, token string) error {
	if len(s.config.CSRFSecret) == 0 {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != csrfTokenLen {
		return ErrInvalidCSRF
	}
	nonce, sig := raw[:csrfNonceLen], raw[csrfNonceLen:]
	if !hmac.Equal(sig, signCSRF(s.config.CSRFSecret, nonce)) {
		return ErrInvalidCSRF
	}
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil {
		return ErrInvalidCSRF
	}
	if !hmac.Equal([]byte(cookie.Value), []byte(token)) {
		return ErrInvalidCSRF
	}
	return nil
}

func signCSRF(secret, nonce []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(nonce)
	return mac.Sum(nil)
}
