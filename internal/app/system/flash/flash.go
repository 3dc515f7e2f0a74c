// Package flash carries a one-shot status message across a redirect in a
// signed cookie. Features set a message right before redirecting after a
// successful mutation; the next page render takes it and the cookie is
// cleared.
package flash

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

const cookieName = "console_flash"

var codec *securecookie.SecureCookie

// Init configures the signing key. Call once at startup; the session key
// is fine to reuse here since the cookie only carries UI copy.
func Init(key []byte) {
	codec = securecookie.New(key, nil)
}

// Set stores msg for the next page render.
func Set(w http.ResponseWriter, msg string) {
	if codec == nil || msg == "" {
		return
	}
	encoded, err := codec.Encode(cookieName, msg)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take returns the pending message, if any, and clears the cookie.
func Take(w http.ResponseWriter, r *http.Request) string {
	if codec == nil {
		return ""
	}
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	var msg string
	if err := codec.Decode(cookieName, c.Value, &msg); err != nil {
		msg = ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return msg
}
