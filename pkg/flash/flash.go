// Package flash carries one-shot payloads across a redirect.
//
// A flash is a structured value (state + message) attached to the response
// rather than ambient session state: it travels on a cookie set alongside
// the redirect and is cleared the first time it is read. Validation
// failures use the same mechanism to carry field-keyed error messages and
// the submitted input back to the form.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const (
	messageCookie = "modelgate_flash"
	errorsCookie  = "modelgate_errors"
	inputCookie   = "modelgate_old"
)

// Message is the flash payload shown after a successful mutation.
type Message struct {
	State   State  `json:"state"`
	Message string `json:"message"`
}

// Errors maps field names to validation error messages.
type Errors map[string]string

// Set attaches a flash message to the response.
func Set(w http.ResponseWriter, msg Message) {
	setCookie(w, messageCookie, msg)
}

// Take reads and clears the flash message, if any.
func Take(w http.ResponseWriter, r *http.Request) (*Message, bool) {
	var msg Message
	if !takeCookie(w, r, messageCookie, &msg) {
		return nil, false
	}
	return &msg, true
}

// SetErrors attaches field-keyed validation errors to the response.
func SetErrors(w http.ResponseWriter, errs Errors) {
	setCookie(w, errorsCookie, errs)
}

// TakeErrors reads and clears the validation errors, if any.
func TakeErrors(w http.ResponseWriter, r *http.Request) Errors {
	var errs Errors
	if !takeCookie(w, r, errorsCookie, &errs) {
		return nil
	}
	return errs
}

// SetOldInput attaches the submitted form values so a redisplayed form can
// repopulate its fields.
func SetOldInput(w http.ResponseWriter, values map[string]string) {
	setCookie(w, inputCookie, values)
}

// TakeOldInput reads and clears the previously submitted form values.
func TakeOldInput(w http.ResponseWriter, r *http.Request) map[string]string {
	var values map[string]string
	if !takeCookie(w, r, inputCookie, &values) {
		return nil
	}
	return values
}

func setCookie(w http.ResponseWriter, name string, payload interface{}) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.URLEncoding.EncodeToString(encoded),
		Path:     "/",
		HttpOnly: true,
	})
}

func takeCookie(w http.ResponseWriter, r *http.Request, name string, out interface{}) bool {
	cookie, err := r.Cookie(name)
	if err != nil {
		return false
	}

	// One-shot: clear on first read.
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(decoded, out); err != nil {
		return false
	}
	return true
}
