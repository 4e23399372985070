package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// carry copies cookies set on a response onto a fresh request, the way a
// browser would across a redirect.
func carry(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestMessageRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	Set(w, Message{State: StateSuccess, Message: "The Model was created successfully"})

	req := carry(t, w)
	next := httptest.NewRecorder()

	msg, ok := Take(next, req)
	if !ok {
		t.Fatal("expected a flash message")
	}
	assert.Equal(t, StateSuccess, msg.State)
	assert.Equal(t, "The Model was created successfully", msg.Message)

	// Take must clear the cookie.
	var cleared bool
	for _, c := range next.Result().Cookies() {
		if c.Name == messageCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the flash cookie to be expired on read")
}

func TestTakeWithoutSet(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	if _, ok := Take(w, req); ok {
		t.Error("expected no flash message on a fresh request")
	}
	if errs := TakeErrors(w, req); errs != nil {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestErrorsRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	SetErrors(w, Errors{
		"col1": "The col1 field is required.",
		"col2": "The col2 field is required.",
	})

	next := httptest.NewRecorder()
	errs := TakeErrors(next, carry(t, w))

	assert.Len(t, errs, 2)
	assert.Equal(t, "The col1 field is required.", errs["col1"])
	assert.Equal(t, "The col2 field is required.", errs["col2"])
}

func TestOldInputRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	SetOldInput(w, map[string]string{"col1": "abc", "col2": ""})

	next := httptest.NewRecorder()
	values := TakeOldInput(next, carry(t, w))

	assert.Equal(t, "abc", values["col1"])
	assert.Equal(t, "", values["col2"])
}

func TestStateJSON(t *testing.T) {
	data, err := StateSuccess.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"success"`, string(data))

	var s State
	assert.NoError(t, s.UnmarshalJSON([]byte(`"error"`)))
	assert.Equal(t, StateError, s)

	assert.Error(t, s.UnmarshalJSON([]byte(`"warning"`)))
}
