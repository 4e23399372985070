package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/pkg/flash"
	"github.com/modelgate/modelgate/pkg/model"
	"github.com/modelgate/modelgate/pkg/server/store"
)

var testUser = &store.User{ID: "user-1", Login: "alice"}

func formRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestModelEndpoints_RequireSession(t *testing.T) {
	h := newTestHarness(t)

	requests := []struct {
		name string
		req  *http.Request
	}{
		{"index", httptest.NewRequest("GET", "/model", nil)},
		{"create form", httptest.NewRequest("GET", "/model/create", nil)},
		{"store", formRequest("POST", "/model", "col1=abc&col2=xyz")},
		{"show", httptest.NewRequest("GET", "/model/some-id", nil)},
		{"edit form", httptest.NewRequest("GET", "/model/some-id/edit", nil)},
		{"update", formRequest("POST", "/model/some-id", "_method=PUT&col1=abc&col2=xyz")},
		{"destroy", formRequest("POST", "/model/some-id", "_method=DELETE")},
	}

	for _, tt := range requests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(tt.req)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/login", rec.Header().Get("Location"))
		})
	}

	h.records.AssertNotCalled(t, "CreateRecord")
	h.records.AssertNotCalled(t, "UpdateRecord")
	h.records.AssertNotCalled(t, "DeleteRecord")
}

func TestModelEndpoints_RequirePermission(t *testing.T) {
	tests := []struct {
		name        string
		req         func() *http.Request
		permissions []string
	}{
		{"index", func() *http.Request { return httptest.NewRequest("GET", "/model", nil) },
			[]string{model.PermModelAccess}},
		{"create form", func() *http.Request { return httptest.NewRequest("GET", "/model/create", nil) },
			[]string{model.PermModelCreate}},
		{"store", func() *http.Request { return formRequest("POST", "/model", "col1=abc&col2=xyz") },
			[]string{model.PermModelCreate}},
		{"show", func() *http.Request { return httptest.NewRequest("GET", "/model/some-id", nil) },
			[]string{model.PermModelShow}},
		{"edit form", func() *http.Request { return httptest.NewRequest("GET", "/model/some-id/edit", nil) },
			[]string{model.PermModelEdit}},
		{"update", func() *http.Request { return formRequest("POST", "/model/some-id", "_method=PUT&col1=abc&col2=xyz") },
			[]string{model.PermModelEdit, model.PermModelUpdate}},
		{"destroy", func() *http.Request { return formRequest("POST", "/model/some-id", "_method=DELETE") },
			[]string{model.PermModelDelete}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			cookie := h.signIn(t, testUser)
			for _, permission := range tt.permissions {
				h.authz.On("UserCan", testUser.ID, permission).Return(false)
			}

			req := tt.req()
			req.AddCookie(cookie)
			rec := h.do(req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			h.records.AssertNotCalled(t, "ListRecords")
			h.records.AssertNotCalled(t, "FetchRecord")
			h.records.AssertNotCalled(t, "CreateRecord")
			h.records.AssertNotCalled(t, "UpdateRecord")
			h.records.AssertNotCalled(t, "DeleteRecord")
		})
	}
}

func TestModelIndex(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelAccess).Return(true)
	h.records.On("ListRecords").Return([]store.Record{
		{ID: "id-1", Col1: "abc", Col2: "xyz"},
		{ID: "id-2", Col1: "def", Col2: "uvw"},
	}, nil)

	req := httptest.NewRequest("GET", "/model", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "abc")
	assert.Contains(t, body, "def")
	assert.Contains(t, body, "/model/id-1")
}

func TestModelCreateForm(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelCreate).Return(true)

	req := httptest.NewRequest("GET", "/model/create", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="col1"`)
	assert.Contains(t, body, `name="col2"`)
}

func TestModelStore(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelCreate).Return(true)
	h.records.On("CreateRecord", "abc", "xyz").
		Return(&store.Record{ID: "new-id", Col1: "abc", Col2: "xyz"}, nil)

	req := formRequest("POST", "/model", "col1=abc&col2=xyz")
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/model/new-id", rec.Header().Get("Location"))

	msg := takeFlashMessage(t, rec)
	require.NotNil(t, msg)
	assert.Equal(t, flash.StateSuccess, msg.State)
	assert.Equal(t, "The Model was created successfully", msg.Message)

	h.records.AssertExpectations(t)
}

func TestModelStore_ValidationFailure(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{"missing col1", "col2=xyz", []string{"col1"}},
		{"missing col2", "col1=abc", []string{"col2"}},
		{"missing both", "", []string{"col1", "col2"}},
		{"whitespace only", "col1=+++&col2=xyz", []string{"col1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			cookie := h.signIn(t, testUser)
			h.authz.On("UserCan", testUser.ID, model.PermModelCreate).Return(true)

			req := formRequest("POST", "/model", tt.body)
			req.AddCookie(cookie)
			req.Header.Set("Referer", "/model/create")
			rec := h.do(req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/model/create", rec.Header().Get("Location"))

			errs := takeFlashErrors(t, rec)
			require.NotNil(t, errs)
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Equal(t, "The "+field+" field is required.", errs[field])
			}

			// nothing persisted
			h.records.AssertNotCalled(t, "CreateRecord")
		})
	}
}

func TestModelStore_KeepsOldInput(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelCreate).Return(true)

	req := formRequest("POST", "/model", "col1=abc")
	req.AddCookie(cookie)
	rec := h.do(req)

	old := takeOldInput(t, rec)
	require.NotNil(t, old)
	assert.Equal(t, "abc", old["col1"])
	assert.Equal(t, "", old["col2"])
}

func TestModelShow(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelShow).Return(true)
	h.records.On("FetchRecord", "id-1").
		Return(&store.Record{ID: "id-1", Col1: "abc", Col2: "xyz"}, nil)

	req := httptest.NewRequest("GET", "/model/id-1", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "abc")
	assert.Contains(t, body, "xyz")
}

func TestModelShow_NotFound(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelShow).Return(true)
	h.records.On("FetchRecord", "missing").Return(nil, store.ErrRecordNotFound)

	req := httptest.NewRequest("GET", "/model/missing", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestModelEditForm(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelEdit).Return(true)
	h.records.On("FetchRecord", "id-1").
		Return(&store.Record{ID: "id-1", Col1: "abc", Col2: "xyz"}, nil)

	req := httptest.NewRequest("GET", "/model/id-1/edit", nil)
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="abc"`)
	assert.Contains(t, body, `value="xyz"`)
}

func TestModelUpdate(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelEdit).Return(true)
	h.records.On("UpdateRecord", "id-1", "new1", "new2").
		Return(&store.Record{ID: "id-1", Col1: "new1", Col2: "new2"}, nil)

	req := formRequest("POST", "/model/id-1", "_method=PUT&col1=new1&col2=new2")
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/model/id-1", rec.Header().Get("Location"))

	msg := takeFlashMessage(t, rec)
	require.NotNil(t, msg)
	assert.Equal(t, flash.StateSuccess, msg.State)
	assert.Equal(t, "The Model was updated successfully", msg.Message)

	h.records.AssertExpectations(t)
}

func TestModelUpdate_UpdatePermissionSuffices(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelEdit).Return(false)
	h.authz.On("UserCan", testUser.ID, model.PermModelUpdate).Return(true)
	h.records.On("UpdateRecord", "id-1", "new1", "new2").
		Return(&store.Record{ID: "id-1", Col1: "new1", Col2: "new2"}, nil)

	req := formRequest("PUT", "/model/id-1", "col1=new1&col2=new2")
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	h.records.AssertExpectations(t)
}

func TestModelUpdate_ValidationFailure(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelEdit).Return(true)

	req := formRequest("POST", "/model/id-1", "_method=PUT&col1=new1")
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/model/id-1/edit", rec.Header().Get("Location"))

	errs := takeFlashErrors(t, rec)
	require.NotNil(t, errs)
	assert.Equal(t, "The col2 field is required.", errs["col2"])

	h.records.AssertNotCalled(t, "UpdateRecord")
}

func TestModelUpdate_NotFound(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelEdit).Return(true)
	h.records.On("UpdateRecord", "missing", "abc", "xyz").
		Return(nil, store.ErrRecordNotFound)

	req := formRequest("PUT", "/model/missing", "col1=abc&col2=xyz")
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestModelDestroy(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelDelete).Return(true)
	h.records.On("DeleteRecord", "id-1").Return(nil)

	req := formRequest("POST", "/model/id-1", "_method=DELETE")
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/model", rec.Header().Get("Location"))

	h.records.AssertExpectations(t)
}

func TestModelDestroy_NotFound(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelDelete).Return(true)
	h.records.On("DeleteRecord", "missing").Return(store.ErrRecordNotFound)

	req := formRequest("POST", "/model/missing", "_method=DELETE")
	req.AddCookie(cookie)
	rec := h.do(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestModelIndex_ShowsFlashAfterRedirect(t *testing.T) {
	h := newTestHarness(t)
	cookie := h.signIn(t, testUser)
	h.authz.On("UserCan", testUser.ID, model.PermModelAccess).Return(true)
	h.records.On("ListRecords").Return([]store.Record{}, nil)

	req := httptest.NewRequest("GET", "/model", nil)
	req.AddCookie(cookie)
	flashValue := func() string {
		rec := httptest.NewRecorder()
		flash.Set(rec, flash.Message{State: flash.StateSuccess, Message: "The Model was deleted successfully"})
		return rec.Result().Cookies()[0].Value
	}()
	req.AddCookie(&http.Cookie{Name: "modelgate_flash", Value: flashValue})
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Model was deleted successfully")

	// flash is one-shot: the cookie comes back cleared
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "modelgate_flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
