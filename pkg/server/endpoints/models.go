package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/modelgate/modelgate/pkg/audit"
	"github.com/modelgate/modelgate/pkg/flash"
	"github.com/modelgate/modelgate/pkg/identity"
	"github.com/modelgate/modelgate/pkg/model"
	"github.com/modelgate/modelgate/pkg/server"
	"github.com/modelgate/modelgate/pkg/server/middleware"
	"github.com/modelgate/modelgate/pkg/server/store"
	"github.com/modelgate/modelgate/pkg/server/views"
)

// RegisterModelEndpoints registers the model resource endpoints. All of
// them sit behind the session middleware.
func RegisterModelEndpoints(s *server.Server, session *middleware.SessionAuthenticator, view *views.View) {
	records := s.Records
	authz := s.Authz

	modelRouter := s.Router.PathPrefix("/model").Subrouter()
	modelRouter.Use(session.Middleware)

	modelRouter.HandleFunc("", handleModelIndex(records, authz, view)).Methods("GET")
	modelRouter.HandleFunc("/create", handleModelCreateForm(authz, view)).Methods("GET")
	modelRouter.HandleFunc("", handleModelStore(records, authz)).Methods("POST")
	modelRouter.HandleFunc("/{id}", handleModelShow(records, authz, view)).Methods("GET")
	modelRouter.HandleFunc("/{id}/edit", handleModelEditForm(records, authz, view)).Methods("GET")
	modelRouter.HandleFunc("/{id}", handleModelUpdate(records, authz)).Methods("PUT", "PATCH")
	modelRouter.HandleFunc("/{id}", handleModelDestroy(records, authz)).Methods("DELETE")
}

// requireAnyPermission checks that the authenticated user holds at least
// one of the given permissions. On refusal it emits an audit event and
// writes the 403 itself.
func requireAnyPermission(w http.ResponseWriter, r *http.Request, authz store.AuthzStore, action string, permissions ...string) (*identity.Identity, bool) {
	id, ok := identity.Get(r.Context())
	if !ok {
		// Session middleware puts identity in context; a missing one
		// means the route was registered without it.
		http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
		return nil, false
	}

	for _, permission := range permissions {
		if authz.UserCan(id.UserID, permission) {
			return id, true
		}
	}

	audit.Log(audit.DeniedEvent{
		UserID:     id.UserID,
		Login:      id.Login,
		Permission: permissions[0],
		Action:     action,
	})
	respondWithError(w, http.StatusForbidden, "forbidden")
	return nil, false
}

// validateRecordForm checks the submitted columns. Both are required.
func validateRecordForm(r *http.Request) (col1 string, col2 string, errs flash.Errors) {
	_ = r.ParseForm()
	col1 = strings.TrimSpace(r.PostFormValue("col1"))
	col2 = strings.TrimSpace(r.PostFormValue("col2"))

	errs = flash.Errors{}
	if col1 == "" {
		errs["col1"] = "The col1 field is required."
	}
	if col2 == "" {
		errs["col2"] = "The col2 field is required."
	}
	if len(errs) == 0 {
		errs = nil
	}
	return col1, col2, errs
}

// pageFor assembles the common page data: the signed-in login plus any
// one-shot flash payloads carried over the redirect.
func pageFor(w http.ResponseWriter, r *http.Request, title string) views.Page {
	page := views.Page{Title: title}
	if id, ok := identity.Get(r.Context()); ok {
		page.Login = id.Login
	}
	if msg, ok := flash.Take(w, r); ok {
		page.Flash = msg
	}
	page.Errors = flash.TakeErrors(w, r)
	page.Old = flash.TakeOldInput(w, r)
	return page
}

func handleModelIndex(records store.RecordsStore, authz store.AuthzStore, view *views.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAnyPermission(w, r, authz, "index", model.PermModelAccess); !ok {
			return
		}

		all, err := records.ListRecords()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list models")
			return
		}

		page := pageFor(w, r, "Models")
		page.Records = all
		_ = view.Render(w, http.StatusOK, "index", page)
	}
}

func handleModelCreateForm(authz store.AuthzStore, view *views.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAnyPermission(w, r, authz, "create", model.PermModelCreate); !ok {
			return
		}

		page := pageFor(w, r, "New Model")
		_ = view.Render(w, http.StatusOK, "create", page)
	}
}

func handleModelStore(records store.RecordsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireAnyPermission(w, r, authz, "store", model.PermModelCreate)
		if !ok {
			return
		}

		col1, col2, errs := validateRecordForm(r)
		if errs != nil {
			flash.SetErrors(w, errs)
			flash.SetOldInput(w, map[string]string{"col1": col1, "col2": col2})
			redirectBack(w, r, "/model/create")
			return
		}

		record, err := records.CreateRecord(col1, col2)
		if err != nil {
			audit.Log(audit.ChangeEvent{
				UserID:       id.UserID,
				Login:        id.Login,
				Operation:    "create",
				ErrorMessage: err.Error(),
			})
			respondWithError(w, http.StatusInternalServerError, "failed to create model")
			return
		}

		audit.Log(audit.ChangeEvent{
			UserID:    id.UserID,
			Login:     id.Login,
			Operation: "create",
			RecordID:  record.ID,
			Succeeded: true,
		})
		flash.Set(w, flash.Message{
			State:   flash.StateSuccess,
			Message: "The Model was created successfully",
		})
		http.Redirect(w, r, "/model/"+record.ID, http.StatusSeeOther)
	}
}

func handleModelShow(records store.RecordsStore, authz store.AuthzStore, view *views.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAnyPermission(w, r, authz, "show", model.PermModelShow); !ok {
			return
		}

		record, err := records.FetchRecord(mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				respondWithError(w, http.StatusNotFound, "Model not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch model")
			return
		}

		page := pageFor(w, r, "Model")
		page.Record = record
		_ = view.Render(w, http.StatusOK, "show", page)
	}
}

func handleModelEditForm(records store.RecordsStore, authz store.AuthzStore, view *views.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAnyPermission(w, r, authz, "edit", model.PermModelEdit); !ok {
			return
		}

		record, err := records.FetchRecord(mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				respondWithError(w, http.StatusNotFound, "Model not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch model")
			return
		}

		page := pageFor(w, r, "Edit Model")
		page.Record = record
		_ = view.Render(w, http.StatusOK, "edit", page)
	}
}

func handleModelUpdate(records store.RecordsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Either the edit or the update permission unlocks this.
		id, ok := requireAnyPermission(w, r, authz, "update", model.PermModelEdit, model.PermModelUpdate)
		if !ok {
			return
		}

		recordID := mux.Vars(r)["id"]

		col1, col2, errs := validateRecordForm(r)
		if errs != nil {
			flash.SetErrors(w, errs)
			flash.SetOldInput(w, map[string]string{"col1": col1, "col2": col2})
			redirectBack(w, r, "/model/"+recordID+"/edit")
			return
		}

		record, err := records.UpdateRecord(recordID, col1, col2)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				respondWithError(w, http.StatusNotFound, "Model not found")
				return
			}
			audit.Log(audit.ChangeEvent{
				UserID:       id.UserID,
				Login:        id.Login,
				Operation:    "update",
				RecordID:     recordID,
				ErrorMessage: err.Error(),
			})
			respondWithError(w, http.StatusInternalServerError, "failed to update model")
			return
		}

		audit.Log(audit.ChangeEvent{
			UserID:    id.UserID,
			Login:     id.Login,
			Operation: "update",
			RecordID:  record.ID,
			Succeeded: true,
		})
		flash.Set(w, flash.Message{
			State:   flash.StateSuccess,
			Message: "The Model was updated successfully",
		})
		http.Redirect(w, r, "/model/"+record.ID, http.StatusSeeOther)
	}
}

func handleModelDestroy(records store.RecordsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireAnyPermission(w, r, authz, "destroy", model.PermModelDelete)
		if !ok {
			return
		}

		recordID := mux.Vars(r)["id"]

		if err := records.DeleteRecord(recordID); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				respondWithError(w, http.StatusNotFound, "Model not found")
				return
			}
			audit.Log(audit.ChangeEvent{
				UserID:       id.UserID,
				Login:        id.Login,
				Operation:    "delete",
				RecordID:     recordID,
				ErrorMessage: err.Error(),
			})
			respondWithError(w, http.StatusInternalServerError, "failed to delete model")
			return
		}

		audit.Log(audit.ChangeEvent{
			UserID:    id.UserID,
			Login:     id.Login,
			Operation: "delete",
			RecordID:  recordID,
			Succeeded: true,
		})
		flash.Set(w, flash.Message{
			State:   flash.StateSuccess,
			Message: "The Model was deleted successfully",
		})
		http.Redirect(w, r, "/model", http.StatusSeeOther)
	}
}
