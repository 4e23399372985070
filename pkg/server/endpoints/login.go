package endpoints

import (
	"net/http"
	"strings"

	"github.com/modelgate/modelgate/pkg/audit"
	"github.com/modelgate/modelgate/pkg/flash"
	"github.com/modelgate/modelgate/pkg/server"
	"github.com/modelgate/modelgate/pkg/server/middleware"
	"github.com/modelgate/modelgate/pkg/server/store"
	"github.com/modelgate/modelgate/pkg/server/views"
)

// RegisterLoginEndpoints registers the session endpoints. These are the
// only pages reachable without a session.
func RegisterLoginEndpoints(s *server.Server, session *middleware.SessionAuthenticator, view *views.View) {
	users := s.Users

	s.Router.HandleFunc("/login", handleLoginForm(view)).Methods("GET")
	s.Router.HandleFunc("/login", handleLogin(users, session)).Methods("POST")
	s.Router.HandleFunc("/logout", handleLogout()).Methods("POST")
}

func handleLoginForm(view *views.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pageFor(w, r, "Log in")
		_ = view.Render(w, http.StatusOK, "login", page)
	}
}

func handleLogin(users store.UsersStore, session *middleware.SessionAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		login := strings.TrimSpace(r.PostFormValue("login"))
		password := r.PostFormValue("password")

		user, err := users.Authenticate(login, []byte(password))
		if err != nil {
			audit.Log(audit.LoginEvent{
				Login:        login,
				ClientIP:     clientIP(r),
				ErrorMessage: err.Error(),
			})
			flash.SetErrors(w, flash.Errors{"login": "These credentials do not match our records."})
			flash.SetOldInput(w, map[string]string{"login": login})
			http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
			return
		}

		cookie, err := session.IssueCookie(user)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to issue session")
			return
		}

		audit.Log(audit.LoginEvent{
			Login:     login,
			ClientIP:  clientIP(r),
			Succeeded: true,
		})
		http.SetCookie(w, cookie)
		http.Redirect(w, r, "/model", http.StatusSeeOther)
	}
}

func handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, middleware.ClearCookie())
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
	}
}
