package middleware

import "net/http"

// MethodOverride lets HTML forms issue PUT, PATCH and DELETE requests by
// POSTing a hidden _method field. It must wrap the router so the override
// applies before route matching.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch m := r.PostFormValue("_method"); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
