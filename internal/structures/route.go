package structures

import "net/http"

// Route is one API endpoint. Url may contain {wildcards} understood by
// http.ServeMux.
type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}

// Pattern returns the ServeMux pattern, e.g. "GET /api/scan/{slug}".
func (r Route) Pattern() string {
	if r.Method == "" {
		return r.Url
	}
	return r.Method + " " + r.Url
}
