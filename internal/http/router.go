package httpserver

import "net/http"

// Routes groups HTTP handlers.
type Routes struct {
	FacilityInvoices http.HandlerFunc
	CustomerInvoice  http.HandlerFunc
	Health           http.HandlerFunc

	// Auth wraps the invoice endpoints when set.
	Auth func(http.Handler) http.Handler
}

// NewRouter registers service endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.FacilityInvoices != nil {
		mux.Handle("/facilities/{facilityID}/invoices", guard(routes.Auth, method(http.MethodGet, routes.FacilityInvoices)))
	}
	if routes.CustomerInvoice != nil {
		mux.Handle("/facilities/{facilityID}/invoices/{customerID}", guard(routes.Auth, method(http.MethodGet, routes.CustomerInvoice)))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}

func guard(auth func(http.Handler) http.Handler, handler http.Handler) http.Handler {
	if auth == nil {
		return handler
	}
	return auth(handler)
}
