package transport

import "net/http"

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {
	// No authentication applied
}

// HeaderAuth sends the credential in a custom header. Shopify uses
// X-Shopify-Access-Token.
type HeaderAuth struct {
	Header string
	Value  string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request) {
	req.Header.Set(a.Header, a.Value)
}

// QueryAuth sends the credential as a query parameter. The POS export
// endpoint takes its shared secret as "ps".
type QueryAuth struct {
	Param string
	Value string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, a.Value)
	req.URL.RawQuery = query.Encode()
}
