package headers

import (
	"net/http"
	"slices"
)

// header names in canonical format
const (
	// preflight-only request headers
	ACRH = "Access-Control-Request-Headers"

	// common response headers
	ACAO = "Access-Control-Allow-Origin"
	ACAC = "Access-Control-Allow-Credentials"

	// preflight-only response headers
	ACAM  = "Access-Control-Allow-Methods"
	ACAH  = "Access-Control-Allow-Headers"
	ACMA  = "Access-Control-Max-Age"
	Allow = "Allow"
)

const (
	ValueTrue     = "true"
	ValueFalse    = "false"
	ValueWildcard = "*"
)

// ValueSep separates the elements of the list-based values we produce.
const ValueSep = ", "

// Reflect returns a copy of all the field lines of k in hdrs.
// If k is absent from hdrs (or present but without any field line),
// Reflect returns a singleton slice containing the empty string.
// Precondition: k is in canonical format (see [http.CanonicalHeaderKey]).
//
// The result is never shared with hdrs, so that handlers that mutate the
// request's headers cannot alter the response's headers.
func Reflect(hdrs http.Header, k string) []string {
	v, found := hdrs[k]
	if !found || len(v) == 0 {
		return []string{""}
	}
	return slices.Clone(v)
}
