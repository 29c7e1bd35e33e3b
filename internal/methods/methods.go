package methods

import (
	"net/http"

	"github.com/jub0bs/routecors/internal/util"
	"golang.org/x/net/http/httpguts"
)

// IsValid reports whether name is a valid method, [per the Fetch standard].
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#concept-method
func IsValid(name string) bool {
	// Note: the production is identical to that of header names.
	return httpguts.ValidHeaderFieldName(name)
}

// Normalize [normalizes] name: if name is a byte-case-insensitive match
// for one of DELETE, GET, HEAD, OPTIONS, POST, or PUT, Normalize returns
// name byte-uppercased; otherwise, it returns name unchanged.
//
// [normalizes]: https://fetch.spec.whatwg.org/#concept-method-normalize
func Normalize(name string) string {
	upper := util.ByteUppercase(name)
	if normalizedMethods.Contains(upper) {
		return upper
	}
	return name
}

var normalizedMethods = util.NewSortedSet(
	http.MethodDelete,
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodPost,
	http.MethodPut,
)
