/*
Package cfgerrors provides functionalities for programmatically handling
the errors produced by package [github.com/jub0bs/routecors], whether they
stem from linting a configuration (see
[github.com/jub0bs/routecors.Config.Validate]) or from registering routes
(see [github.com/jub0bs/routecors.Routes.Handle]).

Most users of package [github.com/jub0bs/routecors] have no use for this
package. However, applications that let their operators edit CORS
configuration at runtime (e.g. via some administration endpoint) may find
this package useful: it allows them to report configuration mistakes via
custom, human-friendly error messages.
*/
package cfgerrors

import (
	"fmt"
	"iter"
)

// An UnacceptableOriginError indicates an unacceptable origin.
// The Reason field may take one of three values:
//   - "missing": no origin was specified;
//   - "invalid": the origin is neither "*" nor a valid serialized origin;
//   - "prohibited": the origin is prohibited by this library.
//
// For more details, see [github.com/jub0bs/routecors.Config].
type UnacceptableOriginError struct {
	Value  string // the unacceptable value that was specified
	Reason string // missing | invalid | prohibited
}

func (err *UnacceptableOriginError) Error() string {
	if err.Reason == "missing" {
		return "routecors: at least one origin should be allowed"
	}
	const tmpl = "routecors: %s origin %q"
	return fmt.Sprintf(tmpl, err.Reason, err.Value)
}

// An IncompatibleOriginError indicates an origin that conflicts
// with other elements of the configuration. Two cases are possible:
//   - Value == "*" and Reason == "credentialed": the wildcard origin was
//     specified and credentialed access was enabled; browsers reject
//     such responses to credentialed requests.
//   - Reason == "psl": the origin's host is a [public suffix].
//
// For more details, see [github.com/jub0bs/routecors.Config].
//
// [public suffix]: https://publicsuffix.org/
type IncompatibleOriginError struct {
	Value  string // "*" | some other origin
	Reason string // credentialed | psl
}

func (err *IncompatibleOriginError) Error() string {
	switch err.Reason {
	case "credentialed":
		return "routecors: browsers reject the wildcard origin when credentialed access is enabled"
	case "psl":
		const tmpl = "routecors: the host of origin %q is a public suffix"
		return fmt.Sprintf(tmpl, err.Value)
	default:
		// We never produce such errors; this case only exists to make the
		// compiler happy.
		return "routecors: unknown issue"
	}
}

// A MaxAgeOutOfBoundsError indicates a max-age value that's either
// negative or larger than browsers tolerate.
//
// For more details, see [github.com/jub0bs/routecors.Config].
type MaxAgeOutOfBoundsError struct {
	Value int // the unacceptable value that was specified
	Max   int // maximum max-age value tolerated by this library
}

func (err *MaxAgeOutOfBoundsError) Error() string {
	const tmpl = "routecors: out-of-bounds max-age value %d (min: 0; max: %d)"
	return fmt.Sprintf(tmpl, err.Value, err.Max)
}

// An UnacceptableMethodError indicates an attempt to register a route for
// a method whose name is not a valid [token].
//
// [token]: https://httpwg.org/specs/rfc9110.html#rfc.section.5.6.2
type UnacceptableMethodError struct {
	Value  string // the unacceptable value that was specified
	Reason string // invalid
}

func (err *UnacceptableMethodError) Error() string {
	const tmpl = "routecors: %s method %q"
	return fmt.Sprintf(tmpl, err.Reason, err.Value)
}

// An UnacceptableTemplateError indicates an attempt to register a route
// template that does not start with a slash.
type UnacceptableTemplateError struct {
	Value  string // the unacceptable value that was specified
	Reason string // invalid
}

func (err *UnacceptableTemplateError) Error() string {
	const tmpl = "routecors: %s route template %q (must start with %q)"
	return fmt.Sprintf(tmpl, err.Reason, err.Value, "/")
}

// A DuplicateRouteError indicates an attempt to register a second handler
// for a given pair of route template and method.
type DuplicateRouteError struct {
	Template string
	Method   string
}

func (err *DuplicateRouteError) Error() string {
	const tmpl = "routecors: a handler is already registered for %s %s"
	return fmt.Sprintf(tmpl, err.Method, err.Template)
}

// A MissingHandlerError indicates an attempt to register a nil handler.
type MissingHandlerError struct {
	Template string
	Method   string
}

func (err *MissingHandlerError) Error() string {
	const tmpl = "routecors: nil handler for %s %s"
	return fmt.Sprintf(tmpl, err.Method, err.Template)
}

// All returns an iterator over the errors contained in err's error tree.
// The order is unspecified and may change from one release to the next.
// All only supports error values produced by package
// [github.com/jub0bs/routecors] and its adapters; it should not be called on
// any other error value.
func All(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		every(err, yield)
	}
}

func every(err error, f func(error) bool) bool {
	switch err := err.(type) {
	// Note that there's no need for any "interface { Unwrap() error }" case
	// because nowhere do we "wrap" errors; we only ever "join" them.
	case interface{ Unwrap() []error }:
		for _, err := range err.Unwrap() {
			if !every(err, f) {
				return false
			}
		}
		return true
	default:
		return f(err)
	}
}
