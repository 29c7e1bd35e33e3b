/*
Package routecors provides [net/http] middleware for
[Cross-Origin Resource Sharing (CORS)] that derives the methods it advertises
in responses to [CORS-preflight requests] from a route table.

A [Decorator] sets the following response headers:

  - [Access-Control-Allow-Origin], to the configured origins,
    separated by commas;
  - [Access-Control-Allow-Credentials], to "true" or "false".

Moreover, when the request's method is [OPTIONS], the Decorator resolves
the route template that matches the request's path (see [Routes.Match])
and sets the following response headers:

  - [Access-Control-Allow-Methods] and [Allow], to the methods registered
    on that route template, along with OPTIONS;
  - [Access-Control-Allow-Headers], to the value(s) of the request's
    [Access-Control-Request-Headers] header (or to the empty string);
  - [Access-Control-Max-Age], if and only if a max-age value is configured.

Route templates consist of literal text and placeholders of the form
"/{name}". A placeholder matches a slash followed by one or more ASCII
letters, digits, or underscores; in particular, it matches neither slashes
nor periods nor hyphens.

This package performs no validation of the configuration
you pass to [NewDecorator]; values are reflected in responses verbatim.
Call [Config.Validate] if you want to detect configuration mistakes that
would cause browsers to fail CORS checks.

Care is required for such middleware to work as intended:

  - Because CORS-preflight requests use OPTIONS as their method,
    you [SHOULD NOT] prevent OPTIONS requests from reaching the Decorator.
  - Because [CORS-preflight requests are not authenticated], authentication
    [SHOULD NOT] take place "ahead of" the Decorator.
  - A [Routes] value must be fully populated before it starts serving
    requests.
  - Multiple CORS middleware [MUST NOT] be stacked.

Subpackages chiroutes and ginroutes build a [Routes] value from the route
tables of [chi] and [gin] routers, respectively.

[Access-Control-Allow-Credentials]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Allow-Credentials
[Access-Control-Allow-Headers]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Allow-Headers
[Access-Control-Allow-Methods]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Allow-Methods
[Access-Control-Allow-Origin]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Allow-Origin
[Access-Control-Max-Age]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Max-Age
[Access-Control-Request-Headers]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Request-Headers
[Allow]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Allow
[CORS-preflight requests are not authenticated]: https://fetch.spec.whatwg.org/#cors-protocol-and-credentials
[CORS-preflight requests]: https://developer.mozilla.org/en-US/docs/Glossary/Preflight_request
[Cross-Origin Resource Sharing (CORS)]: https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS
[MUST NOT]: https://www.ietf.org/rfc/rfc2119.txt
[OPTIONS]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Methods/OPTIONS
[SHOULD NOT]: https://www.ietf.org/rfc/rfc2119.txt
[chi]: https://github.com/go-chi/chi
[gin]: https://github.com/gin-gonic/gin
*/
package routecors
