package origins

import (
	"net/netip"
	"strings"
	"sync"

	"github.com/jub0bs/routecors/cfgerrors"
	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

const (
	schemeHostSep = "://"     // scheme-host separator
	hostPortSep   = ':'       // host-port separator
	labelSep      = '.'       // DNS-label separator
	maxUint16     = 1<<16 - 1 // maximum value for uint16 type
	localhost     = "localhost"
)

const (
	// maxHostLen is the maximum length of a host, which is dominated by
	// the maximum length of an (absolute) domain name (253);
	// see https://devblogs.microsoft.com/oldnewthing/20120412-00/?p=7873.
	maxHostLen = 253
	// maxSchemeLen is the maximum tolerated length for schemes.
	maxSchemeLen = 64
	// maxPortLen is the maximum length of a port's decimal representation.
	maxPortLen = len("65535")
	// maxOriginLen is the maximum length of an origin.
	maxOriginLen = maxSchemeLen + len(schemeHostSep) + maxHostLen + 1 + maxPortLen
)

// Origin represents a (tuple) [Web origin].
//
// [Web origin]: https://developer.mozilla.org/en-US/docs/Glossary/Origin
type Origin struct {
	// Scheme is the origin's scheme.
	Scheme string
	// Host is the origin's host (without brackets, for IPv6 addresses).
	Host string
	// Port is the origin's port (if any).
	// The zero value marks the absence of an explicit port.
	Port int
	// IsIP indicates whether the origin's host is an IP address.
	IsIP bool
}

// Parse parses str, which is expected to be the [ASCII serialization]
// of a Web origin, into an [Origin] structure.
// If it fails, it returns a non-nil error and some invalid origin.
// Note that origin "*" is handled elsewhere.
//
// [ASCII serialization]: https://html.spec.whatwg.org/multipage/browsers.html#ascii-serialisation-of-an-origin
func Parse(str string) (o Origin, err error) {
	// Using [url.Parse] is tempting, but that function is too permissive
	// for our needs (it accepts userinfo, paths, queries, etc.).
	if len(str) > maxOriginLen {
		err = invalidOriginError(str)
		return
	}
	if str == "null" {
		err = prohibitedOriginError(str)
		return
	}
	var (
		rest string
		ok   bool
	)
	o.Scheme, rest, ok = parseScheme(str)
	if !ok {
		err = invalidOriginError(str)
		return
	}
	rest, ok = strings.CutPrefix(rest, schemeHostSep)
	if !ok {
		err = invalidOriginError(str)
		return
	}
	o.Host, o.IsIP, rest, err = parseHost(rest, str)
	if err != nil {
		return
	}
	if rest != "" {
		rest, ok = strings.CutPrefix(rest, string(hostPortSep))
		if !ok {
			err = invalidOriginError(str)
			return
		}
		o.Port, rest, ok = parsePort(rest)
		if !ok || rest != "" {
			err = invalidOriginError(str)
			return
		}
		if isDefaultPortForScheme(o.Scheme, o.Port) {
			err = prohibitedOriginError(str)
			return
		}
	}
	return o, nil
}

func prohibitedOriginError(origin string) error {
	return &cfgerrors.UnacceptableOriginError{
		Value:  origin,
		Reason: "prohibited",
	}
}

func invalidOriginError(origin string) error {
	return &cfgerrors.UnacceptableOriginError{
		Value:  origin,
		Reason: "invalid",
	}
}

// parseScheme parses a URI scheme. If successful, it returns the scheme,
// the unconsumed part of str, and true; otherwise, its ok result is false.
func parseScheme(str string) (scheme, rest string, ok bool) {
	// See https://www.rfc-editor.org/rfc/rfc3986.html#section-3.1.
	if str == "" || !isLowerAlpha(str[0]) {
		return
	}
	end := min(maxSchemeLen, len(str))
	i := 1
	for ; i < end && isSubsequentSchemeByte(str[i]); i++ {
		// deliberately empty body
	}
	scheme = str[:i]
	return scheme, str[i:], scheme != "file"
}

// parseHost scans and validates a host in str.
// If it succeeds, it returns the host, whether the host is an IP address,
// the unconsumed part of str, and nil; otherwise, its err result is some
// non-nil error.
func parseHost(str, rawOrigin string) (host string, isIP bool, rest string, err error) {
	if str != "" && str[0] == '[' { // str must be an IPv6 address.
		var ok bool
		host, rest, ok = strings.Cut(str[1:], "]")
		if !ok { // unmatched left bracket
			err = invalidOriginError(rawOrigin)
			return
		}
		isIP = true
	} else { // str must be either an IPv4 address or a domain.
		i := 0
		for ; i < len(str) && isDomainByte(str[i]); i++ {
			// deliberately empty body
		}
		host, rest = str[:i], str[i:]
		// If the last non-empty label starts with a digit,
		// assume an IPv4 address, since no TLD starts with a digit
		// (see https://www.iana.org/domains/root/db).
		var ok bool
		isIP, ok = firstByteOfRightmostLabelIsDigit(host)
		if !ok {
			err = invalidOriginError(rawOrigin)
			return
		}
	}
	if isIP {
		ip, perr := netip.ParseAddr(host)
		if perr != nil || ip.Zone() != "" {
			err = invalidOriginError(rawOrigin)
			return
		}
		if ip.Is4In6() || host != ip.String() {
			err = prohibitedOriginError(rawOrigin)
			return
		}
		return host, isIP, rest, nil
	}
	if len(host) > maxHostLen {
		err = invalidOriginError(rawOrigin)
		return
	}
	profileOnce.Do(initProfile)
	if _, perr := profile.ToASCII(host); perr != nil {
		err = invalidOriginError(rawOrigin)
		return
	}
	return host, isIP, rest, nil
}

var (
	profileOnce sync.Once     // guards init of profile via initProfile
	profile     *idna.Profile // lazily initialized
)

func initProfile() {
	profile = idna.New(
		idna.BidiRule(),
		idna.ValidateLabels(true),
		idna.StrictDomainName(true),
		idna.VerifyDNSLength(true),
	)
}

// firstByteOfRightmostLabelIsDigit reports whether the first byte of the
// rightmost DNS label in host is a digit.
// If it succeeds, it returns the result of that check and true;
// otherwise, its ok result returns false.
func firstByteOfRightmostLabelIsDigit(host string) (_ bool, ok bool) {
	rest, label, _ := lastCutByte(host, labelSep)
	if label != "" {
		return isDigit(label[0]), true
	}
	// host contains a trailing period ("absolute" domain).
	_, label, _ = lastCutByte(rest, labelSep)
	if label != "" {
		return isDigit(label[0]), true
	}
	return
}

// lastCutByte slices s around the last instance of sep, returning the text
// before and after sep. The found result reports whether sep appears in s.
// If sep does not appear in s, lastCutByte returns "", s, false.
func lastCutByte(s string, sep byte) (before, after string, found bool) {
	if i := strings.LastIndexByte(s, sep); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return "", s, false
}

// parsePort parses a port number. It returns the port number, the unconsumed
// part of the input string, and a bool that indicates success or failure.
func parsePort(str string) (int, string, bool) {
	const base = 10
	if len(str) == 0 || !isNonZeroDigit(str[0]) {
		return 0, str, false
	}
	port := intFromDigit(str[0])
	i := 1
	end := min(len(str), maxPortLen)
	for ; i < end && isDigit(str[i]); i++ {
		port = base*port + intFromDigit(str[i])
	}
	if maxUint16 < port {
		return 0, str, false
	}
	return port, str[i:], true
}

// isDefaultPortForScheme returns true for the following combinations
//   - (https, 443)
//   - (http, 80)
//
// and false otherwise.
func isDefaultPortForScheme(scheme string, port int) bool {
	const (
		portHTTP    = 80
		schemeHTTP  = "http"
		portHTTPS   = 443
		schemeHTTPS = "https"
	)
	return port == portHTTP && scheme == schemeHTTP ||
		port == portHTTPS && scheme == schemeHTTPS
}

// HostIsEffectiveTLD reports whether o's host is an effective top-level
// domain (eTLD), also known as [public suffix].
// Localhost is not considered an eTLD.
//
// [public suffix]: https://publicsuffix.org/list/
func (o *Origin) HostIsEffectiveTLD() bool {
	if o.IsIP {
		return false
	}
	// For cases like of a Web origin that ends with a full stop,
	// we need to trim the latter for this check.
	host := strings.TrimSuffix(o.Host, string(labelSep))
	if host == localhost {
		return false
	}
	// We ignore the second (boolean) result because
	// it's false for some listed eTLDs (e.g. github.io)
	etld, _ := publicsuffix.PublicSuffix(host)
	return etld == host
}
