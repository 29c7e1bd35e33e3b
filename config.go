package routecors

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/jub0bs/routecors/cfgerrors"
	"github.com/jub0bs/routecors/internal/headers"
	"github.com/jub0bs/routecors/internal/origins"
)

// A Config configures a [Decorator].
// Use [DefaultConfig] as a starting point rather than the zero value,
// whose Origins field is empty and whose Credentialed field is unset.
//
// # Origins
//
// Origins lists the Web origins that the Decorator advertises in the
// Access-Control-Allow-Origin response header. The elements of Origins are
// joined with commas (and a space) in their order of appearance, with no
// special treatment of any value; in particular, a single asterisk ("*") is
// reflected as is, and an empty Origins results in an empty header value.
//
// Note that browsers expect this header's value to consist of either a
// single origin or a single asterisk; see [Config.Validate].
//
// # Credentialed
//
// Credentialed determines the value ("true" or "false") of the
// Access-Control-Allow-Credentials response header.
//
// # MaxAgeInSeconds
//
// MaxAgeInSeconds, when non-nil, determines the value of the
// Access-Control-Max-Age header included in responses to OPTIONS requests.
// A pointer to zero is not the same as nil: the former causes the header to
// be set to "0", whereas the latter causes the header to be omitted.
// Negative values are reflected as is.
type Config struct {
	// Precludes comparability, unkeyed struct literals, and conversion to and
	// from third-party types.
	_ [0]func()

	Origins         []string
	Credentialed    bool
	MaxAgeInSeconds *int
}

// DefaultConfig returns a Config that allows all origins ("*")
// with credentials and that specifies no max-age value.
func DefaultConfig() Config {
	return Config{
		Origins:      []string{headers.ValueWildcard},
		Credentialed: true,
	}
}

// MaxAge is a convenience function that returns a pointer to a copy of
// seconds, for use as the value of [Config.MaxAgeInSeconds].
func MaxAge(seconds int) *int {
	return &seconds
}

// Validate reports mistakes in cfg that would cause browsers to fail CORS
// checks or that likely stem from some misunderstanding of CORS.
// [NewDecorator] and [*Decorator.Reconfigure] never call Validate;
// calling it is entirely optional.
//
// Validate returns nil if it finds no mistake; otherwise, it returns an
// error tree whose leaves can be programmatically inspected via package
// [github.com/jub0bs/routecors/cfgerrors].
//
// Note that the result of [DefaultConfig] fails validation: browsers reject
// the wildcard origin in responses to credentialed requests.
func (cfg *Config) Validate() error {
	// Accumulate errors in a slice so as to call errors.Join at most once.
	var errs []error
	if len(cfg.Origins) == 0 {
		err := &cfgerrors.UnacceptableOriginError{
			Reason: "missing",
		}
		errs = append(errs, err)
	}
	for _, raw := range cfg.Origins {
		if raw == headers.ValueWildcard {
			if cfg.Credentialed {
				err := &cfgerrors.IncompatibleOriginError{
					Value:  raw,
					Reason: "credentialed",
				}
				errs = append(errs, err)
			}
			continue
		}
		o, err := origins.Parse(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if o.HostIsEffectiveTLD() {
			err := &cfgerrors.IncompatibleOriginError{
				Value:  raw,
				Reason: "psl",
			}
			errs = append(errs, err)
		}
	}
	if delta := cfg.MaxAgeInSeconds; delta != nil {
		// Current upper bounds:
		//  - Firefox: 86400 (24h)
		//  - Chromium: 7200 (2h)
		//  - WebKit/Safari: 600 (10m)
		//
		// See https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Max-Age#delta-seconds.
		const upperBound = 86400
		if *delta < 0 || upperBound < *delta {
			err := &cfgerrors.MaxAgeOutOfBoundsError{
				Value: *delta,
				Max:   upperBound,
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type internalConfig struct {
	origins      []string
	credentialed bool
	maxAge       *int
	// precomputed header values
	acao string
	acac string
	acma string // empty iff maxAge == nil
}

func newInternalConfig(cfg *Config) *internalConfig {
	if cfg == nil {
		return nil
	}
	// Note: do not hold (in icfg) any references to mutable fields of cfg;
	// use defensive copying if required.
	icfg := internalConfig{
		origins:      slices.Clone(cfg.Origins),
		credentialed: cfg.Credentialed,
		acao:         strings.Join(cfg.Origins, headers.ValueSep),
		acac:         headers.ValueFalse,
	}
	if cfg.Credentialed {
		icfg.acac = headers.ValueTrue
	}
	if cfg.MaxAgeInSeconds != nil {
		icfg.maxAge = MaxAge(*cfg.MaxAgeInSeconds)
		icfg.acma = strconv.Itoa(*cfg.MaxAgeInSeconds)
	}
	return &icfg
}

// newConfig returns a Config on the basis of icfg.
func newConfig(icfg *internalConfig) *Config {
	if icfg == nil {
		return nil
	}
	cfg := Config{
		Origins:      slices.Clone(icfg.origins),
		Credentialed: icfg.credentialed,
	}
	if icfg.maxAge != nil {
		cfg.MaxAgeInSeconds = MaxAge(*icfg.maxAge)
	}
	return &cfg
}
