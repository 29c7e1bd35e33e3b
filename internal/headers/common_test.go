package headers

import (
	"net/http"
	"slices"
	"testing"
)

// This check is important because, otherwise, index expressions
// involving a http.Header and one of those names would yield
// unexpected results.
func TestThatAllRelevantHeaderNamesAreInCanonicalFormat(t *testing.T) {
	headerNames := []string{
		ACRH,
		ACAO,
		ACAC,
		ACAM,
		ACAH,
		ACMA,
		Allow,
	}
	for _, name := range headerNames {
		if http.CanonicalHeaderKey(name) != name {
			t.Errorf("header name %q is not in canonical format", name)
		}
	}
}

func TestReflect(t *testing.T) {
	cases := []struct {
		desc string
		hdrs http.Header
		want []string
	}{
		{
			desc: "absent",
			hdrs: http.Header{},
			want: []string{""},
		}, {
			desc: "present without field lines",
			hdrs: http.Header{ACRH: nil},
			want: []string{""},
		}, {
			desc: "single field line",
			hdrs: http.Header{ACRH: {"X-Custom"}},
			want: []string{"X-Custom"},
		}, {
			desc: "single field line with list value",
			hdrs: http.Header{ACRH: {"content-type, x-custom"}},
			want: []string{"content-type, x-custom"},
		}, {
			desc: "multiple field lines",
			hdrs: http.Header{ACRH: {"content-type", "x-custom"}},
			want: []string{"content-type", "x-custom"},
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			got := Reflect(tc.hdrs, ACRH)
			if !slices.Equal(got, tc.want) {
				const tmpl = "got %q; want %q"
				t.Errorf(tmpl, got, tc.want)
			}
			if len(got) > 0 && len(tc.hdrs[ACRH]) > 0 {
				got[0] = "mutated!"
				if tc.hdrs[ACRH][0] == "mutated!" {
					t.Error("result aliases the request's header values")
				}
			}
		}
		t.Run(tc.desc, f)
	}
}
