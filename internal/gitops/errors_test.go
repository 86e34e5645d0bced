package gitops

import (
	"errors"
	"testing"
)

func TestClassifyCloneError(t *testing.T) {
	url := "https://example.com/site.git"

	cases := []struct {
		name  string
		cause string
		check func(error) bool
	}{
		{"auth", "authentication required", func(err error) bool {
			var e *AuthError
			return errors.As(err, &e)
		}},
		{"not found", "repository does not exist", func(err error) bool {
			var e *NotFoundError
			return errors.As(err, &e)
		}},
		{"missing branch", "couldn't find remote ref refs/heads/publishing", func(err error) bool {
			var e *NotFoundError
			return errors.As(err, &e)
		}},
		{"protocol", "unsupported protocol scheme", func(err error) bool {
			var e *UnsupportedProtocolError
			return errors.As(err, &e)
		}},
		{"timeout", "dial tcp: i/o timeout", func(err error) bool {
			var e *NetworkTimeoutError
			return errors.As(err, &e)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cause := errors.New(tc.cause)
			got := classifyCloneError(url, cause)
			if !tc.check(got) {
				t.Fatalf("wrong classification for %q: %T", tc.cause, got)
			}
			if !errors.Is(got, cause) {
				t.Fatal("classified error should unwrap to the cause")
			}
		})
	}
}

func TestClassifyCloneErrorFallback(t *testing.T) {
	cause := errors.New("something odd happened")
	got := classifyCloneError("https://example.com/x.git", cause)
	if !errors.Is(got, cause) {
		t.Fatal("fallback should wrap the cause")
	}
	var auth *AuthError
	if errors.As(got, &auth) {
		t.Fatal("fallback must not be typed")
	}
}
