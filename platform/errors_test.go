package platform

import (
	"net/http"
	"testing"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"forbidden", &httputil.HTTPError{Status: http.StatusForbidden}, ErrPermissionDenied},
		{"unauthorized", &httputil.HTTPError{Status: http.StatusUnauthorized}, ErrPermissionDenied},
		{"not found", &httputil.HTTPError{Status: http.StatusNotFound}, ErrNotFound},
		{"server error", &httputil.HTTPError{Status: http.StatusBadGateway}, ErrPlatformUnavailable},
		{"network", errors.New("connection reset by peer"), ErrPlatformUnavailable},
		{"wrapped", errors.Wrap(&httputil.HTTPError{Status: http.StatusNotFound}, "getting member"), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("list invites", tt.err)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "expected %v, got %v", tt.kind, err)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "list invites", perr.Op)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify("list invites", nil))
}

func TestClassifyIsIdempotent(t *testing.T) {
	first := Classify("list invites", &httputil.HTTPError{Status: http.StatusForbidden})
	second := Classify("refresh", first)

	assert.Same(t, first, second)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&httputil.HTTPError{Status: http.StatusNotFound}))
	assert.False(t, IsNotFound(&httputil.HTTPError{Status: http.StatusForbidden}))
	assert.True(t, IsNotFound(NotFound("role %v", 123)))
}

func TestRejection(t *testing.T) {
	err := errors.Wrap(Malformed("%q is not a colour", "blue-ish"), "parsing input")

	r, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, `"blue-ish" is not a colour`, r.Error())
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.False(t, errors.Is(err, ErrNotFound))

	_, ok = AsRejection(errors.New("boom"))
	assert.False(t, ok)
}

func TestRejectionKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"malformed", Malformed("bad"), ErrMalformedInput},
		{"not found", NotFound("gone"), ErrNotFound},
		{"denied", Denied("only the owner can do that"), ErrPermissionDenied},
	}

	kinds := []error{ErrMalformedInput, ErrNotFound, ErrPermissionDenied, ErrPlatformUnavailable}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := AsRejection(tt.err)
			require.True(t, ok)

			for _, k := range kinds {
				assert.Equal(t, k == tt.kind, errors.Is(tt.err, k), "errors.Is(%v)", k)
			}
		})
	}
}
