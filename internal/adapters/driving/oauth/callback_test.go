//nolint:noctx // Tests use http.Get for brevity.
package oauth

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, state string) *CallbackServer {
	t.Helper()
	s := NewCallbackServer(0, state)
	require.NoError(t, s.Start())
	t.Cleanup(func() { _ = s.Stop(context.Background()) })
	return s
}

func callback(t *testing.T, s *CallbackServer, params url.Values) (int, string) {
	t.Helper()
	resp, err := http.Get(s.RedirectURI() + "?" + params.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestCallbackServer_StartPicksPort(t *testing.T) {
	s := startServer(t, "state")

	assert.NotZero(t, s.Port())
	assert.Contains(t, s.RedirectURI(), "http://127.0.0.1:")
	assert.Contains(t, s.RedirectURI(), CallbackPath)
}

func TestCallbackServer_StartTwice(t *testing.T) {
	s := startServer(t, "state")

	assert.Error(t, s.Start())
}

func TestCallbackServer_PortInUse(t *testing.T) {
	first := startServer(t, "a")

	second := NewCallbackServer(first.Port(), "b")
	err := second.Start()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}

func TestCallbackServer_Success(t *testing.T) {
	s := startServer(t, "xyz")

	status, body := callback(t, s, url.Values{"state": {"xyz"}, "code": {"4/abc"}})

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Signed in to autoanswer")
	code, err := s.WaitForCode(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "4/abc", code)
}

func TestCallbackServer_Failures(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		status int
		errMsg string
	}{
		{"denied", url.Values{"error": {"access_denied"}, "error_description": {"user said no"}}, http.StatusOK, "access_denied"},
		{"state mismatch", url.Values{"state": {"other"}, "code": {"c"}}, http.StatusBadRequest, "state mismatch"},
		{"missing state", url.Values{"code": {"c"}}, http.StatusBadRequest, "state mismatch"},
		{"missing code", url.Values{"state": {"xyz"}}, http.StatusBadRequest, "no authorization code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startServer(t, "xyz")

			status, body := callback(t, s, tt.params)

			assert.Equal(t, tt.status, status)
			assert.Contains(t, body, "Authorization failed")
			_, err := s.WaitForCode(waitCtx(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCallbackServer_OnlyFirstCodeKept(t *testing.T) {
	s := startServer(t, "xyz")

	callback(t, s, url.Values{"state": {"xyz"}, "code": {"first"}})
	callback(t, s, url.Values{"state": {"xyz"}, "code": {"second"}})

	code, err := s.WaitForCode(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "first", code)
}

func TestCallbackServer_WaitForCodeContextDone(t *testing.T) {
	s := startServer(t, "xyz")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.WaitForCode(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCallbackServer_RejectsOtherMethodsAndPaths(t *testing.T) {
	s := startServer(t, "xyz")

	resp, err := http.Post(s.RedirectURI(), "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get("http://127.0.0.1:" + strconv.Itoa(s.Port()) + "/elsewhere")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCallbackServer_Stop(t *testing.T) {
	s := NewCallbackServer(0, "xyz")
	assert.NoError(t, s.Stop(context.Background()), "stop before start")

	require.NoError(t, s.Start())
	uri := s.RedirectURI()
	require.NoError(t, s.Stop(context.Background()))
	assert.NoError(t, s.Stop(context.Background()), "second stop")

	_, err := http.Get(uri)
	assert.Error(t, err)
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	require.NoError(t, err)
	b, err := GenerateState()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}

func TestResultPage_Escapes(t *testing.T) {
	page := resultPage("<b>title</b>", `"quoted" & more`)

	assert.Contains(t, page, "&lt;b&gt;title&lt;/b&gt;")
	assert.Contains(t, page, "&#34;quoted&#34; &amp; more")
	assert.NotContains(t, page, "<b>")
}
