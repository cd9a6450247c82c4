package network

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, endpoint := range []string{"ftp://example.com/x", "http://", "::"} {
		_, err := New(endpoint)
		assert.Error(t, err, endpoint)
	}

	_, err := New("http://192.168.0.151:8090/postjson")
	assert.NoError(t, err)
}

func TestHostPort(t *testing.T) {
	for raw, want := range map[string]string{
		"http://example.com/postjson":    "example.com:80",
		"https://example.com/postjson":   "example.com:443",
		"http://192.168.0.151:8090/x":    "192.168.0.151:8090",
		"http://[fe80::1]:8090/postjson": "[fe80::1]:8090",
	} {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, want, hostPort(u))
	}
}

func TestPost(t *testing.T) {
	var (
		gotBody        []byte
		gotContentType string
		gotMethod      string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/postjson")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.Post(ctx, srv.URL+"/postjson", nil, nil)
	require.Error(t, err)

	require.True(t, c.Associate(ctx, scale.Credentials{SSID: "kitchen"}))
	assert.True(t, c.Associated())

	payload := []byte(`{"timestamp":"09/05/2017 18:00:00","weight":"10","foodtype":"Tea"}`)
	code, err := c.Post(ctx, srv.URL+"/postjson", map[string]string{"Content-Type": "application/json"}, payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, payload, gotBody)

	require.NoError(t, c.Disconnect())
	assert.False(t, c.Associated())
}

func TestAssociateUnreachable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	c, err := New("http://"+addr+"/postjson", WithDialTimeout(200*time.Millisecond))
	require.NoError(t, err)
	assert.False(t, c.Associate(context.Background(), scale.Credentials{}))
	assert.False(t, c.Associated())
}

func TestPostTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := New(srv.URL, WithRequestTimeout(500*time.Millisecond))
	require.NoError(t, err)
	require.True(t, c.Associate(context.Background(), scale.Credentials{}))
	srv.Close()

	_, err = c.Post(context.Background(), srv.URL, nil, []byte("{}"))
	assert.Error(t, err)
}
