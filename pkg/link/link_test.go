package link

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/fako1024/foodscale/pkg/mock"
	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLink(t *testing.T, network scale.Network) (*Client, <-chan error) {
	t.Helper()

	controller, bridge := net.Pipe()
	t.Cleanup(func() {
		_ = controller.Close()
		_ = bridge.Close()
	})

	done := make(chan error, 1)
	go func() {
		done <- Serve(context.Background(), bridge, network, nil)
	}()

	return NewClient(controller), done
}

func TestRoundTrip(t *testing.T) {
	network := mock.NewNetwork(http.StatusCreated)
	client, _ := newLink(t, network)
	ctx := context.Background()

	require.True(t, client.Associate(ctx, scale.Credentials{SSID: "kitchen", Password: "secret"}))
	assert.Equal(t, "kitchen", network.Credentials().SSID)
	assert.Empty(t, network.Credentials().Password)

	body := `{"timestamp":"09/05/2017 18:00:00","weight":"12","foodtype":"Sugar"}`
	code, err := client.Post(ctx, "http://192.168.0.151:8090/postjson", nil, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, code)

	reqs := network.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "http://192.168.0.151:8090/postjson", reqs[0].URL)
	assert.Equal(t, body, string(reqs[0].Body))
	assert.Equal(t, "application/json", reqs[0].Headers["Content-Type"])

	require.NoError(t, client.Disconnect())
	assert.Equal(t, 1, network.Disconnects())
}

func TestAssociateFail(t *testing.T) {
	network := mock.NewNetwork(http.StatusOK)
	network.FailAssociations(1)
	client, _ := newLink(t, network)

	assert.False(t, client.Associate(context.Background(), scale.Credentials{SSID: "x"}))
	assert.True(t, client.Associate(context.Background(), scale.Credentials{SSID: "x"}))
}

func TestPostError(t *testing.T) {
	network := mock.NewNetwork(0)
	network.SetResponse(0, errors.New("dial tcp: connection refused"))
	client, _ := newLink(t, network)

	_, err := client.Post(context.Background(), "http://host/x", nil, []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPostUnframeable(t *testing.T) {
	client := NewClient(struct {
		io.Reader
		io.Writer
	}{strings.NewReader(""), io.Discard})

	_, err := client.Post(context.Background(), "http://host/a b", nil, nil)
	assert.Error(t, err)
	_, err = client.Post(context.Background(), "http://host/x", nil, []byte("{\n}"))
	assert.Error(t, err)
}

func TestClientReplies(t *testing.T) {
	tests := []struct {
		reply   string
		want    int
		wantErr bool
	}{
		{reply: "STATUS 404\n", want: 404},
		{reply: "STATUS abc\n", wantErr: true},
		{reply: "ERR boom\n", wantErr: true},
		{reply: "WHAT\n", wantErr: true},
		{reply: "", wantErr: true},
	}

	for _, tt := range tests {
		var sent strings.Builder
		client := NewClient(struct {
			io.Reader
			io.Writer
		}{strings.NewReader(tt.reply), &sent})

		code, err := client.Post(context.Background(), "http://host/x", nil, []byte("{}"))
		if tt.wantErr {
			assert.Error(t, err, tt.reply)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, code)
		assert.Equal(t, "POST http://host/x {}\n", sent.String())
	}
}

func TestServeUnknownAndMalformed(t *testing.T) {
	network := mock.NewNetwork(http.StatusOK)

	var out strings.Builder
	in := strings.NewReader("HELLO\n\nPOST\nPOST http://host/x\nBYE\n")
	err := Serve(context.Background(), struct {
		io.Reader
		io.Writer
	}{in, &out}, network, nil)
	require.NoError(t, err)

	assert.Equal(t, "ERR unknown command\nERR malformed request\nERR malformed request\nOK\n", out.String())
	assert.Empty(t, network.Requests())
}

func TestServeStopsOnClose(t *testing.T) {
	controller, bridge := net.Pipe()

	done := make(chan error, 1)
	go func() {
		done <- Serve(context.Background(), bridge, mock.NewNetwork(http.StatusOK), nil)
	}()

	require.NoError(t, controller.Close())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("serve did not return after the line was closed")
	}
}
