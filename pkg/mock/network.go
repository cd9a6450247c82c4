package mock

import (
	"context"
	"sync"

	"github.com/fako1024/foodscale/pkg/scale"
)

// Request denotes a recorded POST request
type Request struct {
	URL     string
	Headers map[string]string
	Body    []byte
}

// Network denotes a mock network stack recording all outbound requests
type Network struct {
	mu sync.Mutex

	failAssociations int
	status           int
	err              error

	associations int
	disconnects  int
	associated   bool
	lastCreds    scale.Credentials
	requests     []Request

	onAssociate func()
	onPost      func()
}

// Ensure Network implements scale.Network
var _ scale.Network = (*Network)(nil)

// NewNetwork instantiates a new mock network answering all requests with the given status code
func NewNetwork(status int) *Network {
	return &Network{
		status: status,
	}
}

// FailAssociations lets the next n association attempts fail
func (n *Network) FailAssociations(count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failAssociations = count
}

// SetResponse sets the status code / error returned by subsequent requests
func (n *Network) SetResponse(status int, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.status, n.err = status, err
}

// OnAssociate registers a hook called on each association attempt
func (n *Network) OnAssociate(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onAssociate = fn
}

// OnPost registers a hook called on each request
func (n *Network) OnPost(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onPost = fn
}

// Associate simulates joining the network
func (n *Network) Associate(_ context.Context, creds scale.Credentials) bool {
	n.mu.Lock()
	n.associations++
	n.lastCreds = creds
	hook := n.onAssociate
	ok := n.failAssociations <= 0
	if !ok {
		n.failAssociations--
	}
	n.associated = ok
	n.mu.Unlock()

	if hook != nil {
		hook()
	}
	return ok
}

// Post records the request and returns the configured response
func (n *Network) Post(_ context.Context, url string, headers map[string]string, body []byte) (int, error) {
	n.mu.Lock()
	hdrs := make(map[string]string, len(headers))
	for k, v := range headers {
		hdrs[k] = v
	}
	n.requests = append(n.requests, Request{
		URL:     url,
		Headers: hdrs,
		Body:    append([]byte(nil), body...),
	})
	hook := n.onPost
	status, err := n.status, n.err
	n.mu.Unlock()

	if hook != nil {
		hook()
	}
	return status, err
}

// Disconnect simulates leaving the network
func (n *Network) Disconnect() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.associated = false
	n.disconnects++
	return nil
}

// Requests returns all recorded requests
func (n *Network) Requests() []Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Request(nil), n.requests...)
}

// Associations returns the number of association attempts so far
func (n *Network) Associations() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.associations
}

// Disconnects returns the number of teardowns so far
func (n *Network) Disconnects() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.disconnects
}

// Associated returns if the network is currently associated
func (n *Network) Associated() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.associated
}

// Credentials returns the credentials of the last association attempt
func (n *Network) Credentials() scale.Credentials {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastCreds
}
