// Package link carries the network collaborator over a serial line, so a
// controller without its own network stack can delegate association and POST
// requests to a host bridge.
//
// The protocol is line based, one request / one reply:
//
//	ASSOC <ssid>        -> OK | FAIL
//	POST <url> <body>   -> STATUS <code> | ERR <message>
//	BYE                 -> OK
package link

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fako1024/foodscale/pkg/scale"
)

const (
	cmdAssociate  = "ASSOC"
	cmdPost       = "POST"
	cmdDisconnect = "BYE"

	replyOK     = "OK"
	replyFail   = "FAIL"
	replyStatus = "STATUS"
	replyErr    = "ERR"

	maxLineLength = 4096
)

// Client denotes the controller side of the link
type Client struct {
	mu sync.Mutex
	w  io.Writer
	r  *bufio.Reader
}

// Ensure Client implements scale.Network
var _ scale.Network = (*Client)(nil)

// NewClient instantiates a new Client on top of a serial line
func NewClient(rw io.ReadWriter) *Client {
	return &Client{
		w: rw,
		r: bufio.NewReaderSize(rw, maxLineLength),
	}
}

// Associate asks the bridge to join the network
func (c *Client) Associate(_ context.Context, creds scale.Credentials) bool {
	reply, err := c.roundTrip(cmdAssociate + " " + creds.SSID)
	return err == nil && reply == replyOK
}

// Post asks the bridge to issue a request. Headers are not transmitted, the
// bridge always posts JSON
func (c *Client) Post(_ context.Context, url string, _ map[string]string, body []byte) (int, error) {
	if strings.ContainsAny(url, " \r\n") || strings.ContainsAny(string(body), "\r\n") {
		return 0, errors.New("url / body cannot be framed on a single line")
	}

	reply, err := c.roundTrip(cmdPost + " " + url + " " + string(body))
	if err != nil {
		return 0, err
	}

	kind, arg, _ := strings.Cut(reply, " ")
	switch kind {
	case replyStatus:
		code, err := strconv.Atoi(arg)
		if err != nil {
			return 0, fmt.Errorf("invalid status reply `%s`: %w", reply, err)
		}
		return code, nil
	case replyErr:
		return 0, fmt.Errorf("bridge: %s", arg)
	default:
		return 0, fmt.Errorf("unexpected reply `%s`", reply)
	}
}

// Disconnect asks the bridge to tear down the association
func (c *Client) Disconnect() error {
	reply, err := c.roundTrip(cmdDisconnect)
	if err != nil {
		return err
	}
	if reply != replyOK {
		return fmt.Errorf("unexpected reply `%s`", reply)
	}
	return nil
}

func (c *Client) roundTrip(line string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := io.WriteString(c.w, line+"\n"); err != nil {
		return "", fmt.Errorf("failed to write request: %w", err)
	}

	reply, err := c.r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read reply: %w", err)
	}

	return strings.TrimRight(reply, "\r\n"), nil
}

////////////////////////////////////////////////////////////////////////////////

// Serve executes requests read from the serial line against a network until the
// line is closed or the context is done
func Serve(ctx context.Context, rw io.ReadWriter, network scale.Network, logger scale.Logger) error {
	if logger == nil {
		logger = &scale.NullLogger{}
	}

	scanner := bufio.NewScanner(rw)
	scanner.Buffer(make([]byte, maxLineLength), maxLineLength)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		reply := handle(ctx, line, network, logger)
		if _, err := io.WriteString(rw, reply+"\n"); err != nil {
			return fmt.Errorf("failed to write reply: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

func handle(ctx context.Context, line string, network scale.Network, logger scale.Logger) string {
	cmd, args, _ := strings.Cut(line, " ")

	switch cmd {
	case cmdAssociate:
		if network.Associate(ctx, scale.Credentials{SSID: args}) {
			logger.Infof("associated for `%s`", args)
			return replyOK
		}
		logger.Warnf("association for `%s` failed", args)
		return replyFail

	case cmdPost:
		url, body, ok := strings.Cut(args, " ")
		if !ok || url == "" {
			return replyErr + " malformed request"
		}
		code, err := network.Post(ctx, url, map[string]string{
			"Content-Type": "application/json",
		}, []byte(body))
		if err != nil {
			logger.Errorf("failed to post to %s: %s", url, err)
			return replyErr + " " + strings.ReplaceAll(err.Error(), "\n", " ")
		}
		logger.Infof("posted %d bytes to %s, status %d", len(body), url, code)
		return replyStatus + " " + strconv.Itoa(code)

	case cmdDisconnect:
		if err := network.Disconnect(); err != nil {
			logger.Warnf("failed to disconnect: %s", err)
		}
		return replyOK

	default:
		logger.Warnf("ignoring unknown request `%s`", line)
		return replyErr + " unknown command"
	}
}
