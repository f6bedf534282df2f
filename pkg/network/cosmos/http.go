package cosmos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// nodeReply is the outcome of one HTTP round-trip to the node.
// err is set only for transport failures; a non-2xx status is not an error.
type nodeReply struct {
	url    string
	status int
	body   []byte
	err    error
}

func (r nodeReply) ok() bool {
	return r.err == nil && r.status >= 200 && r.status < 300
}

// nodeError is the structured error body returned by the gRPC gateway.
type nodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// parseNodeError decodes a gateway error body. ok is false when the body is
// not a JSON object carrying a code or message.
func parseNodeError(body []byte) (nodeError, bool) {
	var ne nodeError
	if err := json.Unmarshal(body, &ne); err != nil {
		return nodeError{}, false
	}
	if ne.Code == 0 && ne.Message == "" {
		return nodeError{}, false
	}
	return ne, true
}

func (c *Client) get(ctx context.Context, path string) nodeReply {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any) nodeReply {
	return c.do(ctx, http.MethodPost, path, payload)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) nodeReply {
	url := c.apiURL + path
	reply := nodeReply{url: url}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			reply.err = fmt.Errorf("failed to marshal request: %w", err)
			return reply
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		reply.err = fmt.Errorf("failed to create request: %w", err)
		return reply
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		reply.err = err
		return reply
	}
	defer resp.Body.Close()

	reply.status = resp.StatusCode
	reply.body, err = io.ReadAll(resp.Body)
	if err != nil {
		reply.err = fmt.Errorf("failed to read response: %w", err)
	}
	return reply
}
