package transports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPTransport implements EventsTransport by POSTing to
// <baseURL><basePath>/jupyterlab-log/log.
type HTTPTransport struct {
	url    string
	token  string
	client *http.Client
}

// NewHTTPTransport builds a transport for the server at baseURL (scheme and
// host) mounted under basePath. token, when set, is sent the way the Jupyter
// server expects it.
func NewHTTPTransport(baseURL, basePath, token string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	u := strings.TrimRight(baseURL, "/") + "/" + strings.Trim(basePath, "/")
	u = strings.TrimRight(u, "/") + "/jupyterlab-log/log"
	return &HTTPTransport{url: u, token: token, client: client}
}

// URL returns the endpoint events are sent to.
func (t *HTTPTransport) URL() string { return t.url }

// Send posts an event and decodes the acknowledgement.
func (t *HTTPTransport) Send(ctx context.Context, event []byte) (Ack, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(event))
	if err != nil {
		return Ack{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "token "+t.token)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return Ack{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Ack{}, err
	}

	if resp.StatusCode != http.StatusOK {
		var m struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &m) != nil || m.Message == "" {
			m.Message = strings.TrimSpace(string(body))
		}
		return Ack{}, &StatusError{Code: resp.Status, Message: m.Message}
	}
	var ack Ack
	if err := json.Unmarshal(body, &ack); err != nil {
		return Ack{}, fmt.Errorf("decode ack: %w", err)
	}
	return ack, nil
}
