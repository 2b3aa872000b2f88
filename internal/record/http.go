package record

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPStore is a Store backed by the record-store HTTP API. It performs one
// round trip per call and never retries.
type HTTPStore struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewHTTPStore creates a client for the record store at the given endpoint.
// token may be empty for unauthenticated servers.
func NewHTTPStore(endpoint, token string) *HTTPStore {
	return &HTTPStore{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// queryRequest is the JSON body sent to POST /records/{kind}/query.
type queryRequest struct {
	Predicate Predicate `json:"predicate"`
}

// queryResponse is the JSON body returned by POST /records/{kind}/query.
type queryResponse struct {
	Records []Record `json:"records"`
}

func (s *HTTPStore) Query(ctx context.Context, kind string, p Predicate) ([]Record, error) {
	var resp queryResponse
	path := fmt.Sprintf("/records/%s/query", url.PathEscape(kind))
	if err := s.do(ctx, http.MethodPost, path, queryRequest{Predicate: p}, &resp); err != nil {
		return nil, err
	}
	records := resp.Records
	if records == nil {
		records = []Record{}
	}
	for i := range records {
		records[i].Kind = kind
	}
	return records, nil
}

func (s *HTTPStore) Save(ctx context.Context, r Record) (Record, error) {
	if r.Kind == "" || r.ID == "" {
		return Record{}, fmt.Errorf("%w: record kind and id are required", ErrRejected)
	}
	var saved Record
	path := fmt.Sprintf("/records/%s", url.PathEscape(r.Kind))
	if err := s.do(ctx, http.MethodPost, path, r, &saved); err != nil {
		return Record{}, err
	}
	saved.Kind = r.Kind
	return saved, nil
}

func (s *HTTPStore) Delete(ctx context.Context, kind, id string) error {
	path := fmt.Sprintf("/records/%s/%s", url.PathEscape(kind), url.PathEscape(id))
	return s.do(ctx, http.MethodDelete, path, nil, nil)
}

// do performs one round trip, mapping transport failures to ErrUnavailable
// and non-2xx responses to ErrNotFound or ErrRejected.
func (s *HTTPStore) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", ErrRejected, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrRejected, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrRejected, err)
		}
	}
	return nil
}
