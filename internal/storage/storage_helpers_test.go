package storage

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// stubDoer records every request and answers with a canned response.
type stubDoer struct {
	mu     sync.Mutex
	reqs   []*http.Request
	status int
	body   string
	err    error
}

func (s *stubDoer) Do(r *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.reqs = append(s.reqs, r)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Request:    r,
	}, nil
}

func (s *stubDoer) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reqs)
}

func newStubClient(d *stubDoer) *Client {
	return NewClient(Config{}, nil, WithHTTPClient(d))
}
