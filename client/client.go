// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/election-ledger/auth"
	"github.com/danielhkuo/election-ledger/ledger"
	"github.com/danielhkuo/election-ledger/models"
)

// DefaultTimeout bounds every request made by a Client built with New
const DefaultTimeout = 15 * time.Second

// APIError is a non-2xx response decoded from models.ErrorResponse
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code == "" {
		return fmt.Sprintf("%d: %s", e.Status, msg)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, msg)
}

// Kind maps the error code back to the ledger taxonomy
func (e *APIError) Kind() ledger.Kind {
	return ledger.ParseKind(e.Code)
}

// Is lets errors.Is(err, ledger.ErrNotFound) work across the wire
func (e *APIError) Is(target error) bool {
	var lerr *ledger.Error
	if !errors.As(target, &lerr) {
		return false
	}
	return lerr.Kind != ledger.KindUnknown && lerr.Kind == e.Kind()
}

// Client talks to an election ledger server as one caller
type Client struct {
	baseURL   string
	callerID  string
	callerKey string
	http      *http.Client
}

// New returns a client for baseURL. callerID and callerKey may be empty for
// read-only use.
func New(baseURL, callerID, callerKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		callerID:  callerID,
		callerKey: callerKey,
		http:      &http.Client{Timeout: DefaultTimeout},
	}
}

// WithHTTPClient swaps the underlying http.Client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.callerID != "" {
		req.Header.Set(auth.CallerIDHeader, c.callerID)
		req.Header.Set(auth.CallerKeyHeader, c.callerKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func electionPath(electionID uint64, suffix string) string {
	return "/elections/" + strconv.FormatUint(electionID, 10) + suffix
}

// Admin returns the registry's admin identity
func (c *Client) Admin(ctx context.Context) (string, error) {
	var resp models.AdminResponse
	if err := c.do(ctx, http.MethodGet, "/admin", nil, &resp); err != nil {
		return "", err
	}
	return resp.Admin, nil
}

// ElectionsCount returns how many elections have been created
func (c *Client) ElectionsCount(ctx context.Context) (uint64, error) {
	var resp models.ElectionsCountResponse
	if err := c.do(ctx, http.MethodGet, "/elections/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// AddCandidate stages name for electionID and returns its candidate id
func (c *Client) AddCandidate(ctx context.Context, electionID uint64, name string) (uint64, error) {
	var resp models.AddCandidateResponse
	err := c.do(ctx, http.MethodPost, electionPath(electionID, "/candidates"), models.AddCandidateRequest{Name: name}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.CandidateID, nil
}

// CreateElection opens an election. electionID 0 lets the server pick the id.
// duration must be a whole number of seconds.
func (c *Client) CreateElection(ctx context.Context, electionID uint64, name string, duration time.Duration) (models.CreateElectionResponse, error) {
	var resp models.CreateElectionResponse
	if duration%time.Second != 0 {
		return resp, &ledger.Error{
			Kind: ledger.KindInvalidInput,
			Msg:  fmt.Sprintf("duration %s is not a whole number of seconds", duration),
		}
	}
	err := c.do(ctx, http.MethodPost, "/elections", models.CreateElectionRequest{
		ElectionID:      electionID,
		Name:            name,
		DurationSeconds: int64(duration / time.Second),
	}, &resp)
	return resp, err
}

// Vote casts the caller's vote
func (c *Client) Vote(ctx context.Context, electionID, candidateID uint64) error {
	return c.do(ctx, http.MethodPost, electionPath(electionID, "/votes"), models.VoteRequest{CandidateID: candidateID}, nil)
}

// HasVoted reports whether identity voted in electionID
func (c *Client) HasVoted(ctx context.Context, electionID uint64, identity string) (bool, error) {
	var resp models.VoterStatusResponse
	if err := c.do(ctx, http.MethodGet, electionPath(electionID, "/voters/"+url.PathEscape(identity)), nil, &resp); err != nil {
		return false, err
	}
	return resp.HasVoted, nil
}

// Election returns the status of electionID
func (c *Client) Election(ctx context.Context, electionID uint64) (models.Election, error) {
	var resp models.Election
	err := c.do(ctx, http.MethodGet, electionPath(electionID, ""), nil, &resp)
	return resp, err
}

// Candidates returns the roster of electionID with current tallies
func (c *Client) Candidates(ctx context.Context, electionID uint64) (models.CandidatesResponse, error) {
	var resp models.CandidatesResponse
	err := c.do(ctx, http.MethodGet, electionPath(electionID, "/candidates"), nil, &resp)
	return resp, err
}

// Winner returns the winner of a closed election
func (c *Client) Winner(ctx context.Context, electionID uint64) (models.WinnerResponse, error) {
	var resp models.WinnerResponse
	err := c.do(ctx, http.MethodGet, electionPath(electionID, "/winner"), nil, &resp)
	return resp, err
}

// IssueCallerKey asks the server for identity's caller key. Admin only.
func (c *Client) IssueCallerKey(ctx context.Context, identity string) (string, error) {
	var resp models.IssueCallerKeyResponse
	if err := c.do(ctx, http.MethodPost, "/callers", models.IssueCallerKeyRequest{Identity: identity}, &resp); err != nil {
		return "", err
	}
	return resp.CallerKey, nil
}
