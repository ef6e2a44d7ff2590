package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hongminglow/society-be/internal/models"
)

// State is a step of the login flow.
type State int

const (
	AnonymousForm State = iota
	Submitting
	AuthenticatedRedirect
	ErrorDisplayed
)

func (s State) String() string {
	switch s {
	case AnonymousForm:
		return "anonymous"
	case Submitting:
		return "submitting"
	case AuthenticatedRedirect:
		return "authenticated"
	case ErrorDisplayed:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stage names the call of the login flow that failed.
type Stage string

const (
	StageLogin   Stage = "login"
	StageRole    Stage = "role lookup"
	StagePersist Stage = "persist"
	StageRequest Stage = "request"
)

// LoginError is surfaced to the caller whenever the login flow does not complete.
// Do reports failed authenticated requests with it too, under StageRequest.
type LoginError struct {
	Stage   Stage
	Status  int
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s failed (%d): %s", e.Stage, e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	default:
		return fmt.Sprintf("%s failed", e.Stage)
	}
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

// Outcome is the terminal state of a login attempt.
type Outcome struct {
	State   State
	Session Session
	// Route is empty when the role has no landing view; the caller stays where it is.
	Route string
	Err   *LoginError
}

// Client talks to the backend on behalf of one user.
type Client struct {
	baseURL string
	http    *http.Client
	store   Store
}

// NewClient builds a client for the backend at baseURL persisting sessions in store.
func NewClient(baseURL string, store Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
}

// Current returns the persisted session, or ErrNoSession.
func (c *Client) Current() (Session, error) {
	return c.store.Load()
}

// Logout forgets the persisted session.
func (c *Client) Logout() error {
	return c.store.Clear()
}

type loginResponse struct {
	AuthToken string `json:"authtoken"`
	UserID    string `json:"userID"`
}

type roleResponse struct {
	ID   string      `json:"_id"`
	Role models.Role `json:"role"`
}

// Login submits credentials, asks the backend for the caller's role with the new token,
// persists the session and resolves the landing route. Every failure is returned in the
// Outcome; nothing is persisted unless the whole flow succeeds.
func (c *Client) Login(ctx context.Context, email, password string) Outcome {
	var login loginResponse
	if lerr := c.call(ctx, StageLogin, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": email, "password": password}, &login); lerr != nil {
		return failed(lerr)
	}
	if login.AuthToken == "" {
		return failed(&LoginError{Stage: StageLogin, Message: "response carried no token"})
	}

	var role roleResponse
	if lerr := c.call(ctx, StageRole, http.MethodPost, "/api/auth/getuserRole", login.AuthToken, nil, &role); lerr != nil {
		return failed(lerr)
	}

	s := Session{Token: login.AuthToken, Role: role.Role, UserID: role.ID}
	if s.UserID == "" {
		s.UserID = login.UserID
	}
	if err := c.store.Save(s); err != nil {
		return failed(&LoginError{Stage: StagePersist, Err: err})
	}

	route, _ := RouteFor(s.Role)
	return Outcome{State: AuthenticatedRedirect, Session: s, Route: route}
}

func failed(err *LoginError) Outcome {
	return Outcome{State: ErrorDisplayed, Err: err}
}

// Do sends an authenticated request using the persisted session and decodes the JSON reply into out.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	s, err := c.store.Load()
	if err != nil {
		return err
	}
	if lerr := c.call(ctx, StageRequest, method, path, s.Token, body, out); lerr != nil {
		return lerr
	}
	return nil
}

func (c *Client) call(ctx context.Context, stage Stage, method, path, token string, body, out any) *LoginError {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &LoginError{Stage: stage, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &LoginError{Stage: stage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("auth-token", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &LoginError{Stage: stage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &LoginError{Stage: stage, Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &LoginError{Stage: stage, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage pulls a human readable message out of either error shape the backend emits.
func errorMessage(body io.Reader) string {
	var payload struct {
		Error  string `json:"error"`
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || json.Unmarshal(raw, &payload) != nil {
		return strings.TrimSpace(string(raw))
	}
	if payload.Error != "" {
		return payload.Error
	}
	parts := make([]string, 0, len(payload.Errors))
	for _, fe := range payload.Errors {
		if fe.Field != "" {
			parts = append(parts, fe.Field+": "+fe.Message)
		} else {
			parts = append(parts, fe.Message)
		}
	}
	return strings.Join(parts, "; ")
}

// IsUnauthorized reports whether err is a rejected or missing session.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNoSession) {
		return true
	}
	var lerr *LoginError
	return errors.As(err, &lerr) && lerr.Status == http.StatusUnauthorized
}
