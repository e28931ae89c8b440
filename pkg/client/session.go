package client

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"foodie/internal/domain/entity"
	"foodie/pkg/apimodel"
)

type sessionState struct {
	accessToken  string
	refreshToken string
	user         *apimodel.User
	// loading is set between Restore and Refresh while the snapshot user is unverified.
	loading bool
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.session.accessToken
}

func (c *Client) userScope() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session.user == nil || c.session.accessToken == "" {
		return "", false
	}

	return c.session.user.ID.String(), true
}

// CurrentUser returns a copy of the session's user, or nil when signed out.
func (c *Client) CurrentUser() *apimodel.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session.user == nil {
		return nil
	}
	user := *c.session.user

	return &user
}

// Guard evaluates an access requirement against the current session.
func (c *Client) Guard(requirement entity.AccessRequirement) entity.AccessDecision {
	c.mu.RLock()
	session := entity.AccessSession{Loading: c.session.loading}
	if c.session.user != nil {
		session.User = &entity.User{ID: c.session.user.ID, Role: entity.Role(c.session.user.Role)}
	}
	c.mu.RUnlock()

	return entity.EvaluateAccess(session, requirement)
}

// setSession replaces the session. Every session change drops all cached
// queries so one account never sees another's data.
func (c *Client) setSession(state sessionState) {
	c.mu.Lock()
	c.session = state
	c.mu.Unlock()

	c.cache.clear()

	if state.user == nil {
		if err := c.snapshots.Clear(); err != nil {
			c.logger.Warn("Failed to clear session snapshot", slog.Any("error", err))
		}

		return
	}

	c.saveSnapshot(state)
}

func (c *Client) saveSnapshot(state sessionState) {
	err := c.snapshots.Save(&Snapshot{
		User:         state.user,
		RefreshToken: state.refreshToken,
		SavedAt:      time.Now().UTC(),
	})
	if err != nil {
		c.logger.Warn("Failed to save session snapshot", slog.Any("error", err))
	}
}

func (c *Client) startSession(session *apimodel.Session) *apimodel.User {
	c.setSession(sessionState{
		accessToken:  session.AccessToken,
		refreshToken: session.RefreshToken,
		user:         session.User,
	})

	return c.CurrentUser()
}

// SignUp registers an account and signs it in.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*apimodel.User, error) {
	var session apimodel.Session
	req := &apimodel.SignUpRequest{Email: email, Password: password, Name: name}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", req, &session); err != nil {
		return nil, err
	}

	return c.startSession(&session), nil
}

// SignIn signs in with email and password.
func (c *Client) SignIn(ctx context.Context, email, password string) (*apimodel.User, error) {
	var session apimodel.Session
	req := &apimodel.SignInRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &session); err != nil {
		return nil, err
	}

	return c.startSession(&session), nil
}

// GoogleSignIn exchanges a Google ID token for a session.
func (c *Client) GoogleSignIn(ctx context.Context, idToken string) (*apimodel.User, error) {
	var session apimodel.Session
	req := &apimodel.GoogleSignInRequest{IDToken: idToken}
	if err := c.doJSON(ctx, http.MethodPost, "/oauth/google/callback", req, &session); err != nil {
		return nil, err
	}

	return c.startSession(&session), nil
}

// SignOut revokes the refresh token. The local session is dropped even when
// the server call fails.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.RLock()
	refreshToken := c.session.refreshToken
	c.mu.RUnlock()

	var err error
	if refreshToken != "" {
		err = c.doJSON(ctx, http.MethodPost, "/auth/logout", &apimodel.SignOutRequest{RefreshToken: refreshToken}, nil)
	}

	c.setSession(sessionState{})

	return err
}

// SignOutEverywhere revokes every session of the user and drops the local one.
func (c *Client) SignOutEverywhere(ctx context.Context) error {
	if _, ok := c.userScope(); !ok {
		return ErrNotSignedIn
	}

	err := c.doJSON(ctx, http.MethodDelete, "/api/v1/me/sessions", nil, nil)
	c.setSession(sessionState{})

	return err
}

// Restore loads the persisted snapshot for immediate display. Until Refresh
// completes the session is loading and guards return AccessPending.
func (c *Client) Restore() (*apimodel.User, error) {
	snapshot, err := c.snapshots.Load()
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}

	c.mu.Lock()
	c.session = sessionState{
		refreshToken: snapshot.RefreshToken,
		user:         snapshot.User,
		loading:      true,
	}
	c.mu.Unlock()

	c.cache.clear()

	return c.CurrentUser(), nil
}

// Refresh checks the session against the server and overwrites the snapshot
// with the returned user. A rejected session is cleared and yields a nil user.
func (c *Client) Refresh(ctx context.Context) (*apimodel.User, error) {
	c.mu.RLock()
	state := c.session
	c.mu.RUnlock()

	if state.accessToken == "" && state.refreshToken == "" {
		c.setSession(sessionState{})

		return nil, nil
	}

	hadAccessToken := state.accessToken != ""
	user, err := c.fetchMe(ctx, &state)
	// An expired access token is renewed once with the refresh token.
	if IsStatus(err, http.StatusUnauthorized) && hadAccessToken && state.refreshToken != "" {
		state.accessToken = ""
		user, err = c.fetchMe(ctx, &state)
	}
	if err != nil {
		return nil, c.settleFailedRefresh(err)
	}

	state.user = user
	state.loading = false
	c.setSession(state)

	return c.CurrentUser(), nil
}

// fetchMe loads the signed-in user, first exchanging the refresh token when
// state has no access token.
func (c *Client) fetchMe(ctx context.Context, state *sessionState) (*apimodel.User, error) {
	if state.accessToken == "" {
		var token apimodel.AccessToken
		req := &apimodel.RefreshRequest{RefreshToken: state.refreshToken}
		if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", req, &token); err != nil {
			return nil, err
		}
		state.accessToken = token.AccessToken
	}

	c.mu.Lock()
	c.session.accessToken = state.accessToken
	c.mu.Unlock()

	var user apimodel.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/me", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// settleFailedRefresh ends the loading state. An auth rejection means the
// session is gone; any other failure keeps the advisory user.
func (c *Client) settleFailedRefresh(err error) error {
	if IsStatus(err, http.StatusUnauthorized) {
		c.setSession(sessionState{})

		return nil
	}

	c.mu.Lock()
	c.session.loading = false
	c.mu.Unlock()

	return err
}
