package request

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	pcontext "github.com/kodekoding/slackmate/go/context"
	"github.com/kodekoding/slackmate/go/entity/slack"
	perror "github.com/kodekoding/slackmate/go/error"
	"github.com/kodekoding/slackmate/go/mocks"
	"github.com/kodekoding/slackmate/go/network"
	"github.com/kodekoding/slackmate/go/session"
)

type captured struct {
	hits        int
	method      string
	path        string
	auth        string
	contentType string
	form        map[string]string
	json        map[string]interface{}
	query       url.Values
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.hits++
		got.method = r.Method
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		got.contentType = r.Header.Get("Content-Type")
		got.query = r.URL.Query()

		switch {
		case strings.HasPrefix(got.contentType, "multipart/form-data"):
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			got.form = make(map[string]string)
			for key, values := range r.MultipartForm.Value {
				got.form[key] = values[0]
			}
		case strings.HasPrefix(got.contentType, "application/json"):
			raw, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.NoError(t, json.Unmarshal(raw, &got.json))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return server, got
}

func teamStore() *session.Store {
	return session.NewStore(session.Team{ID: "T1", Name: "kodekoding", Token: "xoxb-1"})
}

func TestPerform_PostMessage(t *testing.T) {
	server, got := newServer(t, http.StatusOK, `{"ok":true,"ts":"123.45"}`)
	ctrl := gomock.NewController(t)

	checker := mocks.NewMockChecker(ctrl)
	checker.EXPECT().IsConnected(gomock.Any()).Return(true, nil)
	notifier := mocks.NewMockNotifier(ctrl)

	client := New(server.URL, WithChecker(checker), WithSession(teamStore()), WithNotifier(notifier))
	payload, err := client.Perform(context.Background(), Options{
		Path: "/chat.postMessage",
		Body: map[string]interface{}{"channel": "C1", "text": "hi"},
	})

	require.NoError(t, err)
	assert.Equal(t, slack.Payload{"ok": true, "ts": "123.45"}, payload)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/chat.postMessage", got.path)
	assert.Equal(t, "Bearer xoxb-1", got.auth)
	assert.Equal(t, map[string]string{"channel": "C1", "text": "hi", "token": "xoxb-1"}, got.form)
}

func TestPerform_Encoding(t *testing.T) {
	t.Run("body forces POST even when GET was asked", func(t *testing.T) {
		server, got := newServer(t, http.StatusOK, `{"ok":true}`)
		client := New(server.URL, WithSession(teamStore()))

		_, err := client.Perform(context.Background(), Options{
			Path:   "/conversations.info",
			Method: http.MethodGet,
			Body:   map[string]interface{}{"channel": "C1"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, got.method)
	})

	t.Run("empty body still posts the token", func(t *testing.T) {
		server, got := newServer(t, http.StatusOK, `{"ok":true}`)
		client := New(server.URL, WithSession(teamStore()))

		_, err := client.Perform(context.Background(), Options{Path: "/auth.revoke", Body: map[string]interface{}{}})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, got.method)
		assert.Equal(t, "xoxb-1", got.form["token"])
		assert.Empty(t, got.query.Get("token"))
	})

	t.Run("form data is the default encoding", func(t *testing.T) {
		server, got := newServer(t, http.StatusOK, `{"ok":true}`)
		client := New(server.URL, WithSession(teamStore()))

		_, err := client.Perform(context.Background(), Options{
			Path: "/chat.postMessage",
			Body: map[string]interface{}{"channel": "C1", "unfurl_links": false, "limit": 10},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got.contentType, "multipart/form-data"))
		assert.Equal(t, "false", got.form["unfurl_links"])
		assert.Equal(t, "10", got.form["limit"])
	})

	t.Run("json when form data is disabled", func(t *testing.T) {
		server, got := newServer(t, http.StatusOK, `{"ok":true}`)
		client := New(server.URL, WithSession(teamStore()))

		_, err := client.Perform(context.Background(), Options{
			Path:       "/chat.postMessage",
			IsFormData: Bool(false),
			Body:       map[string]interface{}{"channel": "C1", "text": "hi"},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got.contentType, "application/json"))
		assert.Equal(t, map[string]interface{}{"channel": "C1", "text": "hi", "token": "xoxb-1"}, got.json)
		assert.Equal(t, "Bearer xoxb-1", got.auth)
	})

	t.Run("GET without body sends the token as query", func(t *testing.T) {
		server, got := newServer(t, http.StatusOK, `{"ok":true,"user_id":"U1"}`)
		client := New(server.URL, WithSession(teamStore()))

		payload, err := client.Perform(context.Background(), Options{Path: "/auth.test"})
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, got.method)
		assert.Equal(t, "xoxb-1", got.query.Get("token"))
		assert.Equal(t, "U1", payload["user_id"])
	})

	t.Run("caller body is left untouched", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{"ok":true}`)
		client := New(server.URL, WithSession(teamStore()))

		body := map[string]interface{}{"channel": "C1"}
		_, err := client.Perform(context.Background(), Options{Path: "/conversations.join", Body: body})
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"channel": "C1"}, body)
	})
}

func TestPerform_Failures(t *testing.T) {
	t.Run("no network fails before any request", func(t *testing.T) {
		server, got := newServer(t, http.StatusOK, `{"ok":true}`)
		ctrl := gomock.NewController(t)

		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().Alert(gomock.Any(), "Please check your internet connection").Return(nil).Times(1)

		client := New(server.URL, WithChecker(network.Static(false)), WithSession(teamStore()), WithNotifier(notifier))
		_, err := client.Perform(context.Background(), Options{Path: "/auth.test"})

		require.Error(t, err)
		assert.Equal(t, perror.NetworkError, perror.KindOf(err))
		assert.Equal(t, 0, got.hits)
	})

	t.Run("ok false is a slack error and logs the team out", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{"ok":false,"error":"token_revoked"}`)
		ctrl := gomock.NewController(t)

		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().Alert(gomock.Any(), "SlackError: token_revoked\npath: /auth.test").Return(nil)

		var loggedOut string
		client := New(server.URL, WithSession(teamStore()), WithNotifier(notifier), WithLogout(func(_ context.Context, teamID string) error {
			loggedOut = teamID
			return nil
		}))
		_, err := client.Perform(context.Background(), Options{Path: "/auth.test"})

		require.Error(t, err)
		assert.Equal(t, perror.SlackError, perror.KindOf(err))
		assert.Equal(t, "token_revoked", err.Error())
		assert.Equal(t, "T1", loggedOut)
	})

	t.Run("other slack errors keep the session", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{"ok":false,"error":"channel_not_found"}`)
		store := teamStore()

		client := New(server.URL, WithSession(store), WithLogout(store.Logout))
		_, err := client.Perform(context.Background(), Options{Path: "/conversations.info", Body: map[string]interface{}{"channel": "C9"}})

		require.Error(t, err)
		assert.Equal(t, "channel_not_found", err.Error())
		_, err = store.Team(context.Background(), "T1")
		assert.NoError(t, err)
	})

	t.Run("account inactive removes the team from the store", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{"ok":false,"error":"account_inactive"}`)
		store := teamStore()

		client := New(server.URL, WithSession(store), WithLogout(store.Logout))
		_, err := client.Perform(context.Background(), Options{Path: "/auth.test"})

		require.Error(t, err)
		_, err = store.Team(context.Background(), "T1")
		assert.True(t, errors.Is(err, session.ErrTeamNotFound))
	})

	t.Run("non 2xx is a server error", func(t *testing.T) {
		server, _ := newServer(t, http.StatusNotFound, `not found`)
		ctrl := gomock.NewController(t)

		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().Alert(gomock.Any(), "There is a problem on Slack side").Return(nil)

		client := New(server.URL, WithSession(teamStore()), WithNotifier(notifier))
		_, err := client.Perform(context.Background(), Options{Path: "/missing"})

		reqErr, ok := perror.As(err)
		require.True(t, ok)
		assert.Equal(t, perror.ServerError, reqErr.Kind())
		assert.Equal(t, http.StatusNotFound, reqErr.GetCode())
		assert.Equal(t, "/missing", reqErr.GetData()["path"])
	})

	t.Run("missing team record is unknown", func(t *testing.T) {
		server, got := newServer(t, http.StatusOK, `{"ok":true}`)
		ctrl := gomock.NewController(t)

		reader := mocks.NewMockReader(ctrl)
		reader.EXPECT().CurrentTeam(gomock.Any()).Return("T404", nil)
		reader.EXPECT().Team(gomock.Any(), "T404").Return(session.Team{}, session.ErrTeamNotFound)
		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().Alert(gomock.Any(), "Unknown error").Return(nil)

		client := New(server.URL, WithSession(reader), WithNotifier(notifier))
		_, err := client.Perform(context.Background(), Options{Path: "/auth.test"})

		require.Error(t, err)
		assert.Equal(t, perror.UnknownError, perror.KindOf(err))
		assert.True(t, errors.Is(err, session.ErrTeamNotFound))
		assert.Equal(t, 0, got.hits)
	})

	t.Run("unparsable body is unknown", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `<html>`)
		client := New(server.URL, WithSession(teamStore()))

		_, err := client.Perform(context.Background(), Options{Path: "/auth.test"})
		assert.Equal(t, perror.UnknownError, perror.KindOf(err))
	})

	t.Run("unsupported method is unknown", func(t *testing.T) {
		server, got := newServer(t, http.StatusOK, `{"ok":true}`)
		client := New(server.URL, WithSession(teamStore()))

		_, err := client.Perform(context.Background(), Options{Path: "/auth.test", Method: http.MethodDelete})
		assert.True(t, errors.Is(err, ErrUnsupportedMethod))
		assert.Equal(t, 0, got.hits)
	})

	t.Run("alert failure does not replace the error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().Alert(gomock.Any(), gomock.Any()).Return(errors.New("webhook down"))

		client := New("", WithChecker(network.Static(false)), WithNotifier(notifier))
		_, err := client.Perform(context.Background(), Options{Path: "/auth.test"})
		assert.Equal(t, perror.NetworkError, perror.KindOf(err))
	})
}

func TestPerform_Silent(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		checker  network.Checker
		kind     perror.Kind
	}{
		{name: "network", status: http.StatusOK, response: `{"ok":true}`, checker: network.Static(false), kind: perror.NetworkError},
		{name: "slack", status: http.StatusOK, response: `{"ok":false,"error":"invalid_auth"}`, checker: network.Static(true), kind: perror.SlackError},
		{name: "server", status: http.StatusBadGateway, response: ``, checker: network.Static(true), kind: perror.ServerError},
		{name: "unknown", status: http.StatusOK, response: `{`, checker: network.Static(true), kind: perror.UnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newServer(t, tt.status, tt.response)
			ctrl := gomock.NewController(t)

			// no expectation: any Alert call fails the test
			notifier := mocks.NewMockNotifier(ctrl)

			client := New(server.URL, WithChecker(tt.checker), WithSession(teamStore()), WithNotifier(notifier))
			_, err := client.Perform(context.Background(), Options{Path: "/auth.test", Silent: true})

			require.Error(t, err)
			assert.Equal(t, tt.kind, perror.KindOf(err))
		})
	}
}

func TestPerform_ContextOverrides(t *testing.T) {
	server, got := newServer(t, http.StatusOK, `{"ok":false,"error":"not_in_channel"}`)
	ctrl := gomock.NewController(t)

	defaultNotifier := mocks.NewMockNotifier(ctrl)
	scoped := mocks.NewMockNotifier(ctrl)
	scoped.EXPECT().Alert(gomock.Any(), "SlackError: not_in_channel\npath: /chat.postMessage").Return(nil)

	client := New(server.URL, WithSession(teamStore()), WithNotifier(defaultNotifier))

	ctx := pcontext.SetSession(context.Background(), session.NewStore(session.Team{ID: "T2", Token: "xoxp-2"}))
	ctx = pcontext.SetNotifier(ctx, scoped)

	_, err := client.Perform(ctx, Options{Path: "/chat.postMessage", Body: map[string]interface{}{"channel": "C1", "text": "hi"}})
	require.Error(t, err)
	assert.Equal(t, "Bearer xoxp-2", got.auth)
}

func TestPerform_ScopedSessionLogout(t *testing.T) {
	t.Run("revoked scoped token signs out of the scoped store only", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{"ok":false,"error":"token_revoked"}`)
		defaultStore, scopedStore := teamStore(), teamStore()

		client := New(server.URL, WithSession(defaultStore), WithLogout(defaultStore.Logout))
		ctx := pcontext.SetSession(context.Background(), scopedStore, scopedStore.Logout)

		_, err := client.Perform(ctx, Options{Path: "/auth.test", Silent: true})
		require.Error(t, err)

		_, err = scopedStore.Team(context.Background(), "T1")
		assert.True(t, errors.Is(err, session.ErrTeamNotFound))
		_, err = defaultStore.Team(context.Background(), "T1")
		assert.NoError(t, err)
	})

	t.Run("scoped store without logout keeps both stores", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{"ok":false,"error":"token_revoked"}`)
		defaultStore, scopedStore := teamStore(), teamStore()

		client := New(server.URL, WithSession(defaultStore), WithLogout(defaultStore.Logout))
		ctx := pcontext.SetSession(context.Background(), scopedStore)

		_, err := client.Perform(ctx, Options{Path: "/auth.test", Silent: true})
		require.Error(t, err)

		_, err = scopedStore.Team(context.Background(), "T1")
		assert.NoError(t, err)
		_, err = defaultStore.Team(context.Background(), "T1")
		assert.NoError(t, err)
	})
}

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, DefaultAPIURL, New("").APIURL())
	assert.Equal(t, "http://localhost:8080/api", New("http://localhost:8080/api/").APIURL())
}
