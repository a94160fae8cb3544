package apps

import (
	"context"

	"github.com/pkg/errors"
	slackpkg "github.com/slack-go/slack"

	"github.com/kodekoding/slackmate/go/binding"
	pcontext "github.com/kodekoding/slackmate/go/context"
	entity "github.com/kodekoding/slackmate/go/entity/slack"
	"github.com/kodekoding/slackmate/go/request"
	"github.com/kodekoding/slackmate/go/session"
)

type (
	// Performer is satisfied by *request.Client
	Performer interface {
		Perform(ctx context.Context, opts request.Options) (entity.Payload, error)
	}

	Slacks interface {
		AuthTest(ctx context.Context) (*slackpkg.AuthTestResponse, error)
		PostMessage(ctx context.Context, params *entity.PostMessageRequest) (*entity.PostMessageResponse, error)
		ConversationsList(ctx context.Context, params *entity.ConversationsListRequest) ([]slackpkg.Channel, string, error)
		ConversationHistory(ctx context.Context, params *entity.ConversationHistoryRequest) (*slackpkg.GetConversationHistoryResponse, error)
		CreateNewChannel(ctx context.Context, name string, isPrivate ...bool) (*slackpkg.Channel, error)
		InviteUserToChannel(ctx context.Context, channelId string, users ...string) error
		ArchiveChannel(ctx context.Context, channelId string) error
		AddReminder(ctx context.Context, params *entity.ReminderAddRequest) (*entity.Reminder, error)
		OAuthAccess(ctx context.Context, params *entity.OauthAccessRequest) (*entity.OauthAccess, error)
	}

	slack struct {
		client Performer
	}
)

func NewSlack(client Performer) *slack {
	return &slack{client: client}
}

// call binds params into the body, performs the request and decodes the payload into dest.
// A nil params sends no body, a nil dest skips decoding.
func (s *slack) call(ctx context.Context, path string, params, dest interface{}) error {
	var body map[string]interface{}
	if params != nil {
		bound, err := binding.Params(params)
		if err != nil {
			return errors.Wrapf(err, "slackmate.go.apps.slack%s.Params", path)
		}
		body = bound
	}

	payload, err := s.client.Perform(ctx, request.Options{Path: path, Body: body})
	if err != nil {
		return errors.Wrapf(err, "slackmate.go.apps.slack%s", path)
	}

	if dest == nil {
		return nil
	}
	if err = payload.Decode(dest); err != nil {
		return errors.Wrapf(err, "slackmate.go.apps.slack%s.Decode", path)
	}
	return nil
}

func (s *slack) AuthTest(ctx context.Context) (*slackpkg.AuthTestResponse, error) {
	result := new(slackpkg.AuthTestResponse)
	if err := s.call(ctx, "/auth.test", nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *slack) PostMessage(ctx context.Context, params *entity.PostMessageRequest) (*entity.PostMessageResponse, error) {
	result := new(entity.PostMessageResponse)
	if err := s.call(ctx, "/chat.postMessage", params, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ConversationsList returns one page of channels and the cursor of the next one, empty on the last page
func (s *slack) ConversationsList(ctx context.Context, params *entity.ConversationsListRequest) ([]slackpkg.Channel, string, error) {
	var result struct {
		Channels         []slackpkg.Channel      `json:"channels"`
		ResponseMetadata entity.ResponseMetadata `json:"response_metadata"`
	}

	var body interface{}
	if params != nil && *params != (entity.ConversationsListRequest{}) {
		body = params
	}
	if err := s.call(ctx, "/conversations.list", body, &result); err != nil {
		return nil, "", err
	}
	return result.Channels, result.ResponseMetadata.NextCursor, nil
}

func (s *slack) ConversationHistory(ctx context.Context, params *entity.ConversationHistoryRequest) (*slackpkg.GetConversationHistoryResponse, error) {
	result := new(slackpkg.GetConversationHistoryResponse)
	if err := s.call(ctx, "/conversations.history", params, result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateNewChannel - create new channel slack, with params:
// - name: channel name
// - isPrivate: is private channel ?? default is false, then should be create public channel
func (s *slack) CreateNewChannel(ctx context.Context, name string, isPrivate ...bool) (*slackpkg.Channel, error) {
	isPrivateChannel := false
	if len(isPrivate) > 0 {
		isPrivateChannel = isPrivate[0]
	}

	var result struct {
		Channel slackpkg.Channel `json:"channel"`
	}
	params := &entity.ChannelCreateRequest{Name: name, IsPrivate: isPrivateChannel}
	if err := s.call(ctx, "/conversations.create", params, &result); err != nil {
		return nil, err
	}
	return &result.Channel, nil
}

func (s *slack) InviteUserToChannel(ctx context.Context, channelId string, users ...string) error {
	return s.call(ctx, "/conversations.invite", &entity.ChannelInviteRequest{Channel: channelId, Users: users}, nil)
}

// ArchiveChannel - archive channel slack
func (s *slack) ArchiveChannel(ctx context.Context, channelId string) error {
	return s.call(ctx, "/conversations.archive", &entity.ChannelArchiveRequest{Channel: channelId}, nil)
}

func (s *slack) AddReminder(ctx context.Context, params *entity.ReminderAddRequest) (*entity.Reminder, error) {
	var result struct {
		Reminder entity.Reminder `json:"reminder"`
	}
	if err := s.call(ctx, "/reminders.add", params, &result); err != nil {
		return nil, err
	}
	return &result.Reminder, nil
}

// OAuthAccess exchanges an oauth code for a token. No team is signed in yet at that point,
// so the call runs on an empty session and authenticates with the client credentials only.
func (s *slack) OAuthAccess(ctx context.Context, params *entity.OauthAccessRequest) (*entity.OauthAccess, error) {
	if params == nil {
		return nil, errors.Wrap(binding.ErrNotStruct, "slackmate.go.apps.slack/oauth.v2.access.Params")
	}
	ctx = pcontext.SetSession(ctx, session.NewStore(session.Team{ID: params.ClientId}))

	result := new(entity.OauthAccess)
	if err := s.call(ctx, "/oauth.v2.access", params, result); err != nil {
		return nil, err
	}
	return result, nil
}
