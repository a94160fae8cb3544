package request

import (
	"context"
	"fmt"

	pcontext "github.com/kodekoding/slackmate/go/context"
	perror "github.com/kodekoding/slackmate/go/error"
	plog "github.com/kodekoding/slackmate/go/log"
	"github.com/kodekoding/slackmate/go/notifications"
)

const (
	networkMessage = "Please check your internet connection"
	serverMessage  = "There is a problem on Slack side"
	unknownMessage = "Unknown error"
)

// Slack error codes after which the team's token is no longer usable
var logoutCodes = map[string]struct{}{
	"token_revoked":    {},
	"account_inactive": {},
}

// handle classifies err, alerts unless the call is silent and returns the classified error
func (c *Client) handle(ctx context.Context, req *call, err error) *perror.RequestError {
	reqErr, isRequestErr := perror.As(err)
	if !isRequestErr {
		reqErr = perror.Unknown(err)
	}
	reqErr.AppendData("path", req.path).AppendData("method", req.method)

	var message string
	switch reqErr.Kind() {
	case perror.NetworkError:
		message = networkMessage
	case perror.SlackError:
		message = fmt.Sprintf("SlackError: %s\npath: %s", reqErr.Error(), req.path)
		if _, revoked := logoutCodes[reqErr.Error()]; revoked {
			c.runLogout(ctx, req.teamID)
		}
	case perror.ServerError:
		message = serverMessage
	case perror.UnknownError:
		message = unknownMessage
	}

	log := plog.Ctx(ctx)
	log.Error().
		Err(reqErr).
		Str("kind", reqErr.Kind().String()).
		Str("path", req.path).
		Str("method", req.method).
		Int("status", reqErr.GetCode()).
		Bool("silent", req.silent).
		Msg("slack call failed")

	if !req.silent {
		if alertErr := c.notifierFrom(ctx).Alert(ctx, message); alertErr != nil {
			log.Warn().Err(alertErr).Msg("failed to alert")
		}
	}

	return reqErr
}

func (c *Client) notifierFrom(ctx context.Context) notifications.Notifier {
	if notifier := pcontext.GetNotifier(ctx); notifier != nil {
		return notifier
	}
	return c.notifier
}

// logoutFrom pairs the logout with the session the token was read from
func (c *Client) logoutFrom(ctx context.Context) LogoutFunc {
	if pcontext.GetSession(ctx) != nil {
		return pcontext.GetLogout(ctx)
	}
	return c.logout
}

// runLogout signs the team out outside of the caller's cancellation
func (c *Client) runLogout(ctx context.Context, teamID string) {
	log := plog.Ctx(ctx)
	logout := c.logoutFrom(ctx)
	if logout == nil || teamID == "" {
		log.Debug().Str("team_id", teamID).Msg("no logout configured, skipping")
		return
	}

	if err := logout(pcontext.CreateAsyncContext(ctx), teamID); err != nil {
		log.Error().Err(err).Str("team_id", teamID).Msg("failed to logout")
		return
	}
	log.Info().Str("team_id", teamID).Msg("team logged out")
}
