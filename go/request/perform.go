package request

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	slackpkg "github.com/slack-go/slack"

	pcontext "github.com/kodekoding/slackmate/go/context"
	"github.com/kodekoding/slackmate/go/entity/slack"
	perror "github.com/kodekoding/slackmate/go/error"
	"github.com/kodekoding/slackmate/go/helper"
	plog "github.com/kodekoding/slackmate/go/log"
	"github.com/kodekoding/slackmate/go/monitoring"
	"github.com/kodekoding/slackmate/go/session"
)

// Perform calls the API with the current team's token and returns the decoded payload.
// Every failure is a *perror.RequestError, alerted unless opts.Silent, logged and returned.
func (c *Client) Perform(ctx context.Context, opts Options) (slack.Payload, error) {
	req := opts.normalize()
	ctx = withRequestID(ctx)

	txn := monitoring.BeginTrxFromContext(ctx)
	if txn != nil {
		segment := txn.StartSegment("Slack-" + req.path)
		segment.AddAttribute("method", req.method)
		defer segment.End()
	}

	payload, err := c.perform(ctx, req)
	if err != nil {
		return nil, c.handle(ctx, req, err)
	}

	plog.Ctx(ctx).Debug().Str("path", req.path).Str("method", req.method).Msg("slack call succeeded")
	return payload, nil
}

func (c *Client) perform(ctx context.Context, req *call) (slack.Payload, error) {
	connected, err := c.network.IsConnected(ctx)
	if err != nil {
		return nil, perror.Unknown(errors.Wrap(err, "slackmate.go.request.Perform.CheckNetwork"))
	}
	if !connected {
		return nil, perror.Network()
	}

	if !req.supported() {
		return nil, perror.Unknown(errors.Wrapf(ErrUnsupportedMethod, "slackmate.go.request.Perform.Method(%s)", req.method))
	}

	teamID, token, err := session.Token(ctx, c.sessionFrom(ctx))
	req.teamID = teamID
	if err != nil {
		return nil, perror.Unknown(errors.Wrap(err, "slackmate.go.request.Perform.ResolveToken"))
	}
	req.body["token"] = token

	httpReq := c.http.R().SetContext(ctx).SetAuthToken(token)
	if err = encodeBody(httpReq, req); err != nil {
		return nil, perror.Unknown(errors.Wrap(err, "slackmate.go.request.Perform.EncodeBody"))
	}

	resp, err := httpReq.Execute(req.method, c.apiURL+req.path)
	if err != nil {
		return nil, perror.Unknown(errors.Wrap(err, "slackmate.go.request.Perform.Execute"))
	}
	if !resp.IsSuccess() {
		return nil, perror.Server(resp.StatusCode())
	}

	return decode(resp.Body())
}

func (c *Client) sessionFrom(ctx context.Context) session.Reader {
	if reader := pcontext.GetSession(ctx); reader != nil {
		return reader
	}
	return c.session
}

// encodeBody puts the body in the query for GET, otherwise in a multipart form or json text
func encodeBody(httpReq *resty.Request, req *call) error {
	if req.method == http.MethodGet {
		params, err := stringify(req.body)
		if err != nil {
			return err
		}
		httpReq.SetQueryParams(params)
		return nil
	}

	if req.formData {
		fields, err := stringify(req.body)
		if err != nil {
			return err
		}
		httpReq.SetMultipartFormData(fields)
		return nil
	}

	httpReq.SetHeader("Content-Type", "application/json").SetBody(req.body)
	return nil
}

// stringify keeps strings as they are and json-encodes every other value
func stringify(body map[string]interface{}) (map[string]string, error) {
	fields := make(map[string]string, len(body))
	for key, value := range body {
		if str, isString := value.(string); isString {
			fields[key] = str
			continue
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return nil, errors.Wrapf(err, "slackmate.go.request.stringify(%s)", key)
		}
		fields[key] = string(raw)
	}
	return fields, nil
}

func decode(body []byte) (slack.Payload, error) {
	var payload slack.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, perror.Unknown(errors.Wrap(err, "slackmate.go.request.Perform.ParseBody"))
	}

	var status slackpkg.SlackResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, perror.Unknown(errors.Wrap(err, "slackmate.go.request.Perform.ParseStatus"))
	}
	if !status.Ok {
		return nil, perror.Slack(status.Error)
	}

	return payload, nil
}

func withRequestID(ctx context.Context) context.Context {
	requestID := monitoring.TraceID(ctx)
	if requestID == "" {
		requestID = helper.GenerateUUID()
		ctx = monitoring.WithTraceID(ctx, requestID)
	}
	return plog.WithRequestID(ctx, requestID)
}
