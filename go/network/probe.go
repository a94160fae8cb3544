package network

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	plog "github.com/kodekoding/slackmate/go/log"
)

const defaultProbeTimeout = 5 * time.Second

var ErrMissingProbeURL = errors.New("probe URL is required")

type (
	ProbeOption func(*Probe)

	// Probe considers the network up when url answers with any HTTP status.
	// Concurrent checks share one in-flight request.
	Probe struct {
		url     string
		timeout time.Duration
		resty   *resty.Client
		group   singleflight.Group
	}
)

func WithProbeHTTPClient(client *http.Client) ProbeOption {
	return func(p *Probe) {
		if client != nil {
			p.resty = resty.NewWithClient(client)
		}
	}
}

func WithProbeTimeout(timeout time.Duration) ProbeOption {
	return func(p *Probe) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

func NewProbe(url string, opts ...ProbeOption) (*Probe, error) {
	if url == "" {
		return nil, ErrMissingProbeURL
	}

	probe := &Probe{
		url:     url,
		timeout: defaultProbeTimeout,
		resty:   resty.New(),
	}
	for _, opt := range opts {
		opt(probe)
	}
	probe.resty.SetTimeout(probe.timeout)
	return probe, nil
}

// IsConnected waits for the shared check or for ctx, whichever ends first.
// The shared check runs on its own deadline so one caller giving up does not fail the others.
func (p *Probe) IsConnected(ctx context.Context) (bool, error) {
	flight := p.group.DoChan(p.url, func() (interface{}, error) {
		checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()

		resp, err := p.resty.R().SetContext(checkCtx).Head(p.url)
		if err != nil {
			plog.Ctx(ctx).Debug().Err(err).Str("url", p.url).Msg("connectivity check failed")
			return false, nil
		}
		return resp.StatusCode() > 0, nil
	})

	select {
	case <-ctx.Done():
		return false, errors.Wrap(ctx.Err(), "slackmate.go.network.Probe.IsConnected")
	case result := <-flight:
		if result.Err != nil {
			return false, errors.Wrap(result.Err, "slackmate.go.network.Probe.IsConnected")
		}
		return result.Val.(bool), nil
	}
}
