package session

//go:generate mockgen -source=session.go -destination=../mocks/session.go -package=mocks

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNoCurrentTeam = errors.New("no current team selected")
	ErrTeamNotFound  = errors.New("team not found")
)

// Team is a signed-in workspace
type Team struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Token string `json:"token" yaml:"token"`
}

// LogoutFunc signs the given team out of a session
type LogoutFunc func(ctx context.Context, teamID string) error

// Reader is the read side of the session state consulted by outgoing calls
type Reader interface {
	CurrentTeam(ctx context.Context) (string, error)
	Team(ctx context.Context, id string) (Team, error)
}

// Token resolves the token of the current team.
// It returns the team id alongside so callers can act on that team later.
func Token(ctx context.Context, reader Reader) (teamID, token string, err error) {
	if reader == nil {
		return "", "", errors.Wrap(ErrNoCurrentTeam, "slackmate.go.session.Token.NilReader")
	}

	teamID, err = reader.CurrentTeam(ctx)
	if err != nil {
		return "", "", errors.Wrap(err, "slackmate.go.session.Token.CurrentTeam")
	}

	team, err := reader.Team(ctx, teamID)
	if err != nil {
		return teamID, "", errors.Wrapf(err, "slackmate.go.session.Token.Team(%s)", teamID)
	}

	return teamID, team.Token, nil
}
