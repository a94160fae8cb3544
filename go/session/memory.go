package session

import (
	"context"
	"sort"
	"sync"
)

// Store keeps teams in memory. Safe for concurrent use.
type Store struct {
	mtx     sync.RWMutex
	teams   map[string]Team
	current string
}

// NewStore creates a store holding teams; the first one becomes current
func NewStore(teams ...Team) *Store {
	store := &Store{teams: make(map[string]Team, len(teams))}
	for _, team := range teams {
		store.teams[team.ID] = team
	}
	if len(teams) > 0 {
		store.current = teams[0].ID
	}
	return store
}

func (s *Store) CurrentTeam(_ context.Context) (string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if s.current == "" {
		return "", ErrNoCurrentTeam
	}
	return s.current, nil
}

func (s *Store) Team(_ context.Context, id string) (Team, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	team, exists := s.teams[id]
	if !exists {
		return Team{}, ErrTeamNotFound
	}
	return team, nil
}

// Teams lists teams ordered by id
func (s *Store) Teams() []Team {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	teams := make([]Team, 0, len(s.teams))
	for _, team := range s.teams {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams
}

// Add inserts or replaces a team
func (s *Store) Add(team Team) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.teams[team.ID] = team
	if s.current == "" {
		s.current = team.ID
	}
}

// SetCurrentTeam moves the current team pointer, the team must exist
func (s *Store) SetCurrentTeam(id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, exists := s.teams[id]; !exists {
		return ErrTeamNotFound
	}
	s.current = id
	return nil
}

// Logout forgets the team; the current pointer is cleared when it pointed at it
func (s *Store) Logout(_ context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, exists := s.teams[id]; !exists {
		return ErrTeamNotFound
	}
	delete(s.teams, id)
	if s.current == id {
		s.current = ""
	}
	return nil
}
