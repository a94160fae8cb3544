package console

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Service prints alerts to a terminal. Writes are serialized so concurrent
// alerts never interleave.
type Service struct {
	mtx sync.Mutex
	out io.Writer
}

func New(out io.Writer) *Service {
	return &Service{out: out}
}

func (s *Service) Alert(_ context.Context, message string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	_, err := fmt.Fprintf(s.out, "⚠ %s\n", message)
	return err
}

func (s *Service) IsActive() bool {
	return s.out != nil
}

func (s *Service) Type() string {
	return "console"
}
