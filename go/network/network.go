package network

//go:generate mockgen -source=network.go -destination=../mocks/network.go -package=mocks

import "context"

// Checker answers whether the device currently has connectivity
type Checker interface {
	IsConnected(ctx context.Context) (bool, error)
}

// Static always reports the same state
type Static bool

func (s Static) IsConnected(context.Context) (bool, error) {
	return bool(s), nil
}

// CheckerFunc adapts a function into a Checker
type CheckerFunc func(ctx context.Context) (bool, error)

func (f CheckerFunc) IsConnected(ctx context.Context) (bool, error) {
	return f(ctx)
}
