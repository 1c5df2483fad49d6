package service

import (
	"context"
	"errors"
	"strings"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
	"github.com/digichlist/digichlist-bot/internal/conf"
)

// ErrUnknownCommand means no handler is registered for the token
var ErrUnknownCommand = errors.New("no such command")

// Command is the capability interface every handler satisfies
type Command interface {
	Process(ctx context.Context, env domain.Envelope) error
}

// CommandFactory builds a command handler
type CommandFactory func() Command

// Registry maps command tokens to handler factories. Registration happens
// once at startup; lookup is O(1).
type Registry struct {
	factories map[string]CommandFactory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]CommandFactory)}
}

// Register binds a command token to a handler factory
func (r *Registry) Register(name string, factory CommandFactory) {
	r.factories[name] = factory
}

// Resolve finds the handler for a token: exact match first, then the defect
// submission prefix rule (any text containing the token resolves to it, since
// that command carries free-text arguments).
func (r *Registry) Resolve(token string) (Command, error) {
	if factory, ok := r.factories[token]; ok {
		return factory(), nil
	}
	if strings.Contains(token, conf.CommandNewDefect) {
		if factory, ok := r.factories[conf.CommandNewDefect]; ok {
			return factory(), nil
		}
	}
	return nil, ErrUnknownCommand
}
