// Package flavor produces the system alerts and boss taunts shown next to the
// playfield. Text comes from an external generator; every failure is replaced
// by a fixed fallback line so the game never waits on or reports it.
package flavor

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse means the generator answered with no text.
	ErrEmptyResponse = errors.New("flavor: empty response")
	// ErrOffline is returned by the Offline provider.
	ErrOffline = errors.New("flavor: provider offline")
)

// Provider generates flavor text. Both calls may block on the network and
// may fail.
type Provider interface {
	SystemMessage(ctx context.Context, level int, bossName string) (string, error)
	BossTaunt(ctx context.Context, bossName string) (string, error)
}

// TauntFallback is shown when a taunt cannot be generated.
const TauntFallback = "010101... your system belongs to me!"

// SystemFallback is shown when a system alert cannot be generated.
func SystemFallback(bossName string) string {
	return fmt.Sprintf("SYSTEM ALERT: unauthorized process %s found. Immediate purge required.", bossName)
}

// Offline never reaches a generator. Used when no API key is configured.
type Offline struct{}

func (Offline) SystemMessage(context.Context, int, string) (string, error) { return "", ErrOffline }
func (Offline) BossTaunt(context.Context, string) (string, error)         { return "", ErrOffline }
