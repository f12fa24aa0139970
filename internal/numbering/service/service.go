// Package service implements number validation, complete-number parsing,
// display formatting, correction hints and territory search on top of a
// registry snapshot. Lookups are synchronous and side-effect free; Admin
// applies bulk registry updates.
package service

import (
	"fmt"

	"numbering_backend/internal/numbering/registry"
)

// Strategy selects how the complete-number parser resolves a calling code
// shared by several territories.
type Strategy string

const (
	// StrategyFirstMatch resolves to the first registry entry under the code.
	StrategyFirstMatch Strategy = "first_match"
	// StrategyAllCandidates tries every territory under the code, in registry
	// order, and accepts the first whose pattern matches.
	StrategyAllCandidates Strategy = "all_candidates"
)

// ParseStrategy maps a configuration value to a Strategy.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(value) {
	case "", StrategyFirstMatch:
		return StrategyFirstMatch, nil
	case StrategyAllCandidates:
		return StrategyAllCandidates, nil
	default:
		return "", fmt.Errorf("unknown complete-number strategy %q", value)
	}
}

// Service is the numbering engine. It holds the registry by reference and
// reads one snapshot per call.
type Service struct {
	reg      *registry.Registry
	strategy Strategy
}

// Option configures a Service.
type Option func(*Service)

// WithStrategy sets the complete-number resolution strategy.
func WithStrategy(strategy Strategy) Option {
	return func(s *Service) {
		s.strategy = strategy
	}
}

// New creates a Service reading from reg.
func New(reg *registry.Registry, opts ...Option) *Service {
	s := &Service{reg: reg, strategy: StrategyFirstMatch}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strategy returns the configured complete-number strategy.
func (s *Service) Strategy() Strategy { return s.strategy }

// Snapshot returns the registry snapshot currently published.
func (s *Service) Snapshot() *registry.Snapshot { return s.reg.Snapshot() }

// Territory looks up a territory by exact code.
func (s *Service) Territory(code string) (registry.CountryRecord, bool) {
	return s.reg.Snapshot().FindByCode(code)
}

// TerritoriesByCallingCode returns every territory under callingCode in
// registry order.
func (s *Service) TerritoriesByCallingCode(callingCode string) []registry.CountryRecord {
	return s.reg.Snapshot().FindAllByCallingCode(callingCode)
}
