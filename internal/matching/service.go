package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

var ErrEmptyAlias = errors.New("alias pattern and agency are required")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindAgency(ctx context.Context, rawName string) (forecast.AgencyID, error)
	CreateAlias(ctx context.Context, rawPattern string, agency forecast.AgencyID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the agency a raw client name was previously mapped to.
// Returns an empty ID if no alias matches.
func (s *Service) Suggest(ctx context.Context, rawName string) (forecast.AgencyID, error) {
	return s.repo.FindAgency(ctx, strings.TrimSpace(rawName))
}

// Learn remembers that client names containing rawPattern belong to agency.
func (s *Service) Learn(ctx context.Context, rawPattern string, agency forecast.AgencyID) error {
	rawPattern = strings.TrimSpace(rawPattern)
	if rawPattern == "" || strings.TrimSpace(string(agency)) == "" {
		return ErrEmptyAlias
	}

	return s.repo.CreateAlias(ctx, rawPattern, agency)
}

// Resolve rewrites every agency reference in snap through the learned aliases.
// Names without an alias are kept as they are.
func (s *Service) Resolve(ctx context.Context, snap forecast.Snapshot) (forecast.Snapshot, error) {
	resolved := make(map[forecast.AgencyID]forecast.AgencyID)

	var lookupErr error

	lookup := func(id forecast.AgencyID) forecast.AgencyID {
		if id == forecast.Unassigned || lookupErr != nil {
			return id
		}

		if to, ok := resolved[id]; ok {
			return to
		}

		to, err := s.Suggest(ctx, string(id))
		if err != nil {
			lookupErr = fmt.Errorf("resolving agency %q: %w", id, err)
			return id
		}

		if to == "" {
			to = id
		}

		resolved[id] = to

		return to
	}

	out := snap.MapAgencies(lookup)
	if lookupErr != nil {
		return forecast.Snapshot{}, lookupErr
	}

	return out, nil
}
