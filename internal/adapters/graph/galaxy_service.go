package graph

import (
	"context"
	"log"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
)

// GalaxyService fronts a galaxy.Repository with an in-memory cache.
//
// Caching Strategy (Two-Tier):
// - Tier 1: In-memory cache keyed by turn, kept for the process lifetime
// - Tier 2: The repository (database)
// - Concurrent loads of the same turn are collapsed into one repository read
//
// Cached galaxies are shared between callers and must be treated as read-only.
type GalaxyService struct {
	repo  galaxy.Repository
	cache sync.Map // turn -> *galaxy.Galaxy
	loads singleflight.Group
}

// NewGalaxyService creates a new galaxy service
func NewGalaxyService(repo galaxy.Repository) *GalaxyService {
	return &GalaxyService{repo: repo}
}

// Save stores the galaxy and replaces the cached copy for the turn
func (s *GalaxyService) Save(ctx context.Context, turn int, g *galaxy.Galaxy) error {
	if err := s.repo.Save(ctx, turn, g); err != nil {
		s.cache.Delete(turn)
		return err
	}
	s.cache.Store(turn, g)
	return nil
}

// FindByTurn returns the galaxy for a turn, reading the repository at most once per turn
func (s *GalaxyService) FindByTurn(ctx context.Context, turn int) (*galaxy.Galaxy, error) {
	if cached, ok := s.cache.Load(turn); ok {
		return cached.(*galaxy.Galaxy), nil
	}

	v, err, shared := s.loads.Do(strconv.Itoa(turn), func() (interface{}, error) {
		if cached, ok := s.cache.Load(turn); ok {
			return cached, nil
		}
		g, err := s.repo.FindByTurn(ctx, turn)
		if err != nil {
			return nil, err
		}
		// Build the lookup indexes once so readers never write to the shared galaxy
		if err := g.Validate(); err != nil {
			log.Printf("Galaxy for turn %d failed validation: %v", turn, err)
		}
		s.cache.Store(turn, g)
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Printf("Galaxy load for turn %d shared with a concurrent caller", turn)
	}

	return v.(*galaxy.Galaxy), nil
}

// LatestTurn always asks the repository so turns imported elsewhere are seen
func (s *GalaxyService) LatestTurn(ctx context.Context) (int, error) {
	return s.repo.LatestTurn(ctx)
}

// Invalidate drops the cached galaxy for a turn
func (s *GalaxyService) Invalidate(turn int) {
	s.cache.Delete(turn)
}
