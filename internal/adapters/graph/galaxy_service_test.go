package graph_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane-supply/internal/adapters/graph"
	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
	"github.com/andrescamacho/starlane-supply/internal/domain/shared"
	"github.com/andrescamacho/starlane-supply/test/helpers"
)

// countingRepository is an in-memory galaxy.Repository that counts reads
type countingRepository struct {
	mu       sync.Mutex
	galaxies map[int]*galaxy.Galaxy
	reads    atomic.Int32
	delay    time.Duration
}

func newCountingRepository() *countingRepository {
	return &countingRepository{galaxies: make(map[int]*galaxy.Galaxy)}
}

func (r *countingRepository) Save(ctx context.Context, turn int, g *galaxy.Galaxy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.galaxies[turn] = g
	return nil
}

func (r *countingRepository) FindByTurn(ctx context.Context, turn int) (*galaxy.Galaxy, error) {
	r.reads.Add(1)
	time.Sleep(r.delay)
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.galaxies[turn]
	if !ok {
		return nil, shared.NewNotFoundError("galaxy for turn", "x")
	}
	return g, nil
}

func (r *countingRepository) LatestTurn(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	latest := 0
	for turn := range r.galaxies {
		if turn > latest {
			latest = turn
		}
	}
	return latest, nil
}

func TestGalaxyService_CachesAfterFirstLoad(t *testing.T) {
	// Arrange
	repo := newCountingRepository()
	require.NoError(t, repo.Save(context.Background(), 1, helpers.ChainGalaxy(3)))
	svc := graph.NewGalaxyService(repo)

	// Act
	first, err := svc.FindByTurn(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.FindByTurn(context.Background(), 1)
	require.NoError(t, err)

	// Assert
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), repo.reads.Load())
}

func TestGalaxyService_ConcurrentLoadsShareOneRead(t *testing.T) {
	repo := newCountingRepository()
	repo.delay = 50 * time.Millisecond
	require.NoError(t, repo.Save(context.Background(), 2, helpers.ChainGalaxy(4)))
	svc := graph.NewGalaxyService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := svc.FindByTurn(context.Background(), 2)
			assert.NoError(t, err)
			assert.Len(t, g.Systems, 4)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), repo.reads.Load())
}

func TestGalaxyService_SaveRefreshesCacheAndMissesAreNotCached(t *testing.T) {
	repo := newCountingRepository()
	svc := graph.NewGalaxyService(repo)

	_, err := svc.FindByTurn(context.Background(), 5)
	var notFound *shared.NotFoundError
	require.ErrorAs(t, err, &notFound)

	require.NoError(t, svc.Save(context.Background(), 5, helpers.ChainGalaxy(2)))
	g, err := svc.FindByTurn(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, g.Systems, 2)
	assert.Equal(t, int32(1), repo.reads.Load())

	latest, err := svc.LatestTurn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, latest)

	svc.Invalidate(5)
	_, err = svc.FindByTurn(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.reads.Load())
}
