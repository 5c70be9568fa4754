package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"epspulse/pkg/contracts/domain"
)

// BuildDataset splits the grid into company blocks and normalizes each one
// into a CompanySeries. Blocks are normalized concurrently; the resulting
// Dataset is immutable and safe to share read-only.
//
// When two blocks share the same trimmed name, the later block's series wins
// while the name keeps its first-appearance position in the order, matching
// map-overwrite semantics.
func BuildDataset(ctx context.Context, grid domain.RawGrid, logger *slog.Logger) (*domain.Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}

	blocks := SplitBlocks(grid.Headers)
	series := make([]domain.CompanySeries, len(blocks))

	g, _ := errgroup.WithContext(ctx)
	for i, block := range blocks {
		g.Go(func() error {
			series[i] = NormalizeBlock(grid, block)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dataset := &domain.Dataset{
		LoadID:    uuid.New().String(),
		LoadedAt:  time.Now().UTC(),
		Companies: make(map[string]domain.CompanySeries, len(blocks)),
	}
	for _, s := range series {
		if _, seen := dataset.Companies[s.Name]; !seen {
			dataset.Order = append(dataset.Order, s.Name)
		} else {
			logger.WarnContext(ctx, "duplicate company block, later block wins",
				slog.String("company", s.Name))
		}
		dataset.Companies[s.Name] = s
	}

	logger.InfoContext(ctx, "dataset built",
		slog.String("load_id", dataset.LoadID),
		slog.Int("companies", len(dataset.Order)),
		slog.Int("grid_rows", len(grid.Rows)))

	return dataset, nil
}
