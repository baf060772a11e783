package ports

import (
	"context"

	"tabscope/domain/analysis"
	"tabscope/domain/charts"
	"tabscope/domain/core"
)

// ResultRepositoryPort persists result graphs keyed by an opaque file
// identifier. Persistence lives outside the engine.
type ResultRepositoryPort interface {
	SaveResult(ctx context.Context, fileID core.FileID, result *analysis.Result) error
	SaveRecommendations(ctx context.Context, fileID core.FileID, recs *charts.RecommendationSet) error
	LoadResult(ctx context.Context, fileID core.FileID) (*analysis.Result, error)
}
