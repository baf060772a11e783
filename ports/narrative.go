package ports

import (
	"context"

	"tabscope/domain/analysis"
)

// NarrativePort turns an analysis result into human-readable prose. LLM or
// template backed; the engine only defines the boundary.
type NarrativePort interface {
	Narrate(ctx context.Context, result *analysis.Result) (string, error)
}
