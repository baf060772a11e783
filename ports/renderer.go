package ports

import (
	"context"

	"tabscope/domain/charts"
	"tabscope/domain/dataset"
)

// RenderOptions carries presentation knobs for a rendering collaborator.
type RenderOptions struct {
	Title  string
	Width  int
	Height int
}

// ArtifactRef is an opaque handle to a rendered chart (image or markup).
type ArtifactRef struct {
	URI       string
	MediaType string
}

// ChartRendererPort draws a recommended chart from the table it was scored
// against. The engine never renders; this is the boundary a rendering
// collaborator implements.
type ChartRendererPort interface {
	Render(ctx context.Context, t *dataset.Table, rec charts.Recommendation, opts RenderOptions) (ArtifactRef, error)
}
