package pipeline

import (
	"context"

	"vidgrab/internal/locator"
	"vidgrab/internal/model"
)

// Plan describes what a download would do, without transferring bytes.
type Plan struct {
	Locator    string
	Kind       model.LocatorKind
	Item       model.ResolvedItem
	OutputPath string
}

// Plan resolves and formats loc and computes its output path.
func (s *Service) Plan(ctx context.Context, loc string) (Plan, error) {
	pl := Plan{Locator: loc, Kind: locator.Classify(loc)}
	item, err := s.resolve(ctx, 1, loc)
	if err != nil {
		return pl, err
	}
	dest, err := s.destination(item)
	if err != nil {
		return pl, err
	}
	pl.Item = item
	pl.OutputPath = dest
	return pl, nil
}
