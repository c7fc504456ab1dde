package model

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"mbo_model/pkg/core/assumptions"
)

// ScenarioSet holds one run per configured revenue scenario, keyed by name.
type ScenarioSet struct {
	Deal    string                            `json:"deal"`
	Results map[assumptions.Scenario]*Results `json:"results"`
}

// RunScenarios executes every scenario the deal configures, concurrently.
// The runs are independent; the first failure cancels the rest.
func RunScenarios(ctx context.Context, deal *assumptions.Deal) (*ScenarioSet, error) {
	set := &ScenarioSet{
		Deal:    deal.Name,
		Results: make(map[assumptions.Scenario]*Results, len(deal.Revenue)),
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]*Results, len(deal.Revenue))
	scenarios := deal.ConfiguredScenarios()
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			res, err := RunScenario(ctx, deal, sc)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, sc := range scenarios {
		set.Results[sc] = results[i]
	}
	return set, nil
}

// Names returns the scenario names of a set in stable order.
func (s *ScenarioSet) Names() []assumptions.Scenario {
	names := make([]assumptions.Scenario, 0, len(s.Results))
	for sc := range s.Results {
		names = append(names, sc)
	}
	sort.Slice(names, func(i, j int) bool { return scenarioRank(names[i]) < scenarioRank(names[j]) })
	return names
}

func scenarioRank(s assumptions.Scenario) int {
	switch s {
	case assumptions.ScenarioBase:
		return 0
	case assumptions.ScenarioBest:
		return 1
	case assumptions.ScenarioWorst:
		return 2
	}
	return 3
}
