package jobs

import (
	"context"

	"parts-dispatch/internal/domain"
)

type actionFunc func(context.Context, domain.Job) error

type actionFactory struct {
	byKind map[domain.JobKind]actionFunc
}

func newActionFactory(onMatch, onPlan, onRecompute actionFunc) *actionFactory {
	return &actionFactory{
		byKind: map[domain.JobKind]actionFunc{
			domain.JobMatchOrder:         onMatch,
			domain.JobPlanSingleDelivery: onPlan,
			domain.JobRecomputeETA:       onRecompute,
		},
	}
}

func (f *actionFactory) get(kind domain.JobKind) (actionFunc, bool) {
	fn, ok := f.byKind[kind]
	return fn, ok && fn != nil
}
