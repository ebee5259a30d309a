package engine

import (
	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/engine/routing"
	"github.com/lintang-b-s/wayfinder/pkg/guidance"
	"go.uber.org/zap"
)

// Engine. composes the route planner and the instruction synthesizer. every
// call builds its own search state, so one engine is safe to share between
// goroutines.
type Engine struct {
	log *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	return &Engine{log: log}
}

func (e *Engine) PlanRoute(graph *datastructure.Graph, startId, goalId string) (*datastructure.RouteResult, *routing.PlanningError) {
	astar := routing.NewAStar(graph)
	result, planErr := astar.FindPath(startId, goalId)
	if planErr != nil {
		e.log.Debug("route planning failed",
			zap.String("start", startId), zap.String("goal", goalId),
			zap.String("code", string(planErr.GetCode())))
		return nil, planErr
	}

	instructions := guidance.NewInstructionBuilder(graph).Synthesize(result.GetNodeIds())

	return result.WithInstructions(instructions), nil
}
