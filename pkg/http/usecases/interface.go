package usecases

import (
	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/engine/routing"
)

type RoutingEngine interface {
	PlanRoute(graph *datastructure.Graph, startId, goalId string) (*datastructure.RouteResult, *routing.PlanningError)
}
