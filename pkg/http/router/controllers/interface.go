package controllers

import (
	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/lintang-b-s/wayfinder/pkg/project"
	"github.com/lintang-b-s/wayfinder/pkg/session"
)

type NavigationService interface {
	LoadProjectPoints(projectId string, points []project.PointRecord) int
	AutoConnectProject(projectId string, thresholdMeters float64) (int, error)
	PlanRoute(projectId, startId, goalId string) (*datastructure.RouteResult, string, error)
	NearestNode(projectId string, lat, lon float64) (datastructure.Node, error)
	StartNavigation(projectId string, position *geo.Coordinate, goalNodeId string) (*session.Snapshot, error)
	StopNavigation() *session.Snapshot
	PositionUpdate(sample datastructure.PositionSample)
	SessionSnapshot() *session.Snapshot
	SubscribeSession(buffer int) chan session.Event
	ExportProject(projectId, filename string) error
	ImportProject(projectId, filename string) (int, int, error)
}
