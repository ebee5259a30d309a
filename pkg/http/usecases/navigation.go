package usecases

import (
	"sync"

	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/engine/routing"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/lintang-b-s/wayfinder/pkg/project"
	"github.com/lintang-b-s/wayfinder/pkg/session"
	"github.com/lintang-b-s/wayfinder/pkg/spatialindex"
	"github.com/lintang-b-s/wayfinder/pkg/util"
	"go.uber.org/zap"
)

// NavigationService. glue between the http surface and the core: project
// point intake, graph building, planning and the live session.
type NavigationService struct {
	log     *zap.Logger
	engine  RoutingEngine
	store   *project.Store
	tracker *session.Tracker

	mu      sync.RWMutex
	indexes map[string]*spatialindex.Rtree // per-project node index
}

func NewNavigationService(log *zap.Logger, engine RoutingEngine, store *project.Store,
	tracker *session.Tracker) *NavigationService {
	return &NavigationService{
		log:     log,
		engine:  engine,
		store:   store,
		tracker: tracker,
		indexes: make(map[string]*spatialindex.Rtree),
	}
}

// LoadProjectPoints. derive navigable nodes from raw point records
// (calibration corners filtered out) and rebuild the project's spatial index.
// derived nodes get fresh ids, so edges from the previous point set are
// dropped too: a stale edge would reference node ids that no longer exist.
func (ns *NavigationService) LoadProjectPoints(projectId string, points []project.PointRecord) int {
	nodes := project.DeriveNodes(points)
	ns.store.PutNodes(projectId, nodes)
	ns.store.PutEdges(projectId, []datastructure.Edge{})

	index := spatialindex.NewRtree()
	index.Build(nodes, ns.log)

	ns.mu.Lock()
	ns.indexes[projectId] = index
	ns.mu.Unlock()

	ns.log.Info("project points loaded", zap.String("project", projectId),
		zap.Int("points", len(points)), zap.Int("nodes", len(nodes)))
	return len(nodes)
}

// AutoConnectProject. synthesize bidirectional edges between all node pairs
// within thresholdMeters and append them to the project edge set.
func (ns *NavigationService) AutoConnectProject(projectId string, thresholdMeters float64) (int, error) {
	nodes, err := ns.store.GetNodes(projectId)
	if err != nil {
		return 0, err
	}

	edges := datastructure.AutoConnect(nodes, thresholdMeters)
	ns.store.AppendEdges(projectId, edges)

	ns.log.Info("auto-connected project", zap.String("project", projectId),
		zap.Int("edges", len(edges)))
	return len(edges), nil
}

func (ns *NavigationService) buildGraph(projectId string) (*datastructure.Graph, error) {
	nodes, err := ns.store.GetNodes(projectId)
	if err != nil {
		return nil, err
	}
	edges, err := ns.store.GetEdges(projectId)
	if err != nil {
		return nil, err
	}
	return datastructure.BuildGraph(nodes, edges), nil
}

// PlanRoute. one-shot plan between two known node ids, with the encoded
// polyline of the node sequence for rendering.
func (ns *NavigationService) PlanRoute(projectId, startId, goalId string) (*datastructure.RouteResult, string, error) {
	graph, err := ns.buildGraph(projectId)
	if err != nil {
		return nil, "", err
	}

	route, planErr := ns.engine.PlanRoute(graph, startId, goalId)
	if planErr != nil {
		return nil, "", planErrToServiceErr(planErr)
	}

	coords := make([]geo.Coordinate, 0, len(route.GetNodeIds()))
	for _, nodeId := range route.GetNodeIds() {
		coords = append(coords, graph.GetNodeCoordinate(nodeId))
	}

	return route, geo.PolylineFromCoords(coords), nil
}

// NearestNode. snap an arbitrary coordinate onto the closest project node via
// the spatial index.
func (ns *NavigationService) NearestNode(projectId string, lat, lon float64) (datastructure.Node, error) {
	ns.mu.RLock()
	index, ok := ns.indexes[projectId]
	ns.mu.RUnlock()
	if !ok {
		return datastructure.Node{}, util.WrapErrorf(nil, util.ErrNotFound,
			"project %s has no spatial index", projectId)
	}

	node, found := index.NearestNode(lat, lon)
	if !found {
		return datastructure.Node{}, util.WrapErrorf(nil, util.ErrNotFound,
			"project %s has no nodes", projectId)
	}
	return node, nil
}

// StartNavigation. start a live session toward goalNodeId from the current
// position. the returned snapshot is either ACTIVE or FAILED with a reason code.
func (ns *NavigationService) StartNavigation(projectId string, position *geo.Coordinate,
	goalNodeId string) (*session.Snapshot, error) {
	graph, err := ns.buildGraph(projectId)
	if err != nil {
		return nil, err
	}

	ns.tracker.Start(graph, position, goalNodeId)
	return ns.tracker.Snapshot(), nil
}

func (ns *NavigationService) StopNavigation() *session.Snapshot {
	ns.tracker.Stop()
	return ns.tracker.Snapshot()
}

func (ns *NavigationService) PositionUpdate(sample datastructure.PositionSample) {
	ns.tracker.OnPositionUpdate(sample)
}

func (ns *NavigationService) SessionSnapshot() *session.Snapshot {
	return ns.tracker.Snapshot()
}

func (ns *NavigationService) SubscribeSession(buffer int) chan session.Event {
	return ns.tracker.Subscribe(buffer)
}

// ExportProject. write the project's node/edge sets to a compressed snapshot file.
func (ns *NavigationService) ExportProject(projectId, filename string) error {
	nodes, err := ns.store.GetNodes(projectId)
	if err != nil {
		return err
	}
	edges, err := ns.store.GetEdges(projectId)
	if err != nil {
		return err
	}
	return datastructure.WriteSnapshot(filename, nodes, edges)
}

// ImportProject. load node/edge sets from a snapshot file into the store and
// rebuild the spatial index.
func (ns *NavigationService) ImportProject(projectId, filename string) (int, int, error) {
	nodes, edges, err := datastructure.ReadSnapshot(filename)
	if err != nil {
		return 0, 0, err
	}

	ns.store.PutNodes(projectId, nodes)
	ns.store.PutEdges(projectId, edges)

	index := spatialindex.NewRtree()
	index.Build(nodes, ns.log)

	ns.mu.Lock()
	ns.indexes[projectId] = index
	ns.mu.Unlock()

	return len(nodes), len(edges), nil
}

func planErrToServiceErr(planErr *routing.PlanningError) error {
	switch planErr.GetCode() {
	case routing.UNKNOWN_NODE:
		return util.WrapErrorf(planErr, util.ErrNotFound, "%s", planErr.Error())
	default:
		return util.WrapErrorf(planErr, util.ErrBadParamInput, "%s", planErr.Error())
	}
}
