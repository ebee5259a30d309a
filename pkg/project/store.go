package project

import (
	"sync"

	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/util"
)

// Store. in-memory keyed record store for per-project node/edge sets. just the
// minimal record shapes the engine needs, persistence is the storage
// collaborator's concern.
type Store struct {
	mu    sync.RWMutex
	nodes map[string][]datastructure.Node
	edges map[string][]datastructure.Edge
}

func NewStore() *Store {
	return &Store{
		nodes: make(map[string][]datastructure.Node),
		edges: make(map[string][]datastructure.Edge),
	}
}

func (s *Store) PutNodes(projectId string, nodes []datastructure.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[projectId] = nodes
}

func (s *Store) PutEdges(projectId string, edges []datastructure.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[projectId] = edges
}

func (s *Store) AppendEdges(projectId string, edges []datastructure.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[projectId] = append(s.edges[projectId], edges...)
}

func (s *Store) GetNodes(projectId string) ([]datastructure.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nodes, ok := s.nodes[projectId]
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "project %s has no nodes", projectId)
	}
	return nodes, nil
}

func (s *Store) GetEdges(projectId string) ([]datastructure.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	edges, ok := s.edges[projectId]
	if !ok {
		return []datastructure.Edge{}, nil
	}
	return edges, nil
}

func (s *Store) DeleteProject(projectId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, projectId)
	delete(s.edges, projectId)
}
