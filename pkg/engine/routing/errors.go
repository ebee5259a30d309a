package routing

import "fmt"

// PlanningErrorCode. stable, machine-matchable failure codes, the
// presentation collaborator branches on these.
type PlanningErrorCode string

const (
	UNKNOWN_NODE  PlanningErrorCode = "UNKNOWN_NODE"
	UNREACHABLE   PlanningErrorCode = "UNREACHABLE"
	NO_PATH_FOUND PlanningErrorCode = "NO_PATH_FOUND"
)

// PlanningError. typed planning failure, always a returned value, never a panic.
type PlanningError struct {
	code   PlanningErrorCode
	nodeId string
	msg    string
}

func (e *PlanningError) Error() string {
	return e.msg
}

func (e *PlanningError) GetCode() PlanningErrorCode {
	return e.code
}

// GetNodeId. the offending node id for UNKNOWN_NODE and UNREACHABLE, empty otherwise.
func (e *PlanningError) GetNodeId() string {
	return e.nodeId
}

func NewUnknownNodeError(nodeId string) *PlanningError {
	return &PlanningError{
		code:   UNKNOWN_NODE,
		nodeId: nodeId,
		msg:    fmt.Sprintf("node %s is not in the graph", nodeId),
	}
}

func NewUnreachableError(nodeId, reason string) *PlanningError {
	return &PlanningError{
		code:   UNREACHABLE,
		nodeId: nodeId,
		msg:    fmt.Sprintf("node %s is %s", nodeId, reason),
	}
}

func NewNoPathFoundError(startId, goalId string) *PlanningError {
	return &PlanningError{
		code: NO_PATH_FOUND,
		msg:  fmt.Sprintf("no path found from %s to %s", startId, goalId),
	}
}
