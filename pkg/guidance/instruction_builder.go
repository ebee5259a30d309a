package guidance

import (
	"fmt"

	"github.com/lintang-b-s/wayfinder/pkg"
	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
)

type Graph interface {
	GetNode(id string) (datastructure.Node, bool)
	GetNodeCoordinate(id string) geo.Coordinate
	EdgeCost(from, to string) (float64, bool)
}

// InstructionBuilder. converts a raw node-id path into human-readable
// turn-by-turn instructions with cumulative distance and discrete turn direction.
type InstructionBuilder struct {
	graph              Graph
	instructions       []datastructure.Instruction
	cumulativeDistance float64
}

func NewInstructionBuilder(graph Graph) *InstructionBuilder {
	return &InstructionBuilder{
		graph:        graph,
		instructions: make([]datastructure.Instruction, 0),
	}
}

/*
Synthesize. one instruction per path node, in order:

  - index 0: START, "Start at {label}"
  - last index (len > 1): ARRIVE, "Arrive at {label}"
  - interior: classify the signed turn angle of (prev, curr, next)

a single-node path (start == goal) emits exactly one ARRIVE instruction: the
agent already stands at the goal, so arrival text fits better than a start
prompt.
*/
func (ib *InstructionBuilder) Synthesize(path []string) []datastructure.Instruction {
	if len(path) == 0 {
		return []datastructure.Instruction{}
	}

	if len(path) == 1 {
		node, _ := ib.graph.GetNode(path[0])
		ib.append(node, pkg.ARRIVE, fmt.Sprintf("Arrive at %s", node.Label))
		return ib.instructions
	}

	for i, nodeId := range path {
		node, _ := ib.graph.GetNode(nodeId)
		if i > 0 {
			edgeCost, _ := ib.graph.EdgeCost(path[i-1], nodeId)
			ib.cumulativeDistance += edgeCost
		}

		switch {
		case i == 0:
			ib.append(node, pkg.START, fmt.Sprintf("Start at %s", node.Label))
		case i == len(path)-1:
			ib.append(node, pkg.ARRIVE, fmt.Sprintf("Arrive at %s", node.Label))
		default:
			prev := ib.graph.GetNodeCoordinate(path[i-1])
			next := ib.graph.GetNodeCoordinate(path[i+1])
			direction := geo.ClassifyTurn(geo.TurnAngle(prev, node.Position, next))
			ib.append(node, direction, turnText(direction, node.Label))
		}
	}

	return ib.instructions
}

func (ib *InstructionBuilder) append(node datastructure.Node,
	direction pkg.TurnDirection, text string) {
	ib.instructions = append(ib.instructions, datastructure.NewInstruction(
		node.Id, text, direction, node.Position, ib.cumulativeDistance))
}

// turnText. fixed templates keyed by direction, the presentation layer relies
// on these for icon/text selection.
func turnText(direction pkg.TurnDirection, label string) string {
	switch direction {
	case pkg.CONTINUE_STRAIGHT:
		return fmt.Sprintf("Continue straight to %s", label)
	case pkg.TURN_SLIGHT_LEFT:
		return fmt.Sprintf("Turn slight left at %s", label)
	case pkg.TURN_LEFT:
		return fmt.Sprintf("Turn left at %s", label)
	case pkg.TURN_SHARP_LEFT:
		return fmt.Sprintf("Turn sharp left at %s", label)
	case pkg.TURN_SLIGHT_RIGHT:
		return fmt.Sprintf("Turn slight right at %s", label)
	case pkg.TURN_RIGHT:
		return fmt.Sprintf("Turn right at %s", label)
	case pkg.TURN_SHARP_RIGHT:
		return fmt.Sprintf("Turn sharp right at %s", label)
	case pkg.U_TURN:
		return fmt.Sprintf("Make U-turn at %s", label)
	default:
		return fmt.Sprintf("Continue to %s", label)
	}
}
