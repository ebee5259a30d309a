package datastructure

import (
	"time"

	"github.com/lintang-b-s/wayfinder/pkg"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
)

// Instruction. one human-readable turn-by-turn step.
type Instruction struct {
	nodeId            string
	text              string
	direction         pkg.TurnDirection
	point             geo.Coordinate
	distanceFromStart float64
}

func NewInstruction(nodeId, text string, direction pkg.TurnDirection,
	point geo.Coordinate, distanceFromStart float64) Instruction {
	return Instruction{
		nodeId:            nodeId,
		text:              text,
		direction:         direction,
		point:             point,
		distanceFromStart: distanceFromStart,
	}
}

func (ins Instruction) GetNodeId() string {
	return ins.nodeId
}

func (ins Instruction) GetText() string {
	return ins.text
}

func (ins Instruction) GetDirection() pkg.TurnDirection {
	return ins.direction
}

func (ins Instruction) GetPoint() geo.Coordinate {
	return ins.point
}

func (ins Instruction) GetDistanceFromStart() float64 {
	return ins.distanceFromStart
}

// RouteResult. immutable output of one planning call.
type RouteResult struct {
	nodeIds       []string
	totalDistance float64 // meter
	eta           float64 // minute
	instructions  []Instruction
}

func NewRouteResult(nodeIds []string, totalDistance, eta float64,
	instructions []Instruction) *RouteResult {
	return &RouteResult{
		nodeIds:       nodeIds,
		totalDistance: totalDistance,
		eta:           eta,
		instructions:  instructions,
	}
}

func (rr *RouteResult) GetNodeIds() []string {
	return rr.nodeIds
}

func (rr *RouteResult) GetTotalDistance() float64 {
	return rr.totalDistance
}

// GetEta. estimated walking time in minute.
func (rr *RouteResult) GetEta() float64 {
	return rr.eta
}

func (rr *RouteResult) GetInstructions() []Instruction {
	return rr.instructions
}

func (rr *RouteResult) NumberOfInstructions() int {
	return len(rr.instructions)
}

// WithInstructions. copy of the result with the synthesized instructions
// attached; results stay immutable snapshots.
func (rr *RouteResult) WithInstructions(instructions []Instruction) *RouteResult {
	return NewRouteResult(rr.nodeIds, rr.totalDistance, rr.eta, instructions)
}

// PositionSample. one sample of the live position feed. samples may arrive
// duplicated, out of order by timestamp, or with poor accuracy; the tracker
// must tolerate all of them.
type PositionSample struct {
	Position  geo.Coordinate `json:"position"`
	Accuracy  float64        `json:"accuracy"`
	Speed     float64        `json:"speed"`
	Heading   float64        `json:"heading"`
	Timestamp time.Time      `json:"timestamp"`
}

func NewPositionSample(position geo.Coordinate, accuracy, speed, heading float64,
	timestamp time.Time) PositionSample {
	return PositionSample{
		Position:  position,
		Accuracy:  accuracy,
		Speed:     speed,
		Heading:   heading,
		Timestamp: timestamp,
	}
}
