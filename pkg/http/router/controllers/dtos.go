package controllers

import (
	"time"

	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/lintang-b-s/wayfinder/pkg/session"
)

type loadPointsRequest struct {
	Points []pointRecordDTO `json:"points" validate:"required,min=1,dive"`
}

type pointRecordDTO struct {
	Label  string  `json:"label" validate:"required"`
	Lat    float64 `json:"lat" validate:"min=-90,max=90"`
	Lng    float64 `json:"lng" validate:"min=-180,max=180"`
	ImageX float64 `json:"image_x"`
	ImageY float64 `json:"image_y"`
}

type loadPointsResponse struct {
	ProjectId string `json:"project_id"`
	Nodes     int    `json:"nodes"`
}

type autoConnectRequest struct {
	ThresholdMeters float64 `json:"threshold_meters" validate:"omitempty,gt=0"`
}

type autoConnectResponse struct {
	ProjectId string `json:"project_id"`
	Edges     int    `json:"edges"`
}

type instructionDTO struct {
	NodeId            string  `json:"node_id"`
	Text              string  `json:"text"`
	Direction         string  `json:"direction"`
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	DistanceFromStart float64 `json:"distance_from_start"`
}

func newInstructionDTOs(instructions []datastructure.Instruction) []instructionDTO {
	dtos := make([]instructionDTO, len(instructions))
	for i, ins := range instructions {
		dtos[i] = instructionDTO{
			NodeId:            ins.GetNodeId(),
			Text:              ins.GetText(),
			Direction:         ins.GetDirection().String(),
			Lat:               ins.GetPoint().Lat,
			Lon:               ins.GetPoint().Lon,
			DistanceFromStart: ins.GetDistanceFromStart(),
		}
	}
	return dtos
}

type routeResponse struct {
	NodeIds       []string         `json:"node_ids"`
	TotalDistance float64          `json:"total_distance"`
	Eta           float64          `json:"eta"`
	Polyline      string           `json:"polyline"`
	Instructions  []instructionDTO `json:"instructions"`
}

func NewRouteResponse(route *datastructure.RouteResult, polyline string) routeResponse {
	return routeResponse{
		NodeIds:       route.GetNodeIds(),
		TotalDistance: route.GetTotalDistance(),
		Eta:           route.GetEta(),
		Polyline:      polyline,
		Instructions:  newInstructionDTOs(route.GetInstructions()),
	}
}

type nodeResponse struct {
	Id         string  `json:"id"`
	Label      string  `json:"label"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Accessible bool    `json:"accessible"`
}

func NewNodeResponse(node datastructure.Node) nodeResponse {
	return nodeResponse{
		Id:         node.Id,
		Label:      node.Label,
		Lat:        node.Position.Lat,
		Lon:        node.Position.Lon,
		Accessible: node.Accessible,
	}
}

type startNavigationRequest struct {
	ProjectId  string   `json:"project_id" validate:"required"`
	GoalNodeId string   `json:"goal_node_id" validate:"required"`
	Lat        *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon        *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
}

type sessionResponse struct {
	State              string           `json:"state"`
	Reason             string           `json:"reason,omitempty"`
	StepIndex          int              `json:"step_index"`
	CurrentInstruction string           `json:"current_instruction"`
	DistanceToNext     float64          `json:"distance_to_next"`
	OffRouteDistance   float64          `json:"off_route_distance"`
	RemainingDistance  string           `json:"remaining_distance"`
	RemainingTime      string           `json:"remaining_time"`
	Polyline           []geo.Coordinate `json:"polyline"`
	EncodedPolyline    string           `json:"encoded_polyline"`
}

func NewSessionResponse(snap *session.Snapshot) sessionResponse {
	return sessionResponse{
		State:              snap.State.String(),
		Reason:             string(snap.Reason),
		StepIndex:          snap.StepIndex,
		CurrentInstruction: snap.CurrentInstruction,
		DistanceToNext:     snap.DistanceToNext,
		OffRouteDistance:   snap.OffRouteDistance,
		RemainingDistance:  snap.RemainingDistance,
		RemainingTime:      snap.RemainingTime,
		Polyline:           snap.Polyline,
		EncodedPolyline:    snap.EncodedPolyline,
	}
}

type positionSampleRequest struct {
	Lat       float64   `json:"lat" validate:"min=-90,max=90"`
	Lon       float64   `json:"lon" validate:"min=-180,max=180"`
	Accuracy  float64   `json:"accuracy"`
	Speed     float64   `json:"speed"`
	Heading   float64   `json:"heading"`
	Timestamp time.Time `json:"timestamp"`
}

func (r positionSampleRequest) ToSample() datastructure.PositionSample {
	return datastructure.NewPositionSample(
		geo.NewCoordinate(r.Lat, r.Lon), r.Accuracy, r.Speed, r.Heading, r.Timestamp)
}

type snapshotFileRequest struct {
	Filename string `json:"filename" validate:"required"`
}

type importProjectResponse struct {
	ProjectId string `json:"project_id"`
	Nodes     int    `json:"nodes"`
	Edges     int    `json:"edges"`
}
