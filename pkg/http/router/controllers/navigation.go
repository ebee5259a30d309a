package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/wayfinder/pkg"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/lintang-b-s/wayfinder/pkg/project"
	helper "github.com/lintang-b-s/wayfinder/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type navigationAPI struct {
	navigationService NavigationService
	log               *zap.Logger
}

func New(navigationService NavigationService, log *zap.Logger) *navigationAPI {
	return &navigationAPI{
		navigationService: navigationService,
		log:               log,
	}
}

func (api *navigationAPI) Routes(group *helper.RouteGroup) {
	group.POST("/projects/:projectId/points", api.loadPoints)
	group.POST("/projects/:projectId/autoConnect", api.autoConnect)
	group.POST("/projects/:projectId/export", api.exportProject)
	group.POST("/projects/:projectId/import", api.importProject)
	group.GET("/projects/:projectId/route", api.planRoute)
	group.GET("/projects/:projectId/nearestNode", api.nearestNode)
	group.POST("/navigation/start", api.startNavigation)
	group.POST("/navigation/stop", api.stopNavigation)
	group.GET("/navigation/session", api.sessionSnapshot)
}

func (api *navigationAPI) validateStruct(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

func (api *navigationAPI) loadPoints(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	projectId := p.ByName("projectId")

	var request loadPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateStruct(w, r, request) {
		return
	}

	points := make([]project.PointRecord, len(request.Points))
	for i, dto := range request.Points {
		points[i] = project.NewPointRecord(dto.Label, dto.Lat, dto.Lng, dto.ImageX, dto.ImageY, projectId)
	}

	numNodes := api.navigationService.LoadProjectPoints(projectId, points)

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": loadPointsResponse{
		ProjectId: projectId, Nodes: numNodes}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigationAPI) autoConnect(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	projectId := p.ByName("projectId")

	var request autoConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateStruct(w, r, request) {
		return
	}

	threshold := request.ThresholdMeters
	if threshold == 0 {
		threshold = pkg.AUTO_CONNECT_THRESHOLD_METERS
	}

	numEdges, err := api.navigationService.AutoConnectProject(projectId, threshold)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": autoConnectResponse{
		ProjectId: projectId, Edges: numEdges}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigationAPI) planRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	projectId := p.ByName("projectId")

	query := r.URL.Query()
	startId := query.Get("start_id")
	if startId == "" {
		api.BadRequestResponse(w, r, errors.New("start_id is required"))
		return
	}
	goalId := query.Get("goal_id")
	if goalId == "" {
		api.BadRequestResponse(w, r, errors.New("goal_id is required"))
		return
	}

	route, polyline, err := api.navigationService.PlanRoute(projectId, startId, goalId)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(route, polyline)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigationAPI) nearestNode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	projectId := p.ByName("projectId")

	query := r.URL.Query()
	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}

	node, err := api.navigationService.NearestNode(projectId, lat, lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNodeResponse(node)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigationAPI) startNavigation(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request startNavigationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateStruct(w, r, request) {
		return
	}

	var position *geo.Coordinate
	if request.Lat != nil && request.Lon != nil {
		coord := geo.NewCoordinate(*request.Lat, *request.Lon)
		position = &coord
	}

	snap, err := api.navigationService.StartNavigation(request.ProjectId, position, request.GoalNodeId)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSessionResponse(snap)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigationAPI) stopNavigation(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	snap := api.navigationService.StopNavigation()

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSessionResponse(snap)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigationAPI) sessionSnapshot(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	snap := api.navigationService.SessionSnapshot()

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSessionResponse(snap)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigationAPI) exportProject(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	projectId := p.ByName("projectId")

	var request snapshotFileRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateStruct(w, r, request) {
		return
	}

	if err := api.navigationService.ExportProject(projectId, request.Filename); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": "ok"}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigationAPI) importProject(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	projectId := p.ByName("projectId")

	var request snapshotFileRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateStruct(w, r, request) {
		return
	}

	numNodes, numEdges, err := api.navigationService.ImportProject(projectId, request.Filename)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": importProjectResponse{
		ProjectId: projectId, Nodes: numNodes, Edges: numEdges}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
