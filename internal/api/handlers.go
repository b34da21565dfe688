package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"hubflow/internal/buildinfo"
	"hubflow/internal/dataset"
	"hubflow/internal/engine"
	"hubflow/internal/grid"
	"hubflow/internal/metrics"
	"hubflow/internal/model"
	"hubflow/internal/predict"
	"hubflow/internal/store"
)

// OptimizeHandler handles POST /v1/optimize
func (s *Server) OptimizeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if req.TenantID == "" {
		_, req.TenantID = s.withTenant(r)
	}
	defaults, err := s.Store.GetEngineDefaults(r.Context(), req.TenantID)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Load defaults failed", err.Error(), r.URL.Path)
		return
	}
	applyDefaults(&req, s.Cfg, defaults)
	if err := validateOptimizeRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid optimize request", err.Error(), r.URL.Path)
		return
	}

	resp, err := s.runSolve(req)
	if err != nil {
		var cfgErr *model.ConfigurationError
		if errors.As(err, &cfgErr) {
			writeProblem(w, http.StatusBadRequest, "Invalid optimize request", cfgErr.Error(), r.URL.Path)
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Solve failed", err.Error(), r.URL.Path)
		return
	}

	run := model.SolveRun{
		ID:        resp.SolveID,
		TenantID:  req.TenantID,
		Algorithm: req.Algorithm,
		Status:    resp.Status,
		Seed:      req.Seed,
		CreatedAt: time.Now().UTC(),
		Request:   req,
		Result:    resp,
	}
	if err := s.Store.SaveSolveRun(r.Context(), run); err != nil {
		writeProblem(w, http.StatusInternalServerError, "Save solve failed", err.Error(), r.URL.Path)
		return
	}

	evt := SSEEvent{Type: "solve.completed", Data: map[string]any{
		"solveId":   resp.SolveID,
		"tenantId":  req.TenantID,
		"algorithm": req.Algorithm,
		"status":    resp.Status,
		"nAssigned": resp.NAssigned,
	}}
	s.Broker.Publish("solves", evt)
	s.Broker.Publish(resp.SolveID, evt)

	writeJSON(w, http.StatusOK, resp)
}

// runSolve generates the dataset, runs the requested algorithm, and folds
// the outcome into the uniform response shape with routes and a roll-up.
func (s *Server) runSolve(req model.OptimizeRequest) (model.OptimizeResponse, error) {
	started := time.Now()
	d, err := dataset.Generate(dataset.Params{
		NumTrucks:      req.NumTrucks,
		NumHubs:        req.NumHubs,
		NumZones:       req.NumZones,
		NumSlots:       req.NumSlots,
		Seed:           req.Seed,
		PeakMultiplier: req.PeakMultiplier,
	})
	if err != nil {
		return model.OptimizeResponse{}, err
	}
	budget := model.Budget{Total: req.Budget, HubCost: req.HubCost, GreenZoneCost: req.GreenZoneCost}

	var outcome engine.Outcome
	resp := model.OptimizeResponse{SolveID: uuid.New().String()}
	switch req.Algorithm {
	case "baseline":
		out, err := engine.Baseline(d, *req.Weights, budget, req.Seed)
		if err != nil {
			return model.OptimizeResponse{}, err
		}
		obj := out.Objective
		resp.Status = out.Label()
		resp.ObjectiveValue = &obj
		resp.Unassigned = out.Unassigned
		outcome = out
	default:
		sc, err := engine.Build(d, *req.Weights, budget)
		if err != nil {
			return model.OptimizeResponse{}, err
		}
		sol := engine.Solve(sc, engine.Options{TimeLimit: time.Duration(req.TimeLimitSec) * time.Second})
		metrics.SolveNodes.Observe(float64(sol.Nodes))
		out := engine.Extract(sc, sol)
		resp.Status = out.Label()
		if out.Status.Solved() {
			obj := out.Objective
			resp.ObjectiveValue = &obj
		}
		outcome = out
	}

	sum := outcome.Summary()
	resp.Assignments = sum.Assignments
	resp.ActiveHubs = sum.ActiveHubs
	resp.GreenZones = sum.GreenZones
	if len(sum.Assignments) > 0 || resp.ObjectiveValue != nil {
		bd := sum.Breakdown
		resp.CostBreakdown = &bd
	}
	resp.Utilization = sum.Utilization
	resp.SlotCounts = sum.SlotCounts
	resp.NAssigned = sum.NAssigned

	routes, err := s.buildRoutes(d, sum.Assignments, req)
	if err != nil {
		return model.OptimizeResponse{}, err
	}
	resp.Routes = routes
	resp.Summary = rollup(d, sum, time.Since(started))

	metrics.SolvesTotal.WithLabelValues(req.Algorithm, resp.Status).Inc()
	metrics.SolveDuration.WithLabelValues(req.Algorithm).Observe(time.Since(started).Seconds())
	return resp, nil
}

// buildRoutes places the scenario on the configured grid and BFS-routes
// every assigned truck from its origin cell to its hub cell.
func (s *Server) buildRoutes(d *model.Dataset, assignments []model.Assignment, req model.OptimizeRequest) ([][][2]int, error) {
	if len(assignments) == 0 {
		return [][][2]int{}, nil
	}
	n, err := grid.Build(s.Cfg.Grid.Rows, s.Cfg.Grid.Cols, req.NumZones, req.NumHubs, req.Seed)
	if err != nil {
		return nil, err
	}
	originZones := make([]int, len(d.Trucks))
	for i, t := range d.Trucks {
		originZones[i] = t.OriginZone
	}
	origins, err := n.TruckOrigins(originZones, req.Seed)
	if err != nil {
		return nil, err
	}
	cellRoutes := n.Routes(assignments, origins, nil)
	out := make([][][2]int, len(cellRoutes))
	for i, path := range cellRoutes {
		out[i] = make([][2]int, len(path))
		for j, c := range path {
			out[i][j] = [2]int{c.Row, c.Col}
		}
	}
	return out, nil
}

func rollup(d *model.Dataset, sum engine.Summary, elapsed time.Duration) *model.SolveSummary {
	pcts := make([]float64, 0, len(sum.Utilization))
	for _, u := range sum.Utilization {
		pcts = append(pcts, u.UtilizationPct)
	}
	var mean float64
	if len(pcts) > 0 {
		mean = stat.Mean(pcts, nil)
	}
	peak := 0
	for _, c := range sum.SlotCounts {
		if c > peak {
			peak = c
		}
	}
	total := 0.0
	for _, a := range sum.Assignments {
		total += d.Distances.At(d.Trucks[a.TruckID].OriginZone, d.Hubs[a.HubID].ZoneID)
	}
	return &model.SolveSummary{
		MeanUtilizationPct: mean,
		PeakSlotCount:      peak,
		TotalDistance:      total,
		SolveMillis:        elapsed.Milliseconds(),
	}
}

// SolvesHandler handles GET /v1/solves
func (s *Server) SolvesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	_, tenant := s.withTenant(r)
	algorithm := r.URL.Query().Get("algorithm")
	cursor := r.URL.Query().Get("cursor")
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	items, next, err := s.Store.ListSolveRuns(r.Context(), tenant, algorithm, cursor, limit)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "List solves failed", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "nextCursor": next})
}

// SolveByIDHandler handles GET /v1/solves/{id} and the event streams
// under /v1/solves/events/.
func (s *Server) SolveByIDHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/solves/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) >= 2 && parts[0] == "events" {
		switch parts[1] {
		case "stream":
			s.solveEventsSSE(w, r)
		case "ws":
			s.SolveEventsWSHandler(w, r)
		default:
			writeProblem(w, http.StatusNotFound, "Not Found", "", r.URL.Path)
		}
		return
	}
	if r.Method != http.MethodGet || len(parts) != 1 || parts[0] == "" {
		writeProblem(w, http.StatusNotFound, "Not Found", "", r.URL.Path)
		return
	}
	_, tenant := s.withTenant(r)
	run, err := s.Store.GetSolveRun(r.Context(), tenant, parts[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Solve not found", "", r.URL.Path)
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Get solve failed", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// NetworkHandler handles POST /v1/network: build a grid, place hubs, and
// return the partition so clients can render the map.
func (s *Server) NetworkHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.NetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if req.Rows == 0 {
		req.Rows = s.Cfg.Grid.Rows
	}
	if req.Cols == 0 {
		req.Cols = s.Cfg.Grid.Cols
	}
	if err := validateNetworkRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid network request", err.Error(), r.URL.Path)
		return
	}
	n, err := grid.Build(req.Rows, req.Cols, req.NumZones, req.NumHubs, req.Seed)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid network request", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":     n.Rows,
		"cols":     n.Cols,
		"numZones": n.NumZones,
		"zoneOf":   n.ZoneOf,
		"hubCells": n.HubCells,
	})
}

// EngineDefaultsHandler handles GET/PUT /v1/engine/defaults
func (s *Server) EngineDefaultsHandler(w http.ResponseWriter, r *http.Request) {
	_, tenant := s.withTenant(r)
	switch r.Method {
	case http.MethodGet:
		d, err := s.Store.GetEngineDefaults(r.Context(), tenant)
		if err != nil {
			writeProblem(w, http.StatusInternalServerError, "Load defaults failed", err.Error(), r.URL.Path)
			return
		}
		writeJSON(w, http.StatusOK, d)
	case http.MethodPut:
		var d model.EngineDefaults
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
			return
		}
		if err := s.Store.SaveEngineDefaults(r.Context(), tenant, d); err != nil {
			writeProblem(w, http.StatusInternalServerError, "Save defaults failed", err.Error(), r.URL.Path)
			return
		}
		writeJSON(w, http.StatusOK, d)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// PredictTrainHandler handles POST /v1/predict/train: fit the per-tenant
// shortcut model from a stored solve run.
func (s *Server) PredictTrainHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		SolveID string `json:"solveId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if req.SolveID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid train request", "solveId required", r.URL.Path)
		return
	}
	_, tenant := s.withTenant(r)
	run, err := s.Store.GetSolveRun(r.Context(), tenant, req.SolveID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Solve not found", "", r.URL.Path)
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Get solve failed", err.Error(), r.URL.Path)
		return
	}
	// Rebuild the run's dataset; generation is deterministic per seed.
	d, err := dataset.Generate(dataset.Params{
		NumTrucks:      run.Request.NumTrucks,
		NumHubs:        run.Request.NumHubs,
		NumZones:       run.Request.NumZones,
		NumSlots:       run.Request.NumSlots,
		Seed:           run.Request.Seed,
		PeakMultiplier: run.Request.PeakMultiplier,
	})
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Train failed", err.Error(), r.URL.Path)
		return
	}
	p := predict.Train(d, run.Result.Assignments)
	s.mu.Lock()
	s.predictors[tenant] = p
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"solveId": req.SolveID, "trainedOn": len(run.Result.Assignments)})
}

// PredictHandler handles POST /v1/predict
func (s *Server) PredictHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		OriginZones []int `json:"originZones"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	_, tenant := s.withTenant(r)
	s.mu.Lock()
	p := s.predictors[tenant]
	s.mu.Unlock()
	if p == nil {
		writeProblem(w, http.StatusConflict, "No trained model", "train via /v1/predict/train first", r.URL.Path)
		return
	}
	type prediction struct {
		OriginZone int  `json:"originZone"`
		HubID      int  `json:"hubId"`
		SlotID     int  `json:"slotId"`
		Known      bool `json:"known"`
	}
	out := make([]prediction, len(req.OriginZones))
	for i, z := range req.OriginZones {
		hub, slot, ok := p.Predict(z)
		out[i] = prediction{OriginZone: z, HubID: hub, SlotID: slot, Known: ok}
	}
	writeJSON(w, http.StatusOK, map[string]any{"predictions": out})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Info()})
}

func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	// Readiness is a store round-trip; memory always succeeds.
	if _, err := s.Store.GetEngineDefaults(r.Context(), "t_probe"); err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Not ready", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
