package web

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"vlanpath/internal/fabric"
	"vlanpath/internal/model"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

// maxBodyBytes bounds POST /api/validate bodies.
const maxBodyBytes = 8 << 20

// Server serves one loaded analysis plus an endpoint for ad-hoc validation.
type Server struct {
	result      *model.AnalysisResult
	fallbackPod string
	log         *slog.Logger
}

// NewServer creates a Server. result may be nil when no inputs were given on
// the command line; GET /api/analysis and /api/csv then return 404.
func NewServer(result *model.AnalysisResult, fallbackPod string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{result: result, fallbackPod: fallbackPod, log: log}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("GET /api/analysis", s.handleAnalysis)
	mux.HandleFunc("GET /api/csv", s.handleCSV)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("GET /api/help", handleHelp)
	mux.HandleFunc("GET /api/version", handleVersion)

	return mux
}

// ListenAndServe starts the web server on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("starting web server", "url", "http://"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.result == nil {
		writeError(w, http.StatusNotFound, "no analysis loaded; POST inputs to /api/validate")
		return
	}
	writeJSON(w, http.StatusOK, s.result)
}

func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	if s.result == nil {
		writeError(w, http.StatusNotFound, "no analysis loaded")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="not_allowed.csv"`)
	w.Write([]byte(s.result.CSV + "\n"))
}

type validateRequest struct {
	Endpoint    string `json:"endpoint"`
	Attachments string `json:"attachments"`
	EPG         string `json:"epg"`
	FallbackPod string `json:"fallback_pod"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	pod := req.FallbackPod
	if pod == "" {
		pod = s.fallbackPod
	}

	res, err := fabric.NewAnalyzer(req.EPG, pod).Analyze(req.Endpoint, req.Attachments)
	if errors.Is(err, fabric.ErrNoEndpointData) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		s.log.Error("validate failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Debug("validated", "vlan", res.Endpoint.VLAN, "paths", len(res.Results), "not_allowed", len(res.NotAllowed()))
	writeJSON(w, http.StatusOK, res)
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(helpMD))
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": model.Version})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
