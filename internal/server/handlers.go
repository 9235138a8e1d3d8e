package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"

	"github.com/tuzuminami/Collatz/internal/collatz"
)

// indexData is the template payload for the form page.
type indexData struct {
	Number    string
	MaxSteps  int
	Error     string
	Steps     []collatz.Step
	Truncated bool
}

// apiStep is one sequence entry in an API response.
type apiStep struct {
	Step      int      `json:"step"`
	Value     *big.Int `json:"value"`
	Operation string   `json:"operation"`
}

// apiResponse is the success payload for POST /api/collatz.
type apiResponse struct {
	Steps     []apiStep `json:"steps"`
	Truncated bool      `json:"truncated"`
	MaxSteps  int       `json:"max_steps"`
}

// apiError is the error payload for API endpoints.
type apiError struct {
	Error string `json:"error"`
}

// handleIndex serves the blank form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, http.StatusOK, indexData{MaxSteps: s.maxSteps})
}

// handleForm computes a sequence from the submitted form value and renders
// the page with the result or a validation error. Unlike the API, the
// page flow answers invalid input with 200 and an inline error so the
// form stays usable.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	raw := r.PostFormValue("number")
	data := indexData{Number: raw, MaxSteps: s.maxSteps}

	start, err := collatz.ParseStart(raw)
	if err != nil {
		data.Error = localizeError(printerFor(r), err)
		s.renderIndex(w, http.StatusOK, data)
		return
	}

	result, err := collatz.Generate(start, s.maxSteps)
	if err != nil {
		data.Error = localizeError(printerFor(r), err)
		s.renderIndex(w, http.StatusOK, data)
		return
	}

	data.Steps = result.Steps
	data.Truncated = result.Truncated
	s.renderIndex(w, http.StatusOK, data)
}

// renderIndex renders the form page with the given status. Output is
// buffered so a template error can still produce a clean 500.
func (s *Server) renderIndex(w http.ResponseWriter, status int, data indexData) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.log.Error("template render failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// handleAPI computes a sequence from a JSON request body.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	p := printerFor(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var req struct {
		Number json.RawMessage `json:"number"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: p.Sprintf(msgBadJSON)})
		return
	}

	start, err := collatz.ParseStart(numberToken(req.Number))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: localizeError(p, err)})
		return
	}

	result, err := collatz.Generate(start, s.maxSteps)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: localizeError(p, err)})
		return
	}

	resp := apiResponse{
		Steps:     make([]apiStep, len(result.Steps)),
		Truncated: result.Truncated,
		MaxSteps:  s.maxSteps,
	}
	for i, step := range result.Steps {
		resp.Steps[i] = apiStep{Step: step.Index, Value: step.Value, Operation: step.Operation}
	}
	writeJSON(w, http.StatusOK, resp)
}

// numberToken extracts the literal text of the number field. String values
// are unquoted; numeric tokens are used verbatim, which keeps values beyond
// float64 range exact.
func numberToken(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"max_steps": s.maxSteps,
	})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
