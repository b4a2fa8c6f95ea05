package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/internship-matcher/internal/db"
	"github.com/jonathan/internship-matcher/internal/ingestion"
	"github.com/jonathan/internship-matcher/internal/pipeline"
	"github.com/jonathan/internship-matcher/internal/server/middleware"
	"github.com/jonathan/internship-matcher/internal/skills"
	"github.com/jonathan/internship-matcher/internal/types"
)

// maxUploadBytes caps résumé uploads.
const maxUploadBytes = 10 << 20

// Matcher runs one matching pipeline invocation. Tests substitute a fake.
type Matcher interface {
	Run(ctx context.Context, resume *types.ResumeDocument, userID int64) (*pipeline.Result, error)
}

// MatchStore is the database surface the match handlers need.
type MatchStore interface {
	SaveResume(ctx context.Context, userID int64, parsedText string, skills []string) (uuid.UUID, error)
	GetResumesForUser(ctx context.Context, userID int64) ([]db.Resume, error)
	GetMatchesForUser(ctx context.Context, userID int64) ([]types.MatchResult, error)
}

// MatchResponse is the response body for POST /matches/run.
type MatchResponse struct {
	ResumeID           string              `json:"resume_id,omitempty"`
	Skills             []string            `json:"skills"`
	Matches            []types.RankedMatch `json:"matches"`
	ClassifierUsed     bool                `json:"classifier_used"`
	ClustererPersisted bool                `json:"clusterer_persisted"`
	PersistFailed      int                 `json:"persist_failed,omitempty"`
}

// handleRunMatch accepts a multipart résumé upload for the authenticated
// user, runs the matching pipeline and returns the ranked table.
func (s *Server) handleRunMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read resume upload")
		return
	}

	text, err := ingestion.Extract(header.Filename, data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "failed to extract resume text: "+err.Error())
		return
	}

	resume := types.NewResumeDocument(text, skills.Extract(text))

	resp := MatchResponse{Skills: resume.Skills}
	if resumeID, err := s.matchStore.SaveResume(r.Context(), userID, resume.Text, resume.Skills); err != nil {
		// Storing the parsed résumé is bookkeeping; a failure must not block
		// the matching run.
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("failed to store parsed resume")
	} else {
		resp.ResumeID = resumeID.String()
	}

	result, err := s.matcher.Run(r.Context(), resume, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp.Matches = result.Matches
	resp.ClassifierUsed = result.ClassifierUsed
	resp.ClustererPersisted = result.ClustererPersisted
	resp.PersistFailed = len(result.PersistFailures)
	writeJSON(w, http.StatusOK, resp)
}

// handleMatches returns the stored match rows of the authenticated user,
// ordered by score descending.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	matches, err := s.matchStore.GetMatchesForUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load matches")
		return
	}
	if matches == nil {
		matches = []types.MatchResult{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// handleResumes returns the stored parsed résumés of the authenticated
// user, newest first.
func (s *Server) handleResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	resumes, err := s.matchStore.GetResumesForUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load resumes")
		return
	}
	if resumes == nil {
		resumes = []db.Resume{}
	}
	writeJSON(w, http.StatusOK, resumes)
}

// handleHealth is the liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
