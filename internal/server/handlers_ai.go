package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/ingestion"
	"github.com/jonathan/career-coach/internal/types"
)

const (
	resumeField = "resume"
	// multipartOverhead allows for boundaries and part headers around the file.
	multipartOverhead = 64 << 10
)

// Upload messages
const (
	msgFileTooLarge    = "File too large"
	msgUnsupportedType = "Unsupported file type"
	msgUploadError     = "Upload error"
	msgNoFile          = "No file provided"
	msgUnreadable      = "Could not read resume text. Please upload a clearer PDF/DOCX."
)

// coachFailure writes a coaching error as {"message": ...}.
func (s *Server) coachFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, message := coach.StatusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("coach request failed", "path", r.URL.Path, "error", err)
	}
	s.errorResponse(w, status, message)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.RecommendationsRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	var snapshot types.ProfileSnapshot
	if req.ProfileOverride != nil {
		snapshot = *req.ProfileOverride
	} else {
		profile, err := s.store.GetProfile(r.Context(), userID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		snapshot = profile.Snapshot()
	}

	recs, err := s.coach.RecommendCareers(r.Context(), snapshot)
	if err != nil {
		s.coachFailure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]*types.Recommendations{"recommendations": recs})
}

func (s *Server) handleSkillGap(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	var req types.SkillGapRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, invalid(err, "Invalid skill gap request"))
		return
	}

	gap, err := s.coach.AnalyzeSkillGap(r.Context(), strings.TrimSpace(req.TargetRole), req.CurrentSkills)
	if err != nil {
		s.coachFailure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]*types.SkillGap{"skillGap": gap})
}

func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	req, ok := s.roadmapRequest(w, r)
	if !ok {
		return
	}

	roadmap, err := s.coach.GenerateRoadmap(r.Context(), req.Role(), req.Level())
	if err != nil {
		s.coachFailure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]*types.Roadmap{"roadmap": roadmap})
}

func (s *Server) handleSkillGapRoadmap(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	req, ok := s.roadmapRequest(w, r)
	if !ok {
		return
	}

	out, err := s.coach.SkillGapWithRoadmap(r.Context(), req.Role(), req.CurrentSkills, req.Level())
	if err != nil {
		s.coachFailure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) roadmapRequest(w http.ResponseWriter, r *http.Request) (*types.RoadmapRequest, bool) {
	var req types.RoadmapRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, invalid(err, "Invalid roadmap request"))
		return nil, false
	}
	return &req, true
}

// handleResumeAnalyze scores an uploaded resume. Upload problems are reported
// before the model check, and the model check before a missing file.
func (s *Server) handleResumeAnalyze(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	upload, err := readResumeUpload(w, r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, uploadMessage(err))
		return
	}
	if err := s.coach.RequireConfigured(types.TaskResumeAnalysis); err != nil {
		s.coachFailure(w, r, err)
		return
	}
	if upload == nil {
		s.errorResponse(w, http.StatusBadRequest, msgNoFile)
		return
	}

	doc, err := ingestion.ExtractResume(upload.filename, upload.contentType, upload.data)
	if err != nil {
		s.log.Info("resume extraction failed", "filename", upload.filename, "error", err)
		s.errorResponse(w, http.StatusBadRequest, uploadMessage(err))
		return
	}

	analysis, err := s.coach.AnalyzeResume(r.Context(), doc.Text)
	if err != nil {
		s.coachFailure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

type resumeUpload struct {
	filename    string
	contentType string
	data        []byte
}

var (
	errFileTooLarge = errors.New("file too large")
	errBadUpload    = errors.New("malformed upload")
)

// readResumeUpload reads the "resume" part. It returns nil, nil when the
// request carries no file.
func readResumeUpload(w http.ResponseWriter, r *http.Request) (*resumeUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxResumeBytes+multipartOverhead)
	if err := r.ParseMultipartForm(ingestion.MaxResumeBytes); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, errFileTooLarge
		case errors.Is(err, http.ErrNotMultipart):
			return nil, nil
		default:
			return nil, errBadUpload
		}
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck // temp files only

	file, header, err := r.FormFile(resumeField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errBadUpload
	}
	defer file.Close() //nolint:errcheck // read-only

	if header.Size > ingestion.MaxResumeBytes {
		return nil, errFileTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxResumeBytes+1))
	if err != nil {
		return nil, errBadUpload
	}
	if len(data) > ingestion.MaxResumeBytes {
		return nil, errFileTooLarge
	}

	upload := &resumeUpload{
		filename:    header.Filename,
		contentType: header.Header.Get("Content-Type"),
		data:        data,
	}
	if _, err := ingestion.DetectKind(upload.filename, upload.contentType, data); err != nil {
		return nil, err
	}
	return upload, nil
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, errFileTooLarge):
		return msgFileTooLarge
	case errors.Is(err, ingestion.ErrUnsupportedType):
		return msgUnsupportedType
	case errors.Is(err, ingestion.ErrUnreadable):
		return msgUnreadable
	default:
		return msgUploadError
	}
}
