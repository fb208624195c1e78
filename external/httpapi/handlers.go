package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nicksboson/CeriNote/internal/audit"
	"github.com/nicksboson/CeriNote/internal/consent"
	"github.com/nicksboson/CeriNote/internal/pipeline"
	"github.com/nicksboson/CeriNote/internal/reference"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "CeriNote API",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleUpload(c *gin.Context) {
	audio, mimeType, originalName, err := readAudioForm(c)
	if err != nil {
		writeError(c, err)
		return
	}

	sess, err := s.orch.Upload(c.Request.Context(), pipeline.UploadInput{
		SessionID:    c.PostForm("sessionId"),
		Name:         c.PostForm("name"),
		Duration:     c.PostForm("duration"),
		Audio:        audio,
		MimeType:     mimeType,
		OriginalName: originalName,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "recording uploaded",
		"recording": sess.View(),
	})
}

func (s *Server) handleProcess(c *gin.Context) {
	input := pipeline.ProcessInput{
		SessionID: c.PostForm("sessionId"),
		Name:      c.PostForm("name"),
		Duration:  c.PostForm("duration"),
		Text:      c.PostForm("text"),
	}
	// A missing audio part falls through to the text path; an audio part
	// that cannot be read is an error, not a text request.
	audio, mimeType, originalName, err := readAudioForm(c)
	switch {
	case err == nil:
		input.Audio = audio
		input.MimeType = mimeType
		input.OriginalName = originalName
	case !isMissingAudioPart(err):
		writeError(c, err)
		return
	}

	sess, err := s.orch.Process(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "processing complete",
		"recording": sess.View(),
	})
}

func (s *Server) handleList(c *gin.Context) {
	summaries, err := s.orch.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(summaries),
		"recordings": summaries,
	})
}

func (s *Server) handleGet(c *gin.Context) {
	sess, err := s.orch.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.View())
}

func (s *Server) handleRename(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, &pipeline.ValidationError{Reason: "invalid request body"})
		return
	}
	sess, err := s.orch.Rename(c.Request.Context(), c.Param("id"), body.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "recording renamed",
		"recording": sess.View(),
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	sess, err := s.orch.DeleteSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "recording deleted",
		"recording": sess.View(),
	})
}

func (s *Server) handleExport(c *gin.Context) {
	sess, err := s.orch.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session":    sess.View(),
		"exportedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleTranscribe(c *gin.Context) {
	sess, err := s.orch.TranscribeExisting(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":            "transcription complete",
		"transcription":      sess.Transcription,
		"structuredDialogue": sess.StructuredDialogue,
		"segments":           sess.TranscriptionSegments,
		"recording":          sess.View(),
	})
}

type textRequest struct {
	Text        string `json:"text"`
	RecordingID string `json:"recordingId"`
}

func bindTextRequest(c *gin.Context) (textRequest, bool) {
	var body textRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, &pipeline.ValidationError{Reason: "invalid request body"})
		return body, false
	}
	return body, true
}

func (s *Server) handleGenerateReport(c *gin.Context) {
	body, ok := bindTextRequest(c)
	if !ok {
		return
	}
	report, err := s.orch.ReportFromText(c.Request.Context(), body.Text, body.RecordingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"report":      report,
		"recordingId": body.RecordingID,
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerateSOAP(c *gin.Context) {
	body, ok := bindTextRequest(c)
	if !ok {
		return
	}
	note, err := s.orch.SOAPFromText(c.Request.Context(), body.Text, body.RecordingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"soapNote":    note,
		"recordingId": body.RecordingID,
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleSuggestCodes(c *gin.Context) {
	body, ok := bindTextRequest(c)
	if !ok {
		return
	}
	codes, err := s.orch.CodesFromText(c.Request.Context(), body.Text, body.RecordingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"codes":       codes.Codes,
		"disclaimer":  codes.Disclaimer,
		"generatedAt": codes.GeneratedAt,
	})
}

func (s *Server) handleEstimateScales(c *gin.Context) {
	body, ok := bindTextRequest(c)
	if !ok {
		return
	}
	scales, err := s.orch.ScalesFromText(c.Request.Context(), body.Text, body.RecordingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"scales":  scales,
	})
}

func (s *Server) handleLogConsent(c *gin.Context) {
	var body struct {
		SessionID  string `json:"sessionId"`
		DoctorID   string `json:"doctorId"`
		PatientRef string `json:"patientRef"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, &pipeline.ValidationError{Reason: "invalid request body"})
		return
	}
	if body.SessionID == "" {
		writeError(c, &pipeline.ValidationError{Reason: "sessionId is required"})
		return
	}

	record := s.consents.LogConsent(consent.LogConsentInput{
		SessionID:  body.SessionID,
		DoctorID:   body.DoctorID,
		PatientRef: body.PatientRef,
		IPAddress:  c.ClientIP(),
	})
	s.auditLog.Append(audit.ActionConsentGiven, body.SessionID, map[string]string{"doctorId": body.DoctorID})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"consent": record,
	})
}

func (s *Server) handleGetConsent(c *gin.Context) {
	record, ok := s.consents.Get(c.Param("sessionId"))
	if !ok {
		writeError(c, &pipeline.NotFoundError{Kind: "consent record", ID: c.Param("sessionId")})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"consent": record,
	})
}

func (s *Server) handleExportConsent(c *gin.Context) {
	export, ok := s.consents.Export(c.Param("sessionId"))
	if !ok {
		writeError(c, &pipeline.NotFoundError{Kind: "consent record", ID: c.Param("sessionId")})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"export":  export,
	})
}

func (s *Server) handleSessionAudit(c *gin.Context) {
	entries := s.auditLog.BySession(c.Param("sessionId"))
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"auditLog": entries,
		"count":    len(entries),
	})
}

func (s *Server) handleFullAudit(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"auditLog": s.auditLog.All(),
		"summary":  s.auditLog.Summary(),
	})
}

func (s *Server) handleStorageStats(c *gin.Context) {
	stats, err := s.retention.Stats(c.Request.Context(), s.cfg.UploadsDir)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

func (s *Server) handleRiskCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": s.scanner.Categories(),
	})
}

func (s *Server) handleMedications(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"reference": reference.MedicationsByCategory(category),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"reference":  reference.AllMedications(),
		"disclaimer": reference.MedicationsDisclaimer,
	})
}

func (s *Server) handlePrivacyPolicy(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"policy":  reference.CurrentPrivacyPolicy(),
	})
}

// readAudioForm pulls the uploaded audio out of the multipart form. An
// absent audio part (or a non-multipart request) is a validation error;
// a part that is present but unreadable is a storage error.
func readAudioForm(c *gin.Context) (data []byte, mimeType, originalName string, err error) {
	header, err := c.FormFile("audio")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", "", &pipeline.ValidationError{Reason: "no audio file provided"}
		}
		return nil, "", "", &pipeline.StorageError{Op: "parse_upload", Err: err}
	}
	file, err := header.Open()
	if err != nil {
		return nil, "", "", &pipeline.StorageError{Op: "open_upload", Err: err}
	}
	defer func() { _ = file.Close() }()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", "", &pipeline.StorageError{Op: "read_upload", Err: err}
	}
	return data, header.Header.Get("Content-Type"), header.Filename, nil
}

func isMissingAudioPart(err error) bool {
	var valErr *pipeline.ValidationError
	return errors.As(err, &valErr)
}

// writeError maps the pipeline error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var (
		valErr  *pipeline.ValidationError
		nfErr   *pipeline.NotFoundError
		provErr *pipeline.ProviderError
	)
	switch {
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": valErr.Reason})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
	case errors.As(err, &provErr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   provErr.Stage + " failed",
			"details": provErr.Err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
