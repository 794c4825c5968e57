package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"ai-receptionist/pkg/response"
)

// CreateSession godoc
// @Summary     Create a conversation session
// @Description Opens an empty dialogue for a call and returns the welcome message.
// @Tags        Conversation
// @Accept      json
// @Produce     json
// @Param       body body createSessionReq true "Session data"
// @Success     200  {object} createSessionResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/conversation/session/create [POST]
func (h *handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateSessionReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.CreateSession(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateSession: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newCreateSessionResp(output))
}

// GetSession godoc
// @Summary     Get a conversation session
// @Description Returns the stored session including its message history.
// @Tags        Conversation
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     503 {object} response.Resp "Session store unavailable"
// @Router      /api/v1/conversation/session/{id} [GET]
func (h *handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, errMissingID, nil)
		return
	}

	session, err := h.uc.GetSession(ctx, id)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSessionResp(session))
}

// EndSession godoc
// @Summary     End a conversation session
// @Description Deletes the session. Ending an unknown session is not an error.
// @Tags        Conversation
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} endSessionResp
// @Router      /api/v1/conversation/session/{id} [DELETE]
func (h *handler) EndSession(c *gin.Context) {
	ctx := c.Request.Context()

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, errMissingID, nil)
		return
	}

	if err := h.uc.EndSession(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.EndSession: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, endSessionResp{Status: "session_ended", SessionID: id})
}

// Process godoc
// @Summary     Process one audio turn
// @Description Transcribes the audio, generates the receptionist reply and synthesizes it.
// @Tags        Conversation
// @Accept      json
// @Produce     json
// @Param       body body processReq true "Audio turn"
// @Success     200 {object} processResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     503 {object} response.Resp "Session store unavailable"
// @Router      /api/v1/conversation/process [POST]
func (h *handler) Process(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processProcessReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ProcessTurn(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.ProcessTurn: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newProcessResp(output))
}

// Transcribe godoc
// @Summary     Transcribe audio
// @Description Converts base64 audio to text.
// @Tags        Speech
// @Accept      json
// @Produce     json
// @Param       body body transcribeReq true "Audio"
// @Success     200 {object} transcribeResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Transcription failed"
// @Router      /api/v1/conversation/transcribe [POST]
func (h *handler) Transcribe(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTranscribeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Transcribe(ctx, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newTranscribeResp(output))
}

// Synthesize godoc
// @Summary     Synthesize speech
// @Description Converts text to base64 audio.
// @Tags        Speech
// @Accept      json
// @Produce     json
// @Param       body body synthesizeReq true "Text"
// @Success     200 {object} synthesizeResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Speech synthesis failed"
// @Router      /api/v1/conversation/synthesize [POST]
func (h *handler) Synthesize(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSynthesizeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Synthesize(ctx, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSynthesizeResp(output, req.Format))
}
