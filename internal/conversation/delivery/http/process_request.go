package http

import (
	"encoding/base64"
	"strings"

	"github.com/gin-gonic/gin"
)

// processCreateSessionReq binds the create session request body.
func (h *handler) processCreateSessionReq(c *gin.Context) (createSessionReq, error) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processProcessReq binds the process request body and decodes its audio.
func (h *handler) processProcessReq(c *gin.Context) (processReq, error) {
	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	audio, err := decodeAudio(req.AudioData)
	if err != nil {
		return req, errInvalidAudio
	}
	req.audio = audio
	return req, nil
}

// processTranscribeReq binds the transcribe request body and decodes its audio.
func (h *handler) processTranscribeReq(c *gin.Context) (transcribeReq, error) {
	var req transcribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	audio, err := decodeAudio(req.AudioData)
	if err != nil {
		return req, errInvalidAudio
	}
	req.audio = audio
	return req, nil
}

// processSynthesizeReq binds the synthesize request body.
func (h *handler) processSynthesizeReq(c *gin.Context) (synthesizeReq, error) {
	var req synthesizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func decodeAudio(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}
