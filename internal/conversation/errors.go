package conversation

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrStoreUnavailable  = errors.New("session store unavailable")
	ErrTranscribeFailed  = errors.New("transcription failed")
	ErrSynthesizeFailed  = errors.New("speech synthesis failed")
	ErrEmptyText         = errors.New("text is empty")
	ErrCapabilityMissing = errors.New("capability not configured")
)
