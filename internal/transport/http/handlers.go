package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/nadzzz/voicebot/internal/apperr"
	"github.com/nadzzz/voicebot/internal/message"
	"github.com/nadzzz/voicebot/internal/transport"
)

// handleRoot processes GET /.
//
// @Summary     Service banner
// @Tags        health
// @Produce     json
// @Success     200  {object}  message.WelcomeResponse
// @Router      / [get]
func (t *Transport) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, message.WelcomeResponse{Message: welcomeMessage})
}

// handleGenerateText processes POST /api/generate-text.
//
// @Summary     Generate a persona reply
// @Description Interview questions about the persona get a canned answer; anything else is sent
// @Description to the completion backend together with the conversation history.
// @Tags        voicebot
// @Accept      json
// @Produce     json
// @Param       request  body      message.GenerateTextRequest  true  "Message and prior conversation"
// @Success     200  {object}  message.TextResponse
// @Failure     401  {object}  message.ErrorResponse  "Completion API key missing"
// @Failure     422  {object}  message.ErrorResponse  "Invalid request body"
// @Failure     500  {object}  message.ErrorResponse  "Text generation failed"
// @Router      /api/generate-text [post]
func (t *Transport) handleGenerateText(w http.ResponseWriter, r *http.Request, svc transport.Service) {
	var req message.GenerateTextRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, t.opts.MaxUploadBytes)).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json: "+err.Error())
		return
	}
	if err := t.validate.Struct(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "message is required")
		return
	}

	reply, err := svc.GenerateText(r.Context(), req.Text(), req.History())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message.TextResponse{Response: reply})
}

// handleSpeechToText processes POST /api/speech-to-text.
//
// @Summary     Transcribe recorded speech
// @Description When transcription is unavailable a fixed placeholder text is returned instead of an error.
// @Tags        voicebot
// @Accept      multipart/form-data
// @Produce     json
// @Param       audio_file  formData  file  true  "Recorded audio"
// @Success     200  {object}  message.TextResponse
// @Failure     400  {object}  message.ErrorResponse  "No or unreadable audio"
// @Router      /api/speech-to-text [post]
func (t *Transport) handleSpeechToText(w http.ResponseWriter, r *http.Request, svc transport.Service) {
	r.Body = http.MaxBytesReader(w, r.Body, t.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(t.opts.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, r, apperr.AudioProcessing("Speech-to-text conversion failed", err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile(audioField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// The dispatcher reports the missing payload.
		text, err := svc.SpeechToText(r.Context(), nil, "")
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, message.TextResponse{Response: text})
		return
	case err != nil:
		writeError(w, r, apperr.AudioProcessing("Speech-to-text conversion failed", err))
		return
	}
	defer file.Close()

	text, err := svc.SpeechToText(r.Context(), file, header.Filename)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message.TextResponse{Response: text})
}

// handleTextToSpeech processes POST /api/text-to-speech.
//
// @Summary     Synthesize speech
// @Tags        voicebot
// @Accept      x-www-form-urlencoded
// @Accept      multipart/form-data
// @Produce     audio/mpeg
// @Param       text  formData  string  true  "Text to speak"
// @Success     200  {file}    binary  "MP3 audio"
// @Failure     401  {object}  message.ErrorResponse  "Speech API key missing"
// @Failure     500  {object}  message.ErrorResponse  "Speech generation failed"
// @Router      /api/text-to-speech [post]
func (t *Transport) handleTextToSpeech(w http.ResponseWriter, r *http.Request, svc transport.Service) {
	r.Body = http.MaxBytesReader(w, r.Body, t.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(t.opts.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid form: "+err.Error())
		return
	}

	result, err := svc.TextToSpeech(r.Context(), r.FormValue(textField))
	if err != nil {
		writeError(w, r, err)
		return
	}

	contentType := result.ContentType
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=response.mp3")
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Audio)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Audio)
}
