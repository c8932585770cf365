package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"greeting-studio/internal/config"
	"greeting-studio/internal/httpclient"
	"greeting-studio/internal/logger"
	"greeting-studio/models"
)

// ElevenLabsService streams synthesized speech from the ElevenLabs API.
// One instance is built per run and shared by every recipient.
type ElevenLabsService struct {
	apiKey     string
	voiceID    string
	dictionary *models.Dictionary

	baseURL string
	client  *http.Client
}

// NewElevenLabsService creates a synthesis client bound to one
// credential and voice
func NewElevenLabsService(apiKey, voiceID string) *ElevenLabsService {
	return &ElevenLabsService{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: config.ElevenLabsAPIBase,
		client:  httpclient.ElevenLabsClient,
	}
}

// CheckInstalled verifies the API key is set
func (s *ElevenLabsService) CheckInstalled() error {
	if s.apiKey == "" {
		return fmt.Errorf("ElevenLabs API key is required (set ELEVENLABS_API_KEY)")
	}
	return nil
}

// SetVoice changes the voice used for synthesis
func (s *ElevenLabsService) SetVoice(voiceID string) {
	if voiceID != "" {
		s.voiceID = voiceID
	}
}

// SetDictionary attaches a pronunciation dictionary to every
// subsequent synthesis call
func (s *ElevenLabsService) SetDictionary(d *models.Dictionary) {
	s.dictionary = d
}

// voiceSettings carries the fixed prosody profile. The values are
// constants for every run; see internal/config.
type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type dictionaryLocator struct {
	PronunciationDictionaryID string `json:"pronunciation_dictionary_id"`
	VersionID                 string `json:"version_id"`
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`

	PronunciationDictionaryLocators []dictionaryLocator `json:"pronunciation_dictionary_locators,omitempty"`
}

// Synthesize renders text with the configured voice and writes the
// streamed audio to outputPath
func (s *ElevenLabsService) Synthesize(text, outputPath string) error {
	if text == "" {
		return fmt.Errorf("empty text provided")
	}
	if err := s.CheckInstalled(); err != nil {
		return err
	}

	reqBody := synthesisRequest{
		Text:    text,
		ModelID: config.SynthesisModel,
		VoiceSettings: voiceSettings{
			Stability:       config.VoiceStability,
			SimilarityBoost: config.VoiceSimilarityBoost,
			Style:           config.VoiceStyle,
			UseSpeakerBoost: config.VoiceSpeakerBoost,
		},
	}
	if s.dictionary != nil {
		reqBody.PronunciationDictionaryLocators = []dictionaryLocator{
			{
				PronunciationDictionaryID: s.dictionary.ID,
				VersionID:                 s.dictionary.Version,
			},
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		s.baseURL, s.voiceID, config.SynthesisOutputFormat)

	req, err := http.NewRequest("POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.DoWithRetry(s.client, req, httpclient.DefaultRetryConfig())
	if err != nil {
		return fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("synthesis failed: %s", readAPIError(resp))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	defer f.Close()

	// Response is a raw audio byte stream
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to write audio stream: %w", err)
	}

	return nil
}

// UploadDictionary registers a pronunciation dictionary file with the
// service and returns its id+version pair
func (s *ElevenLabsService) UploadDictionary(path, name string) (*models.Dictionary, error) {
	if err := s.CheckInstalled(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to read dictionary file: %w", err)
	}
	if err := writer.WriteField("name", name); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	url := s.baseURL + "/v1/pronunciation-dictionaries/add-from-file"
	req, err := http.NewRequest("POST", url, bytes.NewReader(body.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := httpclient.DoWithRetry(s.client, req, httpclient.DefaultRetryConfig())
	if err != nil {
		return nil, fmt.Errorf("dictionary upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary upload failed: %s", readAPIError(resp))
	}

	var result struct {
		ID        string `json:"id"`
		VersionID string `json:"version_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	if result.ID == "" {
		return nil, fmt.Errorf("dictionary response missing id")
	}

	logger.Info("ElevenLabs: dictionary %q registered (id=%s version=%s)", name, result.ID, result.VersionID)
	return &models.Dictionary{ID: result.ID, Version: result.VersionID}, nil
}

// readAPIError extracts a human-readable message from an ElevenLabs
// error response
func readAPIError(resp *http.Response) string {
	respBody, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Detail struct {
			Message string `json:"message"`
		} `json:"detail"`
	}
	if json.Unmarshal(respBody, &errResp) == nil && errResp.Detail.Message != "" {
		return fmt.Sprintf("%s (status %d)", errResp.Detail.Message, resp.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", resp.StatusCode, string(respBody))
}
