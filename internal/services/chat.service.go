package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"wellness360/config"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	groqCompletionsURL = "https://api.groq.com/openai/v1/chat/completions"
	chatRequestTimeout = 30 * time.Second
	chatHistoryWindow  = 10
)

var ErrChatUnavailable = fmt.Errorf("chat assistant is not configured")

// moodPrompts steer the assistant's tone by the user's latest logged mood.
var moodPrompts = map[string]string{
	MoodHappy:   "The user is feeling happy. Match their energy, celebrate their wins, and encourage them to keep their wellness momentum going.",
	MoodExcited: "The user is feeling excited. Share their enthusiasm and help them channel it into their habits and goals.",
	MoodCalm:    "The user is feeling calm. Keep a gentle, steady tone and reinforce the routines that got them here.",
	MoodNeutral: "The user is feeling neutral. Be warm and curious, and help them find one small thing to improve their day.",
	MoodSad:     "The user is feeling sad. Be compassionate and validating. Suggest small, achievable actions and remind them that difficult days pass.",
	MoodAnxious: "The user is feeling anxious. Be grounding and reassuring. Offer simple breathing or grounding techniques and avoid overwhelming them.",
	MoodAngry:   "The user is feeling angry. Stay calm and non-judgmental. Help them process the feeling and suggest a physical outlet like a walk or exercise.",
}

const basePrompt = "You are a supportive wellness assistant inside a habit and mood tracking app. " +
	"Keep replies short, practical, and kind. Never give medical diagnoses; suggest professional help for serious concerns."

// ChatService talks to the Groq chat completions API. A missing API key
// disables the feature rather than failing startup.
type ChatService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	log     logger.Logger
}

func NewChatService(config config.Config) *ChatService {
	return &ChatService{
		apiKey:  config.GroqAPIKey,
		model:   config.GroqModel,
		baseURL: groqCompletionsURL,
		client:  &http.Client{Timeout: chatRequestTimeout},
		log:     logger.New("ChatService"),
	}
}

func (s *ChatService) Enabled() bool {
	return s.apiKey != ""
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model    string        `json:"model"`
	Messages []groqMessage `json:"messages"`
}

type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the user's message plus recent history and returns the
// assistant's reply. mood selects the tone of the system prompt; an unknown
// or empty mood falls back to the base prompt alone.
func (s *ChatService) Complete(
	ctx context.Context,
	mood string,
	history []ChatMessage,
	userMessage string,
) (string, error) {
	log := s.log.TraceFromContext(ctx).Function("Complete")

	if !s.Enabled() {
		return "", ErrChatUnavailable
	}

	systemPrompt := basePrompt
	if moodPrompt, ok := moodPrompts[mood]; ok {
		systemPrompt += " " + moodPrompt
	}

	messages := make([]groqMessage, 0, len(history)+2)
	messages = append(messages, groqMessage{Role: "system", Content: systemPrompt})

	start := 0
	if len(history) > chatHistoryWindow {
		start = len(history) - chatHistoryWindow
	}
	for _, msg := range history[start:] {
		messages = append(messages, groqMessage{Role: string(msg.Role), Content: msg.Content})
	}
	messages = append(messages, groqMessage{Role: "user", Content: userMessage})

	body, err := json.Marshal(groqRequest{Model: s.model, Messages: messages})
	if err != nil {
		return "", log.Err("failed to encode chat request", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return "", log.Err("failed to build chat request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", log.Err("chat request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", log.Err("failed to read chat response", err)
	}

	var parsed groqResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", log.Err("failed to decode chat response", err, "status", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		message := "unknown error"
		if parsed.Error != nil {
			message = parsed.Error.Message
		}
		return "", log.Error("chat completion rejected", "status", resp.StatusCode, "message", message)
	}

	if len(parsed.Choices) == 0 {
		return "", log.ErrMsg("chat completion returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
