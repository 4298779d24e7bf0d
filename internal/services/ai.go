package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// TaskSuggestionService extracts field-visit tasks from free text using
// OpenAI. Optional: the server runs without it when no API key is configured.
type TaskSuggestionService struct {
	client *openai.Client
}

// SuggestedTask is one extracted visit the admin can turn into a task.
type SuggestedTask struct {
	Name         string `json:"name"`
	ContactNo    string `json:"contactNo"`
	FullAddress  string `json:"fullAddress"`
	Task         string `json:"task"`
	ExpectedDate string `json:"expectedDate"`
}

func NewTaskSuggestionService(apiKey string) *TaskSuggestionService {
	return &TaskSuggestionService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestTasks analyzes a briefing and extracts structured visit tasks.
func (s *TaskSuggestionService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a task-extraction assistant for a field workforce app. Extract concrete customer-visit tasks from the text below.

Current time: %s

Text:
%s

Return a JSON array in this exact shape:
[
  {
    "name": "customer or contact name",
    "contactNo": "phone number if present, otherwise empty string",
    "fullAddress": "visit address if present, otherwise empty string",
    "task": "what needs to be done at the visit",
    "expectedDate": "deadline in ISO8601 (e.g. 2025-12-01), or null if not stated"
  }
]

Rules:
- Return an empty array [] if there are no tasks.
- Convert relative dates ("tomorrow", "next week") to concrete dates.
- Return JSON only, no prose.`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var tasks []SuggestedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}
