package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/examprep/config"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ErrAdvisorUnavailable is returned by a StudyAdvisor that has no API key.
var ErrAdvisorUnavailable = errors.New("study advisor is not configured")

const geminiModelName = "gemini-1.5-flash"

// StudyAdvisor writes study advice for the weak topics of an attempt. The
// returned map is keyed by topic label; topics it has nothing for are absent.
type StudyAdvisor interface {
	Advise(ctx context.Context, subject string, weak []dto.TopicPerformanceDTO) (map[string]string, error)
}

type geminiStudyAdvisor struct {
	client *genai.GenerativeModel
}

// NewGeminiStudyAdvisor returns an advisor backed by Gemini. Without an API
// key the advisor always fails with ErrAdvisorUnavailable and callers fall
// back to the built-in advice.
func NewGeminiStudyAdvisor(cfg *config.Config) (StudyAdvisor, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Recommendations will use built-in advice.")
		return &geminiStudyAdvisor{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(geminiModelName)
	model.SetTemperature(0.4)
	return &geminiStudyAdvisor{client: model}, nil
}

func (a *geminiStudyAdvisor) Advise(ctx context.Context, subject string, weak []dto.TopicPerformanceDTO) (map[string]string, error) {
	if a.client == nil {
		return nil, ErrAdvisorUnavailable
	}
	if len(weak) == 0 {
		return map[string]string{}, nil
	}

	resp, err := a.client.GenerateContent(ctx, genai.Text(buildAdvicePrompt(subject, weak)))
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Gemini API error while generating advice")
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return nil, fmt.Errorf("gemini returned no content")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	advice := parseTopicAdvice(text.String())
	if len(advice) == 0 {
		log.Warn().Str("rawResponse", text.String()).Msg("Failed to parse topic advice from Gemini response")
		return nil, fmt.Errorf("could not parse advice from AI response")
	}
	return advice, nil
}

func buildAdvicePrompt(subject string, weak []dto.TopicPerformanceDTO) string {
	var b strings.Builder
	b.WriteString("You are an experienced tutor preparing international students for the CSCA university entrance exam.\n")
	fmt.Fprintf(&b, "A student has just completed a %s mock test. These topics were below the pass mark:\n", subject)
	for _, t := range weak {
		fmt.Fprintf(&b, "- %s: %d%% (%d of %d marks)\n", t.Topic, t.Percentage, t.Score, t.Total)
	}
	b.WriteString(`
For each topic above write two or three sentences of concrete study advice:
what to review first and what kind of exercise to practice.

Format your response strictly as one block per topic:
Topic: [topic name exactly as listed]
Advice: [your advice on one line]
`)
	return b.String()
}

// parseTopicAdvice reads "Topic:" / "Advice:" line pairs. Lines that do not
// belong to a pair are ignored.
func parseTopicAdvice(raw string) map[string]string {
	const topicPrefix, advicePrefix = "Topic:", "Advice:"

	advice := make(map[string]string)
	current := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*#"))
		switch {
		case strings.HasPrefix(line, topicPrefix):
			current = strings.Trim(line[len(topicPrefix):], "* ")
		case strings.HasPrefix(line, advicePrefix) && current != "":
			if text := strings.Trim(line[len(advicePrefix):], "* "); text != "" {
				advice[current] = text
			}
			current = ""
		}
	}
	return advice
}
