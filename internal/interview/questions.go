package interview

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/prompts"
	"github.com/Graceson27/interview-bot/internal/types"
)

// DefaultQuestionWordLimit is the longest question, in words, kept whole.
const DefaultQuestionWordLimit = 30

const questionTemperature = 0.7

// sentenceEnd is a terminator followed by whitespace or the end of the text, so dots
// inside names like Node.js or versions like 1.21 do not end a sentence.
var sentenceEnd = regexp.MustCompile(`[.?!](?:\s|$)`)

// CapQuestion trims generated question text. Questions longer than limit words are cut
// to their first sentence, or to the first limit words when there is no terminator.
func CapQuestion(text string, limit int) string {
	text = strings.Trim(strings.TrimSpace(text), "\"'`")
	text = strings.Join(strings.Fields(text), " ")
	if limit <= 0 {
		limit = DefaultQuestionWordLimit
	}

	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	if loc := sentenceEnd.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[:loc[0]+1])
	}
	return strings.Join(words[:limit], " ")
}

// DefaultQuestion is asked when the text generation service cannot supply one.
// A targeted project is always named.
func DefaultQuestion(intent types.Intent, topic types.Topic, project string) string {
	if project != "" {
		if intent == types.IntentDeepDive {
			return fmt.Sprintf("Looking back at %s, what would you design differently today and why?", project)
		}
		return fmt.Sprintf("Can you walk me through the %s project and the hardest problem you solved in it?", project)
	}
	if intent == types.IntentDeepDive {
		return fmt.Sprintf("Can you go deeper on your %s answer and explain the trade-offs involved?", topic)
	}
	switch topic {
	case types.TopicProjects:
		return "Can you walk me through a project you are proud of and your role in it?"
	case types.TopicInternships:
		return "What did you work on during your internship, and what did you learn from it?"
	default:
		return "Which technical skill are you strongest in, and how have you applied it recently?"
	}
}

// Brief is everything the writer needs to phrase one question.
type Brief struct {
	Intent          types.Intent
	Topic           types.Topic
	Tier            types.Tier
	Domain          string
	ExperienceLevel types.ExperienceLevel
	Project         *types.Project
	Context         string
	PrevQuestion    string
	PrevAnswer      string
}

// QuestionWriter turns a Brief into question text through the text generation service.
type QuestionWriter struct {
	gen       llm.Generator
	wordLimit int
	logger    *slog.Logger
}

// NewQuestionWriter creates a writer; wordLimit <= 0 selects the default.
func NewQuestionWriter(gen llm.Generator, wordLimit int, logger *slog.Logger) *QuestionWriter {
	if gen == nil {
		gen = llm.Unavailable{}
	}
	if wordLimit <= 0 {
		wordLimit = DefaultQuestionWordLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionWriter{gen: gen, wordLimit: wordLimit, logger: logger}
}

// Write returns capped question text, falling back to DefaultQuestion on any failure.
func (w *QuestionWriter) Write(ctx context.Context, b Brief) string {
	projectName := ""
	if b.Project != nil {
		projectName = b.Project.Name
	}
	fallback := DefaultQuestion(b.Intent, b.Topic, projectName)

	prompt, err := w.prompt(b)
	if err != nil {
		w.logger.Warn("question prompt unavailable, using default", "intent", b.Intent, "error", err)
		return fallback
	}

	text, err := w.gen.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Temperature: questionTemperature,
		Tier:        llm.TierStandard,
		Purpose:     llm.PurposeQuestion,
	})
	question := llm.OrFallback(text, err, "")
	if question == "" {
		w.logger.Warn("question generation fell back to default", "intent", b.Intent, "topic", b.Topic, "error", err)
		return fallback
	}
	return CapQuestion(question, w.wordLimit)
}

func (w *QuestionWriter) prompt(b Brief) (string, error) {
	data := map[string]string{
		"Domain":          b.Domain,
		"ExperienceLevel": string(b.ExperienceLevel),
		"Tier":            string(b.Tier),
		"Topic":           string(b.Topic),
		"Context":         orNone(b.Context),
	}

	switch {
	case b.Intent == types.IntentDeepDive && b.PrevAnswer != "":
		data["Question"] = b.PrevQuestion
		data["Answer"] = b.PrevAnswer
		return prompts.Render(prompts.InterviewFile, "follow-up-question", data)
	case b.Project != nil:
		data["Project"] = b.Project.Name
		data["Description"] = orNone(b.Project.Description)
		data["Technologies"] = orNone(strings.Join(b.Project.Technologies, ", "))
		return prompts.Render(prompts.InterviewFile, "project-question", data)
	default:
		return prompts.Render(prompts.InterviewFile, "initial-question", data)
	}
}

// TopicContext summarizes what the resume says about topic for an opening question.
func TopicContext(topic types.Topic, profile *types.ResumeProfile) string {
	if profile == nil {
		return ""
	}
	switch topic {
	case types.TopicSkills:
		return strings.Join(profile.Skills, ", ")
	case types.TopicInternships:
		lines := make([]string, 0, len(profile.Internships))
		for _, in := range profile.Internships {
			line := in.Company
			if in.Role != "" {
				line += " (" + in.Role + ")"
			}
			if in.Description != "" {
				line += ": " + in.Description
			}
			lines = append(lines, "- "+line)
		}
		return strings.Join(lines, "\n")
	case types.TopicProjects:
		return strings.Join(profile.ProjectNames(), ", ")
	}
	return ""
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none provided)"
	}
	return s
}
