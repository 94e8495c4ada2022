// Package session runs one adaptive interview from the candidate's introduction to
// the final report.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Graceson27/interview-bot/internal/conversation"
	"github.com/Graceson27/interview-bot/internal/feedback"
	"github.com/Graceson27/interview-bot/internal/interview"
	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/observability"
	"github.com/Graceson27/interview-bot/internal/scoring"
	"github.com/Graceson27/interview-bot/internal/types"
)

// DefaultMaxQuestions ends an interview that the candidate does not stop.
const DefaultMaxQuestions = 12

// exitWords end the interview when given as an answer.
var exitWords = []string{"exit", "bye", "stop"}

// IsExit reports whether answer asks to end the interview.
func IsExit(answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	for _, w := range exitWords {
		if a == w {
			return true
		}
	}
	return false
}

// StopReason says why an interview ended.
type StopReason string

// StopReason constants
const (
	StopCandidateExit StopReason = "candidate_exit"
	StopQuestionLimit StopReason = "question_limit"
	StopInputFailed   StopReason = "input_failed"
)

// Config tunes a session. Zero values use defaults.
type Config struct {
	MaxQuestions           int
	MaxQuestionsPerTier    int
	ProjectSwitchThreshold int
	QuestionWordLimit      int

	Metrics *observability.Metrics // optional
	Printer *observability.Printer // optional turn trace
	Logger  *slog.Logger
}

// Result is everything an interview produced.
type Result struct {
	ID             string                    `json:"id"`
	StartedAt      time.Time                 `json:"started_at"`
	EndedAt        time.Time                 `json:"ended_at"`
	Reason         StopReason                `json:"reason"`
	Intro          interview.IntroAnalysis   `json:"intro"`
	Report         feedback.Report           `json:"report"`
	Recommendation string                    `json:"recommendation"`
	Feedback       string                    `json:"feedback"`
	Transcript     []types.ConversationEntry `json:"transcript"`
}

// Interview is one candidate's interview. It owns its state and log.
type Interview struct {
	ID string

	analysis  Analysis
	state     *interview.State
	log       *conversation.Log
	selector  *interview.Selector
	evaluator *scoring.Evaluator
	narrator  *feedback.Narrator

	answers   AnswerSource
	presenter Presenter

	maxQuestions int
	metrics      *observability.Metrics
	printer      *observability.Printer
	logger       *slog.Logger
}

// New prepares an interview for the analyzed candidate.
func New(cfg Config, analysis Analysis, gen llm.Generator, answers AnswerSource, presenter Presenter) *Interview {
	if gen == nil {
		gen = llm.Unavailable{}
	}
	if analysis.Profile == nil {
		analysis.Profile = types.EmptyResumeProfile()
	}
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = DefaultMaxQuestions
	}
	id := uuid.NewString()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("interview", id)

	state := interview.NewState(interview.Options{
		Domain:                 analysis.Domain,
		ExperienceLevel:        analysis.ExperienceLevel,
		Projects:               analysis.Profile.ProjectNames(),
		MaxQuestionsPerTier:    cfg.MaxQuestionsPerTier,
		ProjectSwitchThreshold: cfg.ProjectSwitchThreshold,
	})
	log := conversation.NewLog()

	selectorOpts := []interview.SelectorOption{interview.WithSelectorLogger(logger)}
	if cfg.QuestionWordLimit > 0 {
		selectorOpts = append(selectorOpts, interview.WithQuestionWordLimit(cfg.QuestionWordLimit))
	}

	return &Interview{
		ID:           id,
		analysis:     analysis,
		state:        state,
		log:          log,
		selector:     interview.NewSelector(state, log, analysis.Profile, gen, selectorOpts...),
		evaluator:    scoring.NewEvaluator(state, gen, logger),
		narrator:     feedback.NewNarrator(gen, logger),
		answers:      answers,
		presenter:    presenter,
		maxQuestions: cfg.MaxQuestions,
		metrics:      cfg.Metrics,
		printer:      cfg.Printer,
		logger:       logger,
	}
}

// State exposes the interview state for inspection.
func (iv *Interview) State() *interview.State { return iv.state }

// Log exposes the conversation log for inspection.
func (iv *Interview) Log() *conversation.Log { return iv.log }

// Run conducts the interview. initialAnswer is the candidate's self-introduction.
// The loop ends on an exit word, at the question limit, or when the answer source
// fails; the result is complete in every case and the source's error is returned
// alongside it.
func (iv *Interview) Run(ctx context.Context, initialAnswer string) (*Result, error) {
	result := &Result{ID: iv.ID, StartedAt: time.Now().UTC()}

	if !IsExit(initialAnswer) {
		result.Intro = interview.AnalyzeIntro(iv.state, initialAnswer, iv.analysis.Profile)
		iv.logger.Debug("introduction analyzed", "depth", result.Intro.Depth)
	}

	answer := initialAnswer
	var runErr error
	for {
		if IsExit(answer) {
			result.Reason = StopCandidateExit
			break
		}
		if pending, ok := iv.log.Pending(); ok {
			iv.evaluate(ctx, pending.Topic, answer)
		}
		if iv.log.Len() >= iv.maxQuestions {
			result.Reason = StopQuestionLimit
			break
		}

		question := iv.ask(ctx)
		if iv.presenter != nil {
			if err := iv.presenter.Present(iv.log.Len(), question); err != nil {
				runErr = err
				result.Reason = StopInputFailed
				break
			}
		}

		next, err := iv.answers.NextAnswer(ctx)
		if err != nil {
			runErr = err
			result.Reason = StopInputFailed
			break
		}
		answer = next
	}

	iv.finish(ctx, result)
	if runErr != nil && !errors.Is(runErr, ErrInputClosed) {
		iv.logger.Warn("interview ended early", "error", runErr)
	}
	return result, runErr
}

// evaluate scores the answer to the pending question and records it.
func (iv *Interview) evaluate(ctx context.Context, topic types.Topic, answer string) {
	score := iv.evaluator.Evaluate(ctx, topic, answer)
	if err := iv.log.RecordAnswer(answer, score); err != nil {
		iv.logger.Warn("answer not recorded", "topic", topic, "error", err)
	}
	if iv.metrics != nil {
		iv.metrics.ObserveScore(topic, score)
	}
	if iv.printer != nil {
		iv.printer.PrintScore(topic, score)
	}
}

// ask selects the next question and appends it to the log.
func (iv *Interview) ask(ctx context.Context) string {
	sel := iv.selector.Next(ctx)

	project := sel.Project
	if !mentions(sel.Question, project) {
		if named := iv.mentionedProject(sel.Question); named != "" {
			project = named
		}
	}
	iv.log.Append(types.ConversationEntry{
		Topic:       sel.Topic,
		Question:    sel.Question,
		Difficulty:  sel.Tier,
		ProjectName: project,
		Intent:      sel.Intent,
	})

	if iv.metrics != nil {
		iv.metrics.ObserveQuestion(sel.Topic, sel.Tier, sel.Intent)
		if sel.Escalated {
			iv.metrics.ObserveEscalation(sel.Tier)
		}
	}
	if iv.printer != nil {
		iv.printer.PrintTurn(iv.log.Len(), sel)
	}
	return sel.Question
}

// mentionedProject returns the longest known project name appearing in question,
// compared case-insensitively.
func (iv *Interview) mentionedProject(question string) string {
	best := ""
	for _, name := range iv.state.ProjectDepth.Names() {
		if len(name) > len(best) && mentions(question, name) {
			best = name
		}
	}
	return best
}

func mentions(question, name string) bool {
	return name != "" && strings.Contains(strings.ToLower(question), strings.ToLower(name))
}

func (iv *Interview) finish(ctx context.Context, result *Result) {
	report := feedback.Finalize(iv.state)
	result.Report = report
	result.Recommendation = feedback.Recommendation(report.Overall)
	result.Feedback = iv.narrator.Narrate(ctx, report)
	result.Transcript = iv.log.Entries()
	result.EndedAt = time.Now().UTC()

	if iv.metrics != nil {
		iv.metrics.ObserveInterview(result.Recommendation)
	}
	iv.logger.Info("interview finished",
		"reason", result.Reason,
		"questions", report.TotalQuestions,
		"tier", report.Tier,
		"overall", report.Overall,
		"recommendation", result.Recommendation)
}
