package session

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Graceson27/interview-bot/internal/feedback"
	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/observability"
	"github.com/Graceson27/interview-bot/internal/types"
)

func TestIsExit(t *testing.T) {
	for _, answer := range []string{"exit", "BYE", "  Stop  ", "stop\n"} {
		assert.True(t, IsExit(answer), answer)
	}
	for _, answer := range []string{"", "stop please", "goodbye", "exit now"} {
		assert.False(t, IsExit(answer), answer)
	}
}

func TestRun_StopEndsWithoutEvaluating(t *testing.T) {
	gen := newRoutedGenerator()
	presenter := &recordingPresenter{}
	answers := NewQueueAnswers("I designed the token bucket myself", "stop")

	iv := New(Config{}, alphaAnalysis(), gen, answers, presenter)
	result, err := iv.Run(context.Background(), "Hi, I am Jane.")
	require.NoError(t, err)

	assert.Equal(t, StopCandidateExit, result.Reason)
	require.Len(t, result.Transcript, 2)

	first := result.Transcript[0]
	assert.Equal(t, types.TopicProjects, first.Topic)
	assert.Equal(t, "Alpha", first.ProjectName)
	assert.Equal(t, types.IntentFreshTopic, first.Intent)
	require.True(t, first.Answered())
	assert.Equal(t, "I designed the token bucket myself", *first.Answer)
	assert.InDelta(t, 0.8, *first.Score, 1e-9)

	second := result.Transcript[1]
	assert.Equal(t, types.TopicInternships, second.Topic)
	assert.False(t, second.Answered(), "the exit word is never evaluated")

	assert.Equal(t, 1, gen.count(llm.PurposeScore))
	assert.Equal(t, 2, result.Report.TotalQuestions)
	assert.Equal(t, []string{"How did you design Alpha?", "Tell me more about that?"}, presenter.questions)
	assert.Equal(t, "Great interview.", result.Feedback)
	assert.Equal(t, feedback.Recommendation(result.Report.Overall), result.Recommendation)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, iv.ID, result.ID)
}

func TestRun_ExitAsIntroduction(t *testing.T) {
	gen := newRoutedGenerator()
	iv := New(Config{}, alphaAnalysis(), gen, NewQueueAnswers(), &recordingPresenter{})

	result, err := iv.Run(context.Background(), "Bye")
	require.NoError(t, err)

	assert.Equal(t, StopCandidateExit, result.Reason)
	assert.Empty(t, result.Transcript)
	assert.Equal(t, 0, result.Report.TotalQuestions)
	assert.Zero(t, result.Report.Overall)
	assert.Equal(t, 0, gen.count(llm.PurposeQuestion))
}

func TestRun_QuestionLimit(t *testing.T) {
	gen := newRoutedGenerator()
	metrics := observability.NewMetrics()
	answers := NewQueueAnswers(repeat("a detailed answer", 20)...)

	iv := New(Config{Metrics: metrics}, alphaAnalysis(), gen, answers, &recordingPresenter{})
	result, err := iv.Run(context.Background(), "Hello")
	require.NoError(t, err)

	assert.Equal(t, StopQuestionLimit, result.Reason)
	require.Len(t, result.Transcript, DefaultMaxQuestions)
	for i, entry := range result.Transcript {
		assert.True(t, entry.Answered(), "entry %d should be scored", i)
	}
	unread := 0
	for {
		if _, err := answers.NextAnswer(context.Background()); err != nil {
			break
		}
		unread++
	}
	assert.Equal(t, 20-DefaultMaxQuestions, unread)

	assert.Equal(t, types.TierHard, result.Report.Tier)
	assert.Equal(t, types.TierEasy, result.Transcript[0].Difficulty)
	assert.Equal(t, types.TierMedium, result.Transcript[3].Difficulty)
	assert.Equal(t, types.TierHard, result.Transcript[6].Difficulty)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EscalationsTotal.WithLabelValues("medium")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EscalationsTotal.WithLabelValues("hard")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.QuestionsTotal.WithLabelValues("projects", "easy", "fresh_topic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.InterviewsTotal.WithLabelValues(result.Recommendation)))
}

func TestRun_ConfiguredLimitAndTierSize(t *testing.T) {
	answers := NewQueueAnswers(repeat("answer", 10)...)
	iv := New(Config{MaxQuestions: 4, MaxQuestionsPerTier: 2}, alphaAnalysis(), newRoutedGenerator(), answers, nil)

	result, err := iv.Run(context.Background(), "Hello")
	require.NoError(t, err)

	require.Len(t, result.Transcript, 4)
	assert.Equal(t, types.TierMedium, result.Transcript[2].Difficulty)
}

func TestRun_AnswerSourceFailureStillReports(t *testing.T) {
	gen := newRoutedGenerator()
	iv := New(Config{}, alphaAnalysis(), gen, NewQueueAnswers(), &recordingPresenter{})

	result, err := iv.Run(context.Background(), "Hello")
	require.ErrorIs(t, err, ErrInputClosed)
	require.NotNil(t, result)

	assert.Equal(t, StopInputFailed, result.Reason)
	require.Len(t, result.Transcript, 1)
	assert.False(t, result.Transcript[0].Answered())
	assert.Equal(t, 1, result.Report.TotalQuestions)
	assert.Equal(t, "Great interview.", result.Feedback)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	iv := New(Config{}, alphaAnalysis(), newRoutedGenerator(), NewQueueAnswers("answer"), nil)
	result, err := iv.Run(ctx, "Hello")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StopInputFailed, result.Reason)
}

func TestRun_ServiceUnavailableUsesFallbacks(t *testing.T) {
	answers := NewQueueAnswers("My answer", "exit")
	iv := New(Config{}, alphaAnalysis(), llm.Unavailable{}, answers, &recordingPresenter{})

	result, err := iv.Run(context.Background(), "Hello")
	require.NoError(t, err)

	require.Len(t, result.Transcript, 2)
	assert.Contains(t, result.Transcript[0].Question, "Alpha")
	assert.Equal(t, "Alpha", result.Transcript[0].ProjectName)
	assert.InDelta(t, 0.5, *result.Transcript[0].Score, 1e-9)
	assert.Equal(t, feedback.Summary(result.Report), result.Feedback)
}

func TestRun_ProjectAttachment(t *testing.T) {
	t.Run("targeted project wins over a longer mention", func(t *testing.T) {
		gen := newRoutedGenerator()
		gen.question = "How does Alpha compare with Alpha Beta under load?"
		iv := New(Config{}, alphaAnalysis("Alpha", "Alpha Beta"), gen, NewQueueAnswers("exit"), nil)

		result, err := iv.Run(context.Background(), "Hello")
		require.NoError(t, err)
		assert.Equal(t, "Alpha", result.Transcript[0].ProjectName)
		assert.Equal(t, 1, iv.State().ProjectDepth.Get("Alpha"))
		assert.Equal(t, 0, iv.State().ProjectDepth.Get("Alpha Beta"))
	})

	t.Run("longest mentioned name when target is not named", func(t *testing.T) {
		gen := newRoutedGenerator()
		gen.question = "How does Alpha Beta scale under load?"
		iv := New(Config{}, alphaAnalysis("Gamma", "Alpha", "Alpha Beta"), gen, NewQueueAnswers("exit"), nil)

		result, err := iv.Run(context.Background(), "Hello")
		require.NoError(t, err)
		assert.Equal(t, "Alpha Beta", result.Transcript[0].ProjectName)
	})

	t.Run("targeted project when text omits it", func(t *testing.T) {
		gen := newRoutedGenerator()
		gen.question = "What was the hardest bug you fixed?"
		iv := New(Config{}, alphaAnalysis(), gen, NewQueueAnswers("exit"), nil)

		result, err := iv.Run(context.Background(), "Hello")
		require.NoError(t, err)
		assert.Equal(t, "Alpha", result.Transcript[0].ProjectName)
	})
}

func TestRun_IntroductionCoversTopics(t *testing.T) {
	gen := newRoutedGenerator()
	intro := "I built and developed Alpha, a project in Go."
	iv := New(Config{}, alphaAnalysis(), gen, NewQueueAnswers("exit"), nil)

	result, err := iv.Run(context.Background(), intro)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Intro.Depth[types.TopicProjects], 2)
	assert.True(t, iv.State().TopicsCovered.Contains(types.TopicProjects))
	assert.NotEqual(t, types.TopicProjects, result.Transcript[0].Topic)
}

func TestRun_VerboseTrace(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Printer: observability.NewPrinter(&buf)}
	iv := New(cfg, alphaAnalysis(), newRoutedGenerator(), NewQueueAnswers("answer", "exit"), nil)

	_, err := iv.Run(context.Background(), "Hello")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `[turn 1] topic=projects intent=fresh_topic tier=easy project="Alpha"`)
	assert.Contains(t, buf.String(), "[score] topic=projects score=0.80")
}

func TestWriteTranscript(t *testing.T) {
	iv := New(Config{}, alphaAnalysis(), newRoutedGenerator(), NewQueueAnswers("answer", "exit"), nil)
	result, err := iv.Run(context.Background(), "Hello")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "runs", "transcript.json")
	require.NoError(t, WriteTranscript(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.ID, decoded.ID)
	assert.Len(t, decoded.Transcript, 2)
	assert.Equal(t, result.Report.TotalQuestions, decoded.Report.TotalQuestions)

	assert.Error(t, WriteTranscript(path, nil))
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
