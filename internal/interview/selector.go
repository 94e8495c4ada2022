package interview

import (
	"context"
	"log/slog"

	"github.com/Graceson27/interview-bot/internal/conversation"
	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/types"
)

// Selection is the selector's decision for one turn.
type Selection struct {
	Topic     types.Topic
	Question  string
	Intent    types.Intent
	Project   string
	Tier      types.Tier
	Escalated bool
}

// Selector decides what to ask next. It mutates the State it was built with and reads
// the conversation log; it never writes to the log.
type Selector struct {
	state   *State
	log     *conversation.Log
	profile *types.ResumeProfile
	writer  *QuestionWriter
	logger  *slog.Logger
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithQuestionWordLimit overrides the question length cap.
func WithQuestionWordLimit(n int) SelectorOption {
	return func(s *Selector) {
		s.writer = NewQuestionWriter(s.writer.gen, n, s.logger)
	}
}

// WithSelectorLogger sets the logger.
func WithSelectorLogger(l *slog.Logger) SelectorOption {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
			s.writer.logger = l
		}
	}
}

// NewSelector builds a selector over one interview's state and log.
func NewSelector(state *State, log *conversation.Log, profile *types.ResumeProfile, gen llm.Generator, opts ...SelectorOption) *Selector {
	if profile == nil {
		profile = types.EmptyResumeProfile()
	}
	s := &Selector{
		state:   state,
		log:     log,
		profile: profile,
		writer:  NewQuestionWriter(gen, DefaultQuestionWordLimit, slog.Default()),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next runs one turn of the topic state machine and returns the question to ask.
// It always produces a question.
func (s *Selector) Next(ctx context.Context) Selection {
	escalated := s.state.MaybeEscalate()
	if escalated {
		s.logger.Info("difficulty escalated", "tier", s.state.Tier)
	}

	sel, ok := s.projectSwitch(ctx)
	if !ok {
		if s.state.RemainingTopics.Empty() {
			sel = s.deepDive(ctx)
		} else {
			sel = s.freshTopic(ctx)
		}
	}

	sel.Escalated = escalated
	s.logger.Debug("selected question",
		"intent", sel.Intent, "topic", sel.Topic, "project", sel.Project, "tier", sel.Tier)
	return sel
}

// projectSwitch moves away from a project that has been asked about enough. It reports
// false when the turn should fall through to the deep-dive or fresh-topic branches.
func (s *Selector) projectSwitch(ctx context.Context) (Selection, bool) {
	if s.state.CurrentTopic != types.TopicProjects {
		return Selection{}, false
	}
	latest, ok := s.log.LatestProject()
	if !ok || s.state.ProjectDepth.Get(latest) < s.state.ProjectSwitchThreshold {
		return Selection{}, false
	}

	if next, ok := s.state.ProjectDepth.FirstBelow(s.state.ProjectSwitchThreshold); ok {
		return s.ask(ctx, types.IntentProjectDepth, types.TopicProjects, next, ""), true
	}

	for _, topic := range []types.Topic{types.TopicSkills, types.TopicInternships} {
		if !s.state.TopicsCovered.Contains(topic) {
			s.state.MarkCovered(topic)
			return s.ask(ctx, types.IntentTopicSwitch, topic, "", TopicContext(topic, s.profile)), true
		}
	}
	return Selection{}, false
}

func (s *Selector) deepDive(ctx context.Context) Selection {
	topic, ok := s.state.PerformanceScores.Best()
	if !ok {
		topic = types.TopicSkills
	}

	project := ""
	if topic == types.TopicProjects {
		project = s.deepDiveProject()
	}

	brief := s.brief(types.IntentDeepDive, topic, project, TopicContext(topic, s.profile))
	if prev, ok := s.log.LatestAnswer(topic); ok {
		brief.PrevQuestion = prev.Question
		brief.PrevAnswer = *prev.Answer
	}
	return s.commit(ctx, brief)
}

// deepDiveProject stays on the latest project unless it has reached the switch
// threshold while another project is still below it.
func (s *Selector) deepDiveProject() string {
	threshold := s.state.ProjectSwitchThreshold
	latest, ok := s.log.LatestProject()
	if ok && s.state.ProjectDepth.Get(latest) < threshold {
		return latest
	}
	if first, found := s.state.ProjectDepth.FirstBelow(threshold); found {
		return first
	}
	return latest
}

func (s *Selector) freshTopic(ctx context.Context) Selection {
	topic, _ := s.state.RemainingTopics.PopFirst()
	s.state.TopicsCovered.Add(topic)

	project := ""
	if topic == types.TopicProjects {
		if first, ok := s.state.ProjectDepth.FirstBelow(s.state.ProjectSwitchThreshold); ok {
			project = first
		}
	}
	return s.ask(ctx, types.IntentFreshTopic, topic, project, TopicContext(topic, s.profile))
}

func (s *Selector) ask(ctx context.Context, intent types.Intent, topic types.Topic, project, topicContext string) Selection {
	return s.commit(ctx, s.brief(intent, topic, project, topicContext))
}

func (s *Selector) brief(intent types.Intent, topic types.Topic, project, topicContext string) Brief {
	b := Brief{
		Intent:          intent,
		Topic:           topic,
		Tier:            s.state.Tier,
		Domain:          s.state.Domain(),
		ExperienceLevel: s.state.ExperienceLevel(),
		Context:         topicContext,
	}
	if project != "" {
		if p := s.profile.FindProject(project); p != nil {
			b.Project = p
		} else {
			b.Project = &types.Project{Name: project}
		}
	}
	return b
}

// commit generates the text and applies the bookkeeping every question shares.
func (s *Selector) commit(ctx context.Context, b Brief) Selection {
	question := s.writer.Write(ctx, b)

	project := ""
	if b.Project != nil {
		project = b.Project.Name
	}
	tier := s.state.Tier
	s.state.recordQuestion(project)
	s.state.CurrentTopic = b.Topic

	return Selection{
		Topic:    b.Topic,
		Question: question,
		Intent:   b.Intent,
		Project:  project,
		Tier:     tier,
	}
}
