package interview

import (
	"github.com/Graceson27/interview-bot/internal/types"
)

// Defaults for the tunables of a State.
const (
	DefaultMaxQuestionsPerTier    = 3
	DefaultProjectSwitchThreshold = 2
	DefaultDomain                 = "general"
)

// Options configures a new interview.
type Options struct {
	Domain                 string
	ExperienceLevel        types.ExperienceLevel
	Projects               []string
	MaxQuestionsPerTier    int
	ProjectSwitchThreshold int
}

// State is the mutable progress record of one interview. It is owned by a single
// session and never shared.
type State struct {
	TopicsCovered   *TopicSet
	RemainingTopics *TopicSet
	DepthLevels     map[types.Topic]int
	ProjectDepth    *ProjectDepths

	Tier                   types.Tier
	QuestionsPerTier       map[types.Tier]int
	MaxQuestionsPerTier    int
	ProjectSwitchThreshold int

	CurrentTopic      types.Topic
	PerformanceScores *ScoreBoard
	HiringScores      types.HiringScores

	domain          string
	experienceLevel types.ExperienceLevel
}

// NewState creates the state for a fresh interview: every topic remaining, tier easy,
// every resume project at depth 0.
func NewState(opts Options) *State {
	if opts.MaxQuestionsPerTier <= 0 {
		opts.MaxQuestionsPerTier = DefaultMaxQuestionsPerTier
	}
	if opts.ProjectSwitchThreshold <= 0 {
		opts.ProjectSwitchThreshold = DefaultProjectSwitchThreshold
	}
	if opts.Domain == "" {
		opts.Domain = DefaultDomain
	}
	if opts.ExperienceLevel == "" {
		opts.ExperienceLevel = types.LevelFresher
	}

	questions := make(map[types.Tier]int, 3)
	for _, tier := range types.AllTiers() {
		questions[tier] = 0
	}

	return &State{
		TopicsCovered:          NewTopicSet(),
		RemainingTopics:        NewTopicSet(types.AllTopics()...),
		DepthLevels:            make(map[types.Topic]int),
		ProjectDepth:           NewProjectDepths(opts.Projects...),
		Tier:                   types.TierEasy,
		QuestionsPerTier:       questions,
		MaxQuestionsPerTier:    opts.MaxQuestionsPerTier,
		ProjectSwitchThreshold: opts.ProjectSwitchThreshold,
		PerformanceScores:      NewScoreBoard(),
		domain:                 opts.Domain,
		experienceLevel:        opts.ExperienceLevel,
	}
}

// Domain is the candidate's domain tag, fixed at construction.
func (s *State) Domain() string { return s.domain }

// ExperienceLevel is fixed at construction.
func (s *State) ExperienceLevel() types.ExperienceLevel { return s.experienceLevel }

// TotalQuestions sums the per-tier counters.
func (s *State) TotalQuestions() int {
	total := 0
	for _, n := range s.QuestionsPerTier {
		total += n
	}
	return total
}

// MarkCovered moves topic from remaining to covered.
func (s *State) MarkCovered(topic types.Topic) {
	s.RemainingTopics.Remove(topic)
	s.TopicsCovered.Add(topic)
}

// recordQuestion counts a question at the current tier and, when project is set,
// against that project.
func (s *State) recordQuestion(project string) {
	s.QuestionsPerTier[s.Tier]++
	if project != "" {
		s.ProjectDepth.Increment(project)
	}
}
