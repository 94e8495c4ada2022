// Package types provides type definitions for structured data used throughout the interview engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"
)

// Topic is one of the fixed subjects the interview can question.
type Topic string

// Topic constants, in the order they are offered to a fresh interview.
const (
	TopicProjects    Topic = "projects"
	TopicInternships Topic = "internships"
	TopicSkills      Topic = "skills"
)

// AllTopics returns the fixed topic universe in declaration order.
func AllTopics() []Topic {
	return []Topic{TopicProjects, TopicInternships, TopicSkills}
}

// Valid reports whether t belongs to the topic universe.
func (t Topic) Valid() bool {
	switch t {
	case TopicProjects, TopicInternships, TopicSkills:
		return true
	default:
		return false
	}
}

// Tier is the difficulty level of a question.
type Tier string

// Tier constants
const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// AllTiers returns the tiers from easiest to hardest.
func AllTiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard}
}

// Next returns the tier after t. Hard has no successor and returns itself.
func (t Tier) Next() Tier {
	switch t {
	case TierEasy:
		return TierMedium
	case TierMedium:
		return TierHard
	default:
		return TierHard
	}
}

// ExperienceLevel classifies how much professional experience a candidate has.
type ExperienceLevel string

// ExperienceLevel constants
const (
	LevelFresher     ExperienceLevel = "fresher"
	LevelExperienced ExperienceLevel = "experienced"
)

// ParseExperienceLevel maps free text onto a known level.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(LevelFresher):
		return LevelFresher, nil
	case string(LevelExperienced):
		return LevelExperienced, nil
	default:
		return "", fmt.Errorf("unknown experience level %q", s)
	}
}

// Intent records which selector branch produced a question.
type Intent string

// Intent constants
const (
	IntentFreshTopic   Intent = "fresh_topic"
	IntentProjectDepth Intent = "project_depth"
	IntentTopicSwitch  Intent = "topic_switch"
	IntentDeepDive     Intent = "deep_dive"
)

// ConversationEntry is one question of the interview and, once given, its scored answer.
type ConversationEntry struct {
	Topic       Topic     `json:"topic"`
	Question    string    `json:"question"`
	Answer      *string   `json:"answer,omitempty"`
	Score       *float64  `json:"score,omitempty"`
	Difficulty  Tier      `json:"difficulty"`
	ProjectName string    `json:"project_name,omitempty"`
	Intent      Intent    `json:"intent"`
	AskedAt     time.Time `json:"asked_at"`
}

// Answered reports whether an answer has been attached to the entry.
func (e *ConversationEntry) Answered() bool {
	return e.Answer != nil
}

// HiringScores holds the four hiring dimensions. During an interview the values are
// running accumulators; they only become comparable after normalization.
type HiringScores struct {
	TechnicalKnowledge  float64 `json:"technical_knowledge"`
	ProblemSolving      float64 `json:"problem_solving"`
	Communication       float64 `json:"communication"`
	ExperienceRelevance float64 `json:"experience_relevance"`
}

// Scaled returns a copy with every dimension divided by n. n <= 0 returns the scores unchanged.
func (h HiringScores) Scaled(n int) HiringScores {
	if n <= 0 {
		return h
	}
	d := float64(n)
	return HiringScores{
		TechnicalKnowledge:  h.TechnicalKnowledge / d,
		ProblemSolving:      h.ProblemSolving / d,
		Communication:       h.Communication / d,
		ExperienceRelevance: h.ExperienceRelevance / d,
	}
}
