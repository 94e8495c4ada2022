package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTier_Next(t *testing.T) {
	assert.Equal(t, TierMedium, TierEasy.Next())
	assert.Equal(t, TierHard, TierMedium.Next())
	assert.Equal(t, TierHard, TierHard.Next())
}

func TestTopic_Valid(t *testing.T) {
	for _, topic := range AllTopics() {
		assert.True(t, topic.Valid(), topic)
	}
	assert.False(t, Topic("hobbies").Valid())
}

func TestParseExperienceLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected ExperienceLevel
		wantErr  bool
	}{
		{"fresher", LevelFresher, false},
		{"  Experienced\n", LevelExperienced, false},
		{"senior", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseExperienceLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestHiringScores_Scaled(t *testing.T) {
	h := HiringScores{TechnicalKnowledge: 1.0, ProblemSolving: 0, Communication: 0.6, ExperienceRelevance: 0.5}

	scaled := h.Scaled(2)
	assert.InDelta(t, 0.5, scaled.TechnicalKnowledge, 1e-9)
	assert.InDelta(t, 0.0, scaled.ProblemSolving, 1e-9)
	assert.InDelta(t, 0.3, scaled.Communication, 1e-9)
	assert.InDelta(t, 0.25, scaled.ExperienceRelevance, 1e-9)

	assert.Equal(t, h, h.Scaled(0))
}

func TestConversationEntry_Answered(t *testing.T) {
	entry := ConversationEntry{Topic: TopicSkills, Question: "What is Go?"}
	assert.False(t, entry.Answered())

	answer := "A language"
	entry.Answer = &answer
	assert.True(t, entry.Answered())
}
