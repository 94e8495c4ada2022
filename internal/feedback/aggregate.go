// Package feedback turns a finished interview into a hiring report.
package feedback

import (
	"github.com/Graceson27/interview-bot/internal/interview"
	"github.com/Graceson27/interview-bot/internal/types"
)

// Weights of the overall score.
const (
	TechnicalKnowledgeWeight  = 0.4
	ProblemSolvingWeight      = 0.3
	CommunicationWeight       = 0.15
	ExperienceRelevanceWeight = 0.15
)

// Report is the final, normalized view of an interview.
type Report struct {
	Scores            types.HiringScores     `json:"scores"`
	Overall           float64                `json:"overall"`
	Domain            string                 `json:"domain"`
	ExperienceLevel   types.ExperienceLevel  `json:"experience_level"`
	TotalQuestions    int                    `json:"total_questions"`
	Tier              types.Tier             `json:"tier"`
	PerformanceScores []interview.TopicScore `json:"performance_scores"`
}

// Finalize normalizes the hiring accumulators by the number of questions asked and
// computes the weighted overall score. The state is read, never modified.
//
// The accumulators add less than one per answer, so normalized scores are a damped
// average rather than a value in [0,1].
func Finalize(state *interview.State) Report {
	total := state.TotalQuestions()
	scores := state.HiringScores.Scaled(total)

	return Report{
		Scores:            scores,
		Overall:           Overall(scores),
		Domain:            state.Domain(),
		ExperienceLevel:   state.ExperienceLevel(),
		TotalQuestions:    total,
		Tier:              state.Tier,
		PerformanceScores: state.PerformanceScores.Snapshot(),
	}
}

// Overall computes the weighted overall score from normalized scores.
func Overall(s types.HiringScores) float64 {
	return s.TechnicalKnowledge*TechnicalKnowledgeWeight +
		s.ProblemSolving*ProblemSolvingWeight +
		s.Communication*CommunicationWeight +
		s.ExperienceRelevance*ExperienceRelevanceWeight
}
