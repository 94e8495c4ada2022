package interview

import (
	"strings"

	"github.com/Graceson27/interview-bot/internal/types"
)

// maxIntroDepth caps how deep an introduction alone can mark a topic.
const maxIntroDepth = 3

var introKeywords = map[types.Topic][]string{
	types.TopicProjects:    {"project", "built", "developed", "implemented"},
	types.TopicInternships: {"intern", "trainee", "placement"},
	types.TopicSkills:      {"skill", "proficient", "familiar with", "experienced in", "expertise"},
}

// IntroAnalysis records what the candidate's self-introduction touched on.
type IntroAnalysis struct {
	Depth   map[types.Topic]int      `json:"depth"`
	Matches map[types.Topic][]string `json:"matches"`
}

// AnalyzeIntro counts the distinct terms of each topic mentioned in intro: topic
// keywords plus the resume's project names, internship companies and skills. The count,
// capped at 3, becomes the topic's depth level. A topic at depth 2 or more moves to
// covered. A topic at depth 1 only leaves remaining, so it sits in neither set until
// the selector asks about it explicitly.
func AnalyzeIntro(state *State, intro string, profile *types.ResumeProfile) IntroAnalysis {
	text := strings.ToLower(intro)
	analysis := IntroAnalysis{
		Depth:   make(map[types.Topic]int),
		Matches: make(map[types.Topic][]string),
	}
	if strings.TrimSpace(text) == "" {
		return analysis
	}

	for _, topic := range types.AllTopics() {
		matches := matchTerms(text, termsFor(topic, profile))
		depth := len(matches)
		if depth > maxIntroDepth {
			depth = maxIntroDepth
		}
		if depth == 0 {
			continue
		}

		analysis.Depth[topic] = depth
		analysis.Matches[topic] = matches
		state.DepthLevels[topic] = depth

		if depth >= 2 {
			state.MarkCovered(topic)
		} else {
			state.RemainingTopics.Remove(topic)
		}
	}
	return analysis
}

func termsFor(topic types.Topic, profile *types.ResumeProfile) []string {
	terms := append([]string(nil), introKeywords[topic]...)
	if profile == nil {
		return terms
	}
	switch topic {
	case types.TopicProjects:
		terms = append(terms, profile.ProjectNames()...)
	case types.TopicInternships:
		for _, in := range profile.Internships {
			terms = append(terms, in.Company)
		}
	case types.TopicSkills:
		terms = append(terms, profile.Skills...)
	}
	return terms
}

// matchTerms returns the distinct terms found in text, in term order.
func matchTerms(text string, terms []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		if containsTerm(text, t) {
			out = append(out, term)
		}
	}
	return out
}

// containsTerm finds term at a word start. Terms shorter than four bytes must also end
// at a word boundary so that "go" does not match "good".
func containsTerm(text, term string) bool {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		startOK := start == 0 || !isWordByte(text[start-1])
		endOK := len(term) >= 4 || end == len(text) || !isWordByte(text[end])
		if startOK && endOK {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
