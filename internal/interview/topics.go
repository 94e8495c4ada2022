// Package interview holds the adaptive interview engine: the per-interview state, the
// difficulty escalator, intro analysis and the topic selector.
package interview

import "github.com/Graceson27/interview-bot/internal/types"

// TopicSet is an insertion-ordered set of topics.
type TopicSet struct {
	items []types.Topic
}

// NewTopicSet creates a set holding topics in the given order, skipping duplicates.
func NewTopicSet(topics ...types.Topic) *TopicSet {
	s := &TopicSet{}
	for _, t := range topics {
		s.Add(t)
	}
	return s
}

// Add appends t if it is not already present.
func (s *TopicSet) Add(t types.Topic) bool {
	if s.Contains(t) {
		return false
	}
	s.items = append(s.items, t)
	return true
}

// Remove deletes t, preserving the order of the rest.
func (s *TopicSet) Remove(t types.Topic) bool {
	for i, item := range s.items {
		if item == t {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports membership.
func (s *TopicSet) Contains(t types.Topic) bool {
	for _, item := range s.items {
		if item == t {
			return true
		}
	}
	return false
}

// PopFirst removes and returns the earliest inserted topic.
func (s *TopicSet) PopFirst() (types.Topic, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	t := s.items[0]
	s.items = s.items[1:]
	return t, true
}

// Len returns the number of topics.
func (s *TopicSet) Len() int { return len(s.items) }

// Empty reports whether the set has no topics.
func (s *TopicSet) Empty() bool { return len(s.items) == 0 }

// Items returns the topics in insertion order.
func (s *TopicSet) Items() []types.Topic {
	out := make([]types.Topic, len(s.items))
	copy(out, s.items)
	return out
}

// ProjectDepths counts questions asked per project, remembering the order projects
// were first seen.
type ProjectDepths struct {
	order []string
	depth map[string]int
}

// NewProjectDepths seeds every name at depth 0.
func NewProjectDepths(names ...string) *ProjectDepths {
	p := &ProjectDepths{depth: make(map[string]int)}
	for _, n := range names {
		p.ensure(n)
	}
	return p
}

func (p *ProjectDepths) ensure(name string) {
	if _, ok := p.depth[name]; !ok {
		p.order = append(p.order, name)
		p.depth[name] = 0
	}
}

// Get returns the depth for name; unknown projects are at 0.
func (p *ProjectDepths) Get(name string) int {
	return p.depth[name]
}

// Set overrides the depth for name, adding it if unseen. Negative values clamp to 0.
func (p *ProjectDepths) Set(name string, depth int) {
	p.ensure(name)
	if depth < 0 {
		depth = 0
	}
	p.depth[name] = depth
}

// Increment adds one question to name and returns the new depth.
func (p *ProjectDepths) Increment(name string) int {
	p.ensure(name)
	p.depth[name]++
	return p.depth[name]
}

// Known reports whether name has been seeded or asked about.
func (p *ProjectDepths) Known(name string) bool {
	_, ok := p.depth[name]
	return ok
}

// FirstBelow returns the first project, in insertion order, whose depth is under threshold.
func (p *ProjectDepths) FirstBelow(threshold int) (string, bool) {
	for _, n := range p.order {
		if p.depth[n] < threshold {
			return n, true
		}
	}
	return "", false
}

// Names returns project names in insertion order.
func (p *ProjectDepths) Names() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Len returns the number of tracked projects.
func (p *ProjectDepths) Len() int { return len(p.order) }

// TopicScore is one topic's latest performance score.
type TopicScore struct {
	Topic types.Topic `json:"topic"`
	Score float64     `json:"score"`
}

// ScoreBoard keeps the most recent score per topic in first-scored order.
type ScoreBoard struct {
	order  []types.Topic
	scores map[types.Topic]float64
}

// NewScoreBoard returns an empty board.
func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{scores: make(map[types.Topic]float64)}
}

// Set records score for topic, keeping the topic's original position.
func (b *ScoreBoard) Set(topic types.Topic, score float64) {
	if _, ok := b.scores[topic]; !ok {
		b.order = append(b.order, topic)
	}
	b.scores[topic] = score
}

// Get returns the score for topic.
func (b *ScoreBoard) Get(topic types.Topic) (float64, bool) {
	s, ok := b.scores[topic]
	return s, ok
}

// Best returns the highest scoring topic. Ties go to the topic scored first.
func (b *ScoreBoard) Best() (types.Topic, bool) {
	var best types.Topic
	found := false
	for _, t := range b.order {
		if !found || b.scores[t] > b.scores[best] {
			best = t
			found = true
		}
	}
	return best, found
}

// Len returns the number of scored topics.
func (b *ScoreBoard) Len() int { return len(b.order) }

// Snapshot returns the scores in first-scored order.
func (b *ScoreBoard) Snapshot() []TopicScore {
	out := make([]TopicScore, 0, len(b.order))
	for _, t := range b.order {
		out = append(out, TopicScore{Topic: t, Score: b.scores[t]})
	}
	return out
}
