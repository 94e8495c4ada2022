package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
	requests []llm.Request
}

func (g *stubGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	g.requests = append(g.requests, req)
	return g.response, g.err
}

const structuredResponse = "Here is the profile:\n```json\n" + `{
  "skills": ["golang", "Docker", "golang"],
  "projects": [{"name": "Alpha", "description": "Rate limiter", "technologies": ["go"]}],
  "internships": [{"company": "Acme", "role": "SRE intern"}],
  "education": [{"institution": "State University", "degree": "BSc", "year": "2024"}],
  "domain_specific_knowledge": ["distributed systems"]
}` + "\n```"

func TestStructure_Success(t *testing.T) {
	gen := &stubGenerator{response: structuredResponse}
	s := NewStructurer(gen)

	profile, err := s.Structure(context.Background(), "Jane Doe\nBuilt Alpha in Go")
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Docker"}, profile.Skills)
	assert.Equal(t, []string{"Alpha"}, profile.ProjectNames())
	assert.Equal(t, []string{"Go"}, profile.Projects[0].Technologies)
	assert.Equal(t, "Acme", profile.Internships[0].Company)
	assert.Equal(t, "2024", profile.Education[0].Year)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, llm.PurposeStructure, req.Purpose)
	assert.Equal(t, llm.TierAdvanced, req.Tier)
	assert.Contains(t, req.Prompt, "Built Alpha in Go")
	assert.Contains(t, req.Prompt, "domain_specific_knowledge")
}

func TestStructure_EmptyTextSkipsService(t *testing.T) {
	gen := &stubGenerator{}
	profile, err := NewStructurer(gen).Structure(context.Background(), "  \n ")
	require.NoError(t, err)
	assert.True(t, profile.IsEmpty())
	assert.Empty(t, gen.requests)
}

func TestStructure_Errors(t *testing.T) {
	tests := []struct {
		name     string
		response string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "no json",
			response: "I could not read that resume.",
			check: func(t *testing.T, err error) {
				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr))
			},
		},
		{
			name:     "missing list",
			response: `{"skills": [], "projects": [], "internships": [], "education": []}`,
			check: func(t *testing.T, err error) {
				var validationErr *ValidationError
				assert.True(t, errors.As(err, &validationErr))
			},
		},
		{
			name:     "project without name",
			response: `{"skills": [], "projects": [{"description": "x"}], "internships": [], "education": [], "domain_specific_knowledge": []}`,
			check: func(t *testing.T, err error) {
				var validationErr *ValidationError
				assert.True(t, errors.As(err, &validationErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStructurer(&stubGenerator{response: tt.response}).Structure(context.Background(), "resume")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestStructure_ServiceError(t *testing.T) {
	gen := &stubGenerator{err: llm.ErrDegraded}
	_, err := NewStructurer(gen).Structure(context.Background(), "resume")
	assert.ErrorIs(t, err, llm.ErrDegraded)
}

func TestStructure_TruncatesToBudget(t *testing.T) {
	budget, err := NewTokenBudget(5)
	require.NoError(t, err)

	gen := &stubGenerator{response: structuredResponse}
	_, err = NewStructurer(gen, WithTokenBudget(budget)).Structure(context.Background(),
		"Jane Doe\nSkills: Go\nThis final line about Kubernetes operators is far beyond the budget")
	require.NoError(t, err)
	assert.NotContains(t, gen.requests[0].Prompt, "Kubernetes operators")
}

func TestParseResume_AlwaysReturnsProfile(t *testing.T) {
	profile := ParseResume(context.Background(), NewStructurer(llm.Unavailable{}), "resume text")
	require.NotNil(t, profile)
	assert.True(t, profile.IsEmpty())
	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.Projects)

	profile = ParseResume(context.Background(), NewStructurer(&stubGenerator{response: structuredResponse}), "resume text")
	assert.Equal(t, []string{"Alpha"}, profile.ProjectNames())
}

func TestStructure_NilGeneratorIsUnavailable(t *testing.T) {
	_, err := NewStructurer(nil).Structure(context.Background(), "resume text")
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}
