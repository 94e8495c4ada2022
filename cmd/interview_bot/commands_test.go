package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Graceson27/interview-bot/internal/config"
	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/observability"
	"github.com/Graceson27/interview-bot/internal/session"
	"github.com/Graceson27/interview-bot/internal/types"
)

func TestInterviewCommand_CandidateExit(t *testing.T) {
	resume := writeResume(t, "resume.txt", resumeText)
	transcript := filepath.Join(t.TempDir(), "out", "transcript.json")

	stdin := "Hi, I built Alpha, a rate limiter in Go.\nI used a token bucket per tenant.\nexit\n"
	stdout, _ := execute(t, cannedGenerator{structure: profileJSON}, stdin,
		"interview", "--resume", resume, "--no-color", "--transcript", transcript)

	assert.Contains(t, stdout, introPrompt)
	assert.Contains(t, stdout, "Q1: How did you design Alpha?")
	assert.Contains(t, stdout, "Q2: ")
	assert.Contains(t, stdout, "(candidate_exit)")
	assert.Contains(t, stdout, "== Interview feedback ==")
	assert.Contains(t, stdout, "Solid answers about Alpha.")
	assert.Contains(t, stdout, "Recommendation: ")
	assert.NotContains(t, stdout, "Error:")

	data, err := os.ReadFile(transcript)
	require.NoError(t, err)
	var result session.Result
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, session.StopCandidateExit, result.Reason)
	assert.Equal(t, "devops", result.Report.Domain)
	require.Len(t, result.Transcript, 2)
	assert.Equal(t, "Alpha", result.Transcript[0].ProjectName)
}

func TestInterviewCommand_MaxQuestionsFlag(t *testing.T) {
	resume := writeResume(t, "resume.md", resumeText)

	stdin := "I built Alpha.\none\ntwo\nthree\nfour\n"
	stdout, _ := execute(t, cannedGenerator{structure: profileJSON}, stdin,
		"interview", "--resume", resume, "--no-color", "--max-questions", "3")

	assert.Contains(t, stdout, "Q3: ")
	assert.NotContains(t, stdout, "Q4: ")
	assert.Contains(t, stdout, "3 questions asked (question_limit)")
}

func TestInterviewCommand_PromptsForResumePath(t *testing.T) {
	resume := writeResume(t, "resume.txt", resumeText)

	stdin := resume + "\nexit\n"
	stdout, _ := execute(t, cannedGenerator{structure: profileJSON}, stdin, "interview", "--no-color")

	assert.Contains(t, stdout, "Path or URL of your resume")
	assert.Contains(t, stdout, "0 questions asked (candidate_exit)")
}

func TestInterviewCommand_ErrorsAreReported(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing resume",
			args: []string{"interview", "--no-color", "--resume", filepath.Join(t.TempDir(), "missing.txt")},
			want: "resume file not found",
		},
		{
			name: "unknown provider",
			args: []string{"interview", "--no-color", "--provider", "watson"},
			want: "'Provider' failed 'oneof' validation",
		},
		{
			name: "unsupported format",
			args: []string{"interview", "--no-color", "--resume", writeResume(t, "resume.docx", "x")},
			want: "unsupported document format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _ := execute(t, cannedGenerator{structure: profileJSON}, "", tt.args...)
			assert.Contains(t, stdout, "Error: ")
			assert.Contains(t, stdout, tt.want)
		})
	}
}

func TestInterviewCommand_NoIntroduction(t *testing.T) {
	resume := writeResume(t, "resume.txt", resumeText)

	stdout, _ := execute(t, cannedGenerator{structure: profileJSON}, "", "interview", "--no-color", "--resume", resume)
	assert.Contains(t, stdout, "no introduction given")
	assert.NotContains(t, stdout, "Q1:")
}

func TestInterviewCommand_Verbose(t *testing.T) {
	resume := writeResume(t, "resume.txt", resumeText)

	stdin := "I built Alpha.\nexit\n"
	stdout, _ := execute(t, cannedGenerator{structure: profileJSON}, stdin,
		"interview", "--no-color", "--verbose", "--resume", resume)

	assert.Contains(t, stdout, "Alpha")
	assert.Contains(t, stdout, "devops")
	assert.Contains(t, stdout, "[turn 1]")
}

func TestParseResumeCommand(t *testing.T) {
	resume := writeResume(t, "resume.txt", resumeText)

	stdout, stderr := execute(t, cannedGenerator{structure: "```json\n" + profileJSON + "\n```"}, "",
		"parse-resume", "--no-color", "--resume", resume)
	assert.NotContains(t, stderr, "Error:")

	var profile types.ResumeProfile
	require.NoError(t, json.Unmarshal([]byte(stdout), &profile))
	assert.Equal(t, []string{"Alpha"}, profile.ProjectNames())
	assert.Contains(t, profile.Skills, "Kubernetes")
}

func TestParseResumeCommand_WritesFile(t *testing.T) {
	resume := writeResume(t, "resume.txt", resumeText)
	out := filepath.Join(t.TempDir(), "profile.json")

	_, stderr := execute(t, cannedGenerator{structure: profileJSON}, "",
		"parse-resume", "--no-color", "--resume", resume, "--out", out)
	assert.Contains(t, stderr, "Output: "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Alpha"`)
}

func TestParseResumeCommand_Errors(t *testing.T) {
	resume := writeResume(t, "resume.txt", resumeText)

	tests := []struct {
		name      string
		structure string
		want      string
	}{
		{name: "schema mismatch", structure: `{"skills": "Go"}`, want: "does not validate against schema"},
		{name: "no json", structure: "I cannot help with that.", want: "was not a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr := execute(t, cannedGenerator{structure: tt.structure}, "",
				"parse-resume", "--no-color", "--resume", resume)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestClassifyCommand(t *testing.T) {
	resume := writeResume(t, "resume.txt", resumeText)

	stdout, _ := execute(t, cannedGenerator{structure: profileJSON}, "", "classify", "--no-color", "--resume", resume)
	assert.Contains(t, stdout, "Domain: devops")
	assert.Contains(t, stdout, "Experience: experienced")
}

func TestClassifyCommand_FallsBackWithoutModel(t *testing.T) {
	resume := writeResume(t, "resume.txt", resumeText)

	stdout, _ := execute(t, llm.Unavailable{}, "", "classify", "--no-color", "--verbose", "--resume", resume)
	assert.Contains(t, stdout, "Domain: devops")
	assert.Contains(t, stdout, "Experience: experienced")
	assert.Contains(t, stdout, "keyword hits devops")
}

func TestLoadSettings_ConfigFileAndFlags(t *testing.T) {
	resume := writeResume(t, "resume.txt", resumeText)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("provider: openai\nmax_questions: 6\nresume: "+resume+"\n"), 0644))

	var got config.Config
	opts := &rootOptions{}
	root := newRootCmd(staticGenerator(llm.Unavailable{}))
	cmd, _, err := root.Find([]string{"classify"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--provider", "ANTHROPIC"}))
	opts.configPath = cfgPath
	opts.provider = "ANTHROPIC"

	got, err = loadSettings(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", got.Provider)
	assert.Equal(t, 6, got.MaxQuestions)
	assert.Equal(t, resume, got.Resume)
	assert.Equal(t, config.DefaultMaxQuestionsPerTier, got.MaxQuestionsPerTier)
}

func TestProviderGenerator_FallsBackWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg := config.Defaults()

	gen, closeGen := providerGenerator(t.Context(), cfg, observability.NewMetrics(), slog.New(slog.DiscardHandler))
	defer closeGen()
	assert.IsType(t, llm.Unavailable{}, gen)
}

func TestClassifyCommand_ResumeURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(resumeText))
	}))
	defer server.Close()

	stdout, _ := execute(t, llm.Unavailable{}, "", "classify", "--no-color", "--resume", server.URL+"/cv")
	assert.Contains(t, stdout, "Domain: devops")
}
