package parsing

import (
	"strings"

	"github.com/Graceson27/interview-bot/internal/types"
)

// skillAliases maps lowercased skill spellings to their canonical names
var skillAliases = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"py":         "Python",
	"tf":         "TensorFlow",
	"tensorflow": "TensorFlow",
	"pytorch":    "PyTorch",
	"c++":        "C++",
	"cpp":        "C++",
	"c#":         "C#",
	"aws":        "AWS",
	"gcp":        "GCP",
	"sql":        "SQL",
	"ml":         "Machine Learning",
}

// NormalizeSkillName maps a skill onto its canonical spelling. Known aliases win;
// single lowercase or all-caps words are title-cased; mixed case and multi-word
// names are kept as written.
func NormalizeSkillName(skillName string) string {
	name := strings.TrimSpace(skillName)
	if name == "" {
		return ""
	}

	lower := strings.ToLower(name)
	if canonical, ok := skillAliases[lower]; ok {
		return canonical
	}
	if strings.Contains(name, " ") {
		return name
	}

	upper := strings.ToUpper(name)
	switch {
	case name == lower, name == upper && len(name) > 1:
		return upper[:1] + lower[1:]
	default:
		return name
	}
}

// NormalizeSkills canonicalizes skill names and drops empties and duplicates,
// keeping first-seen order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		name := NormalizeSkillName(s)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// NormalizeProfile cleans a structured resume in place: skills and technologies are
// canonicalized, unnamed entries are dropped, projects are deduplicated by name and
// every list is non-nil.
func NormalizeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	profile.Skills = NormalizeSkills(profile.Skills)
	profile.DomainSpecificKnowledge = trimStrings(profile.DomainSpecificKnowledge)

	projects := make([]types.Project, 0, len(profile.Projects))
	seenProjects := make(map[string]bool, len(profile.Projects))
	for _, p := range profile.Projects {
		p.Name = strings.TrimSpace(p.Name)
		key := strings.ToLower(p.Name)
		if p.Name == "" || seenProjects[key] {
			continue
		}
		seenProjects[key] = true
		p.Description = strings.TrimSpace(p.Description)
		p.Technologies = NormalizeSkills(p.Technologies)
		projects = append(projects, p)
	}
	profile.Projects = projects

	internships := make([]types.Internship, 0, len(profile.Internships))
	for _, in := range profile.Internships {
		in.Company = strings.TrimSpace(in.Company)
		if in.Company == "" {
			continue
		}
		internships = append(internships, in)
	}
	profile.Internships = internships

	education := make([]types.Education, 0, len(profile.Education))
	for _, e := range profile.Education {
		e.Institution = strings.TrimSpace(e.Institution)
		if e.Institution == "" {
			continue
		}
		education = append(education, e)
	}
	profile.Education = education
}

func trimStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
