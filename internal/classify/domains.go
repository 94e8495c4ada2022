// Package classify labels a resume with an engineering domain and an experience level.
package classify

import (
	"sort"
	"strings"
)

// GeneralDomain is used when nothing more specific matches.
const GeneralDomain = "general"

// domainKeywords is the keyword table used for the local domain guess. Order breaks ties.
var domainKeywords = []struct {
	Domain   string
	Keywords []string
}{
	{"data_science", []string{"machine learning", "deep learning", "pandas", "numpy", "tensorflow", "pytorch", "scikit", "data analysis", "statistics", "nlp", "regression"}},
	{"web_development", []string{"react", "angular", "vue", "javascript", "typescript", "html", "css", "node.js", "django", "flask", "rest api", "frontend", "backend"}},
	{"mobile_dev", []string{"android", "ios", "kotlin", "swift", "flutter", "react native", "mobile app", "xcode"}},
	{"devops", []string{"docker", "kubernetes", "terraform", "ansible", "jenkins", "ci/cd", "aws", "azure", "gcp", "prometheus", "helm"}},
	{"cybersecurity", []string{"security", "penetration testing", "vulnerability", "cryptography", "firewall", "malware", "siem", "owasp", "threat"}},
	{"embedded", []string{"embedded", "microcontroller", "firmware", "rtos", "arduino", "raspberry pi", "fpga", "verilog", "stm32"}},
	{"mechanical", []string{"solidworks", "autocad", "cad", "thermodynamics", "fluid mechanics", "ansys", "catia", "manufacturing"}},
	{"electrical", []string{"circuit", "pcb", "power systems", "matlab", "simulink", "analog", "signal processing", "electronics"}},
}

// Domains returns the known domain labels in table order.
func Domains() []string {
	out := make([]string, 0, len(domainKeywords))
	for _, d := range domainKeywords {
		out = append(out, d.Domain)
	}
	return out
}

// KnownDomain reports whether label is one of Domains or GeneralDomain.
func KnownDomain(label string) bool {
	if label == GeneralDomain {
		return true
	}
	for _, d := range domainKeywords {
		if d.Domain == label {
			return true
		}
	}
	return false
}

// DomainMatch is the keyword hit count for one domain.
type DomainMatch struct {
	Domain string
	Hits   int
}

// KeywordMatches counts keyword hits per domain, best first. Domains without hits are
// omitted.
func KeywordMatches(text string) []DomainMatch {
	lower := strings.ToLower(text)
	matches := make([]DomainMatch, 0, len(domainKeywords))
	for _, d := range domainKeywords {
		hits := 0
		for _, kw := range d.Keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > 0 {
			matches = append(matches, DomainMatch{Domain: d.Domain, Hits: hits})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Hits > matches[j].Hits })
	return matches
}

// KeywordDomain returns the best keyword match, or GeneralDomain when nothing matches.
func KeywordDomain(text string) string {
	matches := KeywordMatches(text)
	if len(matches) == 0 {
		return GeneralDomain
	}
	return matches[0].Domain
}

// normalizeLabel maps a free-text label such as "Web Development." onto table form.
func normalizeLabel(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, "\"'`.*: ")
	label = strings.NewReplacer(" ", "_", "-", "_").Replace(label)
	return label
}
