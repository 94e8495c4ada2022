package types

import (
	"github.com/go-playground/validator/v10"
)

// ResumeProfile is the structured view of a candidate's resume produced by the
// resume structuring service.
type ResumeProfile struct {
	Skills                  []string     `json:"skills" validate:"dive,required"`
	Projects                []Project    `json:"projects" validate:"dive"`
	Internships             []Internship `json:"internships" validate:"dive"`
	Education               []Education  `json:"education" validate:"dive"`
	DomainSpecificKnowledge []string     `json:"domain_specific_knowledge" validate:"dive,required"`
}

// Project is a named project from the resume.
type Project struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Internship is a single internship entry.
type Internship struct {
	Company     string `json:"company" validate:"required"`
	Role        string `json:"role,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree,omitempty"`
	Year        string `json:"year,omitempty"`
}

// EmptyResumeProfile returns a profile whose every list is empty but non-nil.
// It is the fallback when resume structuring fails.
func EmptyResumeProfile() *ResumeProfile {
	return &ResumeProfile{
		Skills:                  []string{},
		Projects:                []Project{},
		Internships:             []Internship{},
		Education:               []Education{},
		DomainSpecificKnowledge: []string{},
	}
}

// Validate validates the ResumeProfile using the validator.
func (r *ResumeProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ProjectNames returns project names in resume order.
func (r *ResumeProfile) ProjectNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Projects))
	for _, p := range r.Projects {
		names = append(names, p.Name)
	}
	return names
}

// FindProject returns the project with the given name, or nil.
func (r *ResumeProfile) FindProject(name string) *Project {
	if r == nil {
		return nil
	}
	for i := range r.Projects {
		if r.Projects[i].Name == name {
			return &r.Projects[i]
		}
	}
	return nil
}

// IsEmpty reports whether the profile carries no information at all.
func (r *ResumeProfile) IsEmpty() bool {
	return r == nil || (len(r.Skills) == 0 && len(r.Projects) == 0 && len(r.Internships) == 0 &&
		len(r.Education) == 0 && len(r.DomainSpecificKnowledge) == 0)
}
