// Package types provides type definitions for structured data used throughout the resume-preview system.
package types

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ResumeData is the normalized content of one resume
type ResumeData struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experience     []Experience    `json:"experience,omitempty" validate:"dive"`
	Education      []Education     `json:"education,omitempty" validate:"dive"`
	Skills         []Skill         `json:"skills,omitempty" validate:"dive"`
	Projects       []Project       `json:"projects,omitempty" validate:"dive"`
	Certifications []Certification `json:"certifications,omitempty" validate:"dive"`
	Languages      []Language      `json:"languages,omitempty" validate:"dive"`
	CustomSections []CustomSection `json:"customSections,omitempty" validate:"dive"`
}

// PersonalInfo holds the scalar header fields
type PersonalInfo struct {
	FullName string `json:"fullName" validate:"required"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedIn,omitempty"`
	Website  string `json:"website,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// Experience is one work history entry
type Experience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company" validate:"required"`
	Position     string   `json:"position" validate:"required"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is one degree or course of study
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

// Skill is a named skill with optional grouping
type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

// Project is a portfolio entry
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

// Certification is a credential with its issuer
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Language is a spoken language and proficiency
type Language struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Proficiency string `json:"proficiency,omitempty"`
}

// CustomSection is a freeform named group of generic items
type CustomSection struct {
	ID    string       `json:"id"`
	Title string       `json:"title" validate:"required"`
	Items []CustomItem `json:"items,omitempty" validate:"dive"`
}

// CustomItem is a generic title/description/date entry
type CustomItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Validate validates the ResumeData using the validator.
func (d *ResumeData) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}

// Count returns the number of entries backing a section type.
// For custom sections it counts groups that have at least one item.
func (d *ResumeData) Count(t SectionType) int {
	switch t {
	case SectionSummary:
		if strings.TrimSpace(d.PersonalInfo.Summary) != "" {
			return 1
		}
		return 0
	case SectionExperience:
		return len(d.Experience)
	case SectionEducation:
		return len(d.Education)
	case SectionSkills:
		return len(d.Skills)
	case SectionProjects:
		return len(d.Projects)
	case SectionCertifications:
		return len(d.Certifications)
	case SectionLanguages:
		return len(d.Languages)
	case SectionCustom:
		n := 0
		for _, cs := range d.CustomSections {
			if len(cs.Items) > 0 {
				n++
			}
		}
		return n
	}
	return 0
}

// entityNamespace seeds the name-based IDs assigned by EnsureIDs
var entityNamespace = uuid.MustParse("6f1c2b9e-3d4a-5e7f-8a9b-0c1d2e3f4a5b")

// EnsureIDs returns a copy in which every repeated entity has a non-empty ID.
// Existing IDs are preserved. Missing ones become name-based UUIDs derived
// from the entity's kind and position, so the same input always yields the
// same keys and therefore the same rendered tree.
func (d ResumeData) EnsureIDs() ResumeData {
	out := d
	out.Experience = append([]Experience(nil), d.Experience...)
	for i := range out.Experience {
		fillID(&out.Experience[i].ID, "experience", i)
	}
	out.Education = append([]Education(nil), d.Education...)
	for i := range out.Education {
		fillID(&out.Education[i].ID, "education", i)
	}
	out.Skills = append([]Skill(nil), d.Skills...)
	for i := range out.Skills {
		fillID(&out.Skills[i].ID, "skills", i)
	}
	out.Projects = append([]Project(nil), d.Projects...)
	for i := range out.Projects {
		fillID(&out.Projects[i].ID, "projects", i)
	}
	out.Certifications = append([]Certification(nil), d.Certifications...)
	for i := range out.Certifications {
		fillID(&out.Certifications[i].ID, "certifications", i)
	}
	out.Languages = append([]Language(nil), d.Languages...)
	for i := range out.Languages {
		fillID(&out.Languages[i].ID, "languages", i)
	}
	out.CustomSections = make([]CustomSection, len(d.CustomSections))
	for i, cs := range d.CustomSections {
		fillID(&cs.ID, "custom", i)
		cs.Items = append([]CustomItem(nil), cs.Items...)
		for j := range cs.Items {
			fillID(&cs.Items[j].ID, "custom/"+cs.ID, j)
		}
		out.CustomSections[i] = cs
	}
	return out
}

func fillID(id *string, kind string, index int) {
	if *id == "" {
		*id = uuid.NewSHA1(entityNamespace, []byte(kind+"/"+strconv.Itoa(index))).String()
	}
}
