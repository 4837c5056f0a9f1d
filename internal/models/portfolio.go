package models

import "strings"

// PersonalInfo is the site owner's contact card. The UI treats the first record as the only one.
type PersonalInfo struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
	Country        string `json:"country"`
	WorkTitle      string `json:"workTitle,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Resume         string `json:"resume,omitempty"`
}

// Project is a portfolio entry. ProjectContent is the media URL the backend
// stores after an upload.
type Project struct {
	ID                  string             `json:"id,omitempty"`
	ProjectName         string             `json:"projectName"`
	ProjectDescription  string             `json:"projectDescription"`
	ProjectLink         string             `json:"projectLink"`
	ProjectLink2        string             `json:"projectLink2,omitempty"`
	ProjectLink3        string             `json:"projectLink3,omitempty"`
	ProjectContentType  ProjectContentType `json:"projectContentType"`
	ProjectContent      string             `json:"projectContent,omitempty"`
	ProjectTechnologies string             `json:"projectTechnologies"`
	DisplayOrder        int                `json:"displayOrder"`
}

// Technologies splits the comma-joined technology list.
func (p Project) Technologies() []string {
	var out []string
	for _, t := range strings.Split(p.ProjectTechnologies, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JobHistory is one position. EndDate is nil while IsCurrent.
type JobHistory struct {
	ID           string  `json:"id,omitempty"`
	CompanyName  string  `json:"companyName"`
	JobTitle     string  `json:"jobTitle"`
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate"`
	IsCurrent    bool    `json:"isCurrent"`
	Description  string  `json:"description"`
	Location     string  `json:"location"`
	DisplayOrder int     `json:"displayOrder"`
	CompanyLogo  string  `json:"companyLogo,omitempty"`
}

type EducationHistory struct {
	ID           string  `json:"id,omitempty"`
	SchoolName   string  `json:"schoolName"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"fieldOfStudy"`
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate"`
	IsCurrent    bool    `json:"isCurrent"`
	Description  string  `json:"description"`
	Location     string  `json:"location"`
	GPA          string  `json:"gpa"`
	DisplayOrder int     `json:"displayOrder"`
}

type ProfessionalSkill struct {
	ID           string     `json:"id,omitempty"`
	SkillName    string     `json:"skillName"`
	SkillLevel   SkillLevel `json:"skillLevel"`
	DisplayOrder int        `json:"displayOrder"`
}

// ProjectDetailContent is one block on a project page: HTML for TEXT, a media URL otherwise.
type ProjectDetailContent struct {
	ID                       string            `json:"id,omitempty"`
	ProjectID                string            `json:"projectId"`
	ProjectDetailContentType DetailContentType `json:"projectDetailContentType"`
	ProjectDetailContent     string            `json:"projectDetailContent"`
	DisplayOrder             int               `json:"displayOrder"`
}

// StringPtr is a convenience for optional date fields.
func StringPtr(s string) *string {
	return &s
}
