package models

import (
	"fmt"

	"portfolio-admin/internal/common/errors"
	"portfolio-admin/internal/common/validation"
)

const (
	draft07     = "http://json-schema.org/draft-07/schema#"
	datePattern = `^\d{4}-\d{2}-\d{2}$`
)

// Schemas mirror the backend's bean validation so the CLI can reject a payload
// before it is sent. API modules never call these.
var (
	personalInfoSchema = validation.Schema{
		"$schema":  draft07,
		"type":     "object",
		"required": []string{"name", "email", "phone", "address", "city", "state", "zip", "country"},
		"properties": map[string]interface{}{
			"name":    validation.String(1),
			"email":   validation.Format("email"),
			"phone":   validation.Pattern(`^\d{10,11}$`),
			"address": validation.String(1),
			"city":    validation.String(1),
			"state":   validation.String(1),
			"zip":     validation.Pattern(`^\d{5}$`),
			"country": validation.String(1),
		},
	}

	projectSchema = validation.Schema{
		"$schema":  draft07,
		"type":     "object",
		"required": []string{"projectName", "projectDescription", "projectLink", "projectContentType", "projectTechnologies", "displayOrder"},
		"properties": map[string]interface{}{
			"projectName":         validation.String(1),
			"projectDescription":  validation.String(1),
			"projectLink":         validation.String(1),
			"projectContentType":  validation.Enum(string(ProjectImage), string(ProjectVideo)),
			"projectTechnologies": validation.String(1),
			"displayOrder":        validation.Integer(1),
		},
	}

	jobHistorySchema = datedSchema(
		[]string{"companyName", "jobTitle", "startDate", "isCurrent", "description", "location", "displayOrder"},
		map[string]interface{}{
			"companyName":  validation.String(1),
			"jobTitle":     validation.String(1),
			"startDate":    validation.Pattern(datePattern),
			"isCurrent":    validation.Boolean(),
			"description":  validation.String(1),
			"location":     validation.String(1),
			"displayOrder": validation.Integer(1),
		},
	)

	educationHistorySchema = datedSchema(
		[]string{"schoolName", "degree", "fieldOfStudy", "startDate", "isCurrent", "description", "location", "gpa", "displayOrder"},
		map[string]interface{}{
			"schoolName":   validation.String(1),
			"degree":       validation.String(1),
			"fieldOfStudy": validation.String(1),
			"startDate":    validation.Pattern(datePattern),
			"isCurrent":    validation.Boolean(),
			"description":  validation.String(1),
			"location":     validation.String(1),
			"gpa":          validation.Pattern(`^\d{1,3}\.\d{2}$`),
			"displayOrder": validation.Integer(1),
		},
	)

	professionalSkillSchema = validation.Schema{
		"$schema":  draft07,
		"type":     "object",
		"required": []string{"skillName", "skillLevel", "displayOrder"},
		"properties": map[string]interface{}{
			"skillName":    validation.String(1),
			"skillLevel":   validation.Enum(string(SkillBeginner), string(SkillIntermediate), string(SkillAdvanced)),
			"displayOrder": validation.Integer(1),
		},
	}

	projectDetailContentSchema = validation.Schema{
		"$schema":  draft07,
		"type":     "object",
		"required": []string{"projectId", "projectDetailContentType", "displayOrder"},
		"properties": map[string]interface{}{
			"projectId":                validation.String(1),
			"projectDetailContentType": validation.Enum(string(DetailText), string(DetailImage), string(DetailVideo)),
			"displayOrder":             validation.Integer(1),
		},
		// TEXT blocks carry their HTML inline; media blocks get their URL from the upload.
		"if": map[string]interface{}{
			"properties": map[string]interface{}{
				"projectDetailContentType": map[string]interface{}{"const": string(DetailText)},
			},
		},
		"then": map[string]interface{}{
			"required":   []string{"projectDetailContent"},
			"properties": map[string]interface{}{"projectDetailContent": validation.String(1)},
		},
	}
)

// datedSchema adds the rule shared by job and education history: endDate is
// required unless isCurrent.
func datedSchema(required []string, props map[string]interface{}) validation.Schema {
	props["endDate"] = map[string]interface{}{
		"type": []string{"string", "null"},
	}
	return validation.Schema{
		"$schema":    draft07,
		"type":       "object",
		"required":   required,
		"properties": props,
		"if": map[string]interface{}{
			"properties": map[string]interface{}{
				"isCurrent": map[string]interface{}{"const": false},
			},
		},
		"then": map[string]interface{}{
			"properties": map[string]interface{}{
				"endDate": validation.Pattern(datePattern),
			},
		},
	}
}

func validate(kind string, schema validation.Schema, doc interface{}) error {
	res, err := validation.Validate(schema, doc)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("%s: %v", kind, err))
	}
	if !res.Valid {
		e := errors.NewValidationError(res.Error())
		e.Metadata = map[string]interface{}{"entity": kind, "errors": res.Errors}
		return e
	}
	return nil
}

func (p PersonalInfo) Validate() error {
	return validate("personal-info", personalInfoSchema, p)
}

func (p Project) Validate() error {
	return validate("project", projectSchema, p)
}

func (j JobHistory) Validate() error {
	return validate("job-history", jobHistorySchema, j)
}

func (e EducationHistory) Validate() error {
	return validate("education-history", educationHistorySchema, e)
}

func (s ProfessionalSkill) Validate() error {
	return validate("professional-skill", professionalSkillSchema, s)
}

func (d ProjectDetailContent) Validate() error {
	return validate("project-detail-content", projectDetailContentSchema, d)
}
