package models

import (
	commonhttp "portfolio-admin/internal/common/http"
)

// Multipart file field names accepted by the with-media endpoints.
const (
	FieldProfilePicture = "profilePicture"
	FieldResume         = "resume"
	FieldCompanyLogo    = "companyLogo"
	FieldMediaFile      = "mediaFile"
	FieldTextContent    = "textContent"
)

// The ToForm methods write scalar fields only; callers attach files afterwards.
// Field order follows the admin dashboard.

func (p PersonalInfo) ToForm() *commonhttp.Form {
	return commonhttp.NewForm().
		Set("name", p.Name).
		Set("email", p.Email).
		Set("phone", p.Phone).
		Set("address", p.Address).
		Set("city", p.City).
		Set("state", p.State).
		Set("zip", p.Zip).
		Set("country", p.Country).
		Set("workTitle", p.WorkTitle)
}

func (p Project) ToForm() *commonhttp.Form {
	return commonhttp.NewForm().
		Set("projectName", p.ProjectName).
		Set("projectDescription", p.ProjectDescription).
		Set("projectLink", p.ProjectLink).
		Set("projectLink2", p.ProjectLink2).
		Set("projectLink3", p.ProjectLink3).
		Set("projectContentType", string(p.ProjectContentType)).
		Set("projectTechnologies", p.ProjectTechnologies).
		SetInt("displayOrder", p.DisplayOrder)
}

// ToForm omits endDate when it is unset.
func (j JobHistory) ToForm() *commonhttp.Form {
	form := commonhttp.NewForm().
		Set("companyName", j.CompanyName).
		Set("jobTitle", j.JobTitle).
		Set("startDate", j.StartDate)
	if j.EndDate != nil && *j.EndDate != "" {
		form.Set("endDate", *j.EndDate)
	}
	return form.
		SetBool("isCurrent", j.IsCurrent).
		Set("description", j.Description).
		Set("location", j.Location).
		SetInt("displayOrder", j.DisplayOrder)
}

// ToForm sends TEXT blocks inline as textContent; media blocks expect a mediaFile.
func (d ProjectDetailContent) ToForm() *commonhttp.Form {
	form := commonhttp.NewForm().
		Set("projectId", d.ProjectID).
		Set("projectDetailContentType", string(d.ProjectDetailContentType)).
		SetInt("displayOrder", d.DisplayOrder)
	if d.ProjectDetailContentType == DetailText {
		form.Set(FieldTextContent, d.ProjectDetailContent)
	}
	return form
}
