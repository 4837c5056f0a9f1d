package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-admin/internal/common/errors"
)

// ==========================
// Helpers
// ==========================

func TestSkillLevel_Stars(t *testing.T) {
	tests := []struct {
		level SkillLevel
		stars int
	}{
		{SkillBeginner, 1},
		{SkillIntermediate, 2},
		{SkillAdvanced, 3},
		{SkillLevel("EXPERT"), 0},
		{SkillLevel(""), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.stars, tt.level.Stars(), string(tt.level))
	}
	assert.Equal(t, "Intermediate", SkillIntermediate.Label())
}

func TestProject_Technologies(t *testing.T) {
	p := Project{ProjectTechnologies: "Go, React ,, Redis "}
	assert.Equal(t, []string{"Go", "React", "Redis"}, p.Technologies())
	assert.Empty(t, Project{}.Technologies())
}

func TestSortByDisplayOrder_Stable(t *testing.T) {
	skills := []ProfessionalSkill{
		{SkillName: "c", DisplayOrder: 3},
		{SkillName: "a1", DisplayOrder: 1},
		{SkillName: "b", DisplayOrder: 2},
		{SkillName: "a2", DisplayOrder: 1},
	}
	SortByDisplayOrder(skills)

	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.SkillName
	}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, names)
}

func TestForProject(t *testing.T) {
	blocks := []ProjectDetailContent{
		{ID: "1", ProjectID: "p1", DisplayOrder: 2},
		{ID: "2", ProjectID: "p2", DisplayOrder: 1},
		{ID: "3", ProjectID: "p1", DisplayOrder: 1},
	}
	got := ForProject(blocks, "p1")
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "1", got[1].ID)
	assert.Empty(t, ForProject(blocks, "missing"))
}

func TestFirstPersonalInfo(t *testing.T) {
	assert.Nil(t, FirstPersonalInfo(nil))
	first := FirstPersonalInfo([]PersonalInfo{{Name: "A"}, {Name: "B"}})
	require.NotNil(t, first)
	assert.Equal(t, "A", first.Name)
}

func TestJobHistory_NullEndDateOnWire(t *testing.T) {
	data, err := json.Marshal(JobHistory{CompanyName: "Acme", IsCurrent: true})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"endDate":null`)
	assert.NotContains(t, string(data), `"id"`)
}

// ==========================
// Forms
// ==========================

func formValues(t *testing.T, names []string, get func(string) (string, bool)) map[string]string {
	out := map[string]string{}
	for _, n := range names {
		v, ok := get(n)
		require.True(t, ok, n)
		out[n] = v
	}
	return out
}

func TestProject_ToForm(t *testing.T) {
	form := Project{
		ProjectName:         "Demo",
		ProjectDescription:  "<p>hi</p>",
		ProjectLink:         "https://example.com",
		ProjectContentType:  ProjectImage,
		ProjectTechnologies: "Go,React",
		DisplayOrder:        4,
	}.ToForm()

	assert.Equal(t, []string{
		"projectName", "projectDescription", "projectLink", "projectLink2", "projectLink3",
		"projectContentType", "projectTechnologies", "displayOrder",
	}, form.FieldNames())

	values := formValues(t, form.FieldNames(), form.Value)
	assert.Equal(t, "", values["projectLink2"])
	assert.Equal(t, "", values["projectLink3"])
	assert.Equal(t, "IMAGE", values["projectContentType"])
	assert.Equal(t, "4", values["displayOrder"])
}

func TestJobHistory_ToForm(t *testing.T) {
	current := JobHistory{CompanyName: "Acme", StartDate: "2022-01-01", IsCurrent: true, DisplayOrder: 1}.ToForm()
	assert.NotContains(t, current.FieldNames(), "endDate")
	v, _ := current.Value("isCurrent")
	assert.Equal(t, "true", v)

	past := JobHistory{CompanyName: "Acme", StartDate: "2020-01-01", EndDate: StringPtr("2021-06-30"), DisplayOrder: 2}.ToForm()
	v, ok := past.Value("endDate")
	assert.True(t, ok)
	assert.Equal(t, "2021-06-30", v)
	v, _ = past.Value("isCurrent")
	assert.Equal(t, "false", v)
}

func TestPersonalInfo_ToForm_EmptyWorkTitle(t *testing.T) {
	form := PersonalInfo{Name: "Berkay"}.ToForm()
	v, ok := form.Value("workTitle")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Len(t, form.FieldNames(), 9)
}

func TestProjectDetailContent_ToForm(t *testing.T) {
	text := ProjectDetailContent{ProjectID: "p1", ProjectDetailContentType: DetailText, ProjectDetailContent: "<p>x</p>", DisplayOrder: 1}.ToForm()
	v, ok := text.Value(FieldTextContent)
	assert.True(t, ok)
	assert.Equal(t, "<p>x</p>", v)

	image := ProjectDetailContent{ProjectID: "p1", ProjectDetailContentType: DetailImage, DisplayOrder: 2}.ToForm()
	_, ok = image.Value(FieldTextContent)
	assert.False(t, ok)
	assert.Equal(t, []string{"projectId", "projectDetailContentType", "displayOrder"}, image.FieldNames())
}

// ==========================
// Validation
// ==========================

func validPersonalInfo() PersonalInfo {
	return PersonalInfo{
		Name: "Berkay", Email: "b@example.com", Phone: "5551234567",
		Address: "1 Main St", City: "Austin", State: "TX", Zip: "73301", Country: "US",
	}
}

func TestPersonalInfo_Validate(t *testing.T) {
	require.NoError(t, validPersonalInfo().Validate())

	bad := validPersonalInfo()
	bad.Phone = "123"
	bad.Zip = "ABCDE"
	err := bad.Validate()
	require.Error(t, err)

	stdErr := errors.Normalize(err)
	assert.Equal(t, errors.ErrCodeValidation, stdErr.Code)
	assert.Contains(t, stdErr.Details, "phone")
	assert.Contains(t, stdErr.Details, "zip")
}

func TestEducationHistory_Validate(t *testing.T) {
	edu := EducationHistory{
		SchoolName: "UT", Degree: "BS", FieldOfStudy: "CS", StartDate: "2018-08-20",
		EndDate: StringPtr("2022-05-15"), Description: "d", Location: "Austin",
		GPA: "3.75", DisplayOrder: 1,
	}
	require.NoError(t, edu.Validate())

	edu.GPA = "3.7"
	assert.Error(t, edu.Validate())
}

func TestDatedEntities_EndDateRequiredUnlessCurrent(t *testing.T) {
	job := JobHistory{
		CompanyName: "Acme", JobTitle: "Engineer", StartDate: "2022-01-01",
		Description: "d", Location: "Remote", DisplayOrder: 1,
	}

	err := job.Validate()
	require.Error(t, err)
	assert.Contains(t, errors.Normalize(err).Details, "endDate")

	job.IsCurrent = true
	assert.NoError(t, job.Validate())

	job.IsCurrent = false
	job.EndDate = StringPtr("2023-01-01")
	assert.NoError(t, job.Validate())
}

func TestProfessionalSkill_Validate(t *testing.T) {
	assert.NoError(t, ProfessionalSkill{SkillName: "Go", SkillLevel: SkillAdvanced, DisplayOrder: 1}.Validate())
	assert.Error(t, ProfessionalSkill{SkillName: "Go", SkillLevel: "GURU", DisplayOrder: 1}.Validate())
	assert.Error(t, ProfessionalSkill{SkillName: "Go", SkillLevel: SkillBeginner, DisplayOrder: 0}.Validate())
}

func TestProject_Validate(t *testing.T) {
	p := Project{
		ProjectName: "Demo", ProjectDescription: "d", ProjectLink: "https://x",
		ProjectContentType: ProjectVideo, ProjectTechnologies: "Go", DisplayOrder: 1,
	}
	assert.NoError(t, p.Validate())

	p.ProjectContentType = "GIF"
	assert.Error(t, p.Validate())
}

func TestProjectDetailContent_Validate(t *testing.T) {
	assert.NoError(t, ProjectDetailContent{ProjectID: "p1", ProjectDetailContentType: DetailImage, DisplayOrder: 1}.Validate())
	assert.Error(t, ProjectDetailContent{ProjectID: "p1", ProjectDetailContentType: DetailText, DisplayOrder: 1}.Validate())
	assert.NoError(t, ProjectDetailContent{ProjectID: "p1", ProjectDetailContentType: DetailText, ProjectDetailContent: "<p/>", DisplayOrder: 1}.Validate())
}
