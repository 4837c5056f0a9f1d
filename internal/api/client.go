package api

import (
	"context"
	"net/http"
	"net/url"

	commonhttp "portfolio-admin/internal/common/http"
	"portfolio-admin/internal/common/logger"
	"portfolio-admin/internal/models"
)

// Collection roots under the API base URL.
const (
	PathPersonalInfo         = "/personal-info"
	PathProjects             = "/projects"
	PathJobHistory           = "/job-history"
	PathEducationHistory     = "/education-history"
	PathProfessionalSkills   = "/professional-skills"
	PathProjectDetailContent = "/project-detail-content"
)

// ProjectDetailResource adds the per-project listing to the detail block module.
type ProjectDetailResource struct {
	*MediaResource[models.ProjectDetailContent]
}

// GetByProjectID lists the blocks of one project. Unlike GetAll, errors propagate.
func (p *ProjectDetailResource) GetByProjectID(ctx context.Context, projectID string) ([]models.ProjectDetailContent, error) {
	var items []models.ProjectDetailContent
	path := p.path + "/project/" + url.PathEscape(projectID)
	if err := p.client.JSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ProjectDetailContent{}
	}
	return items, nil
}

// Client groups every API module over one shared HTTP client, so interceptors
// installed on that client apply uniformly.
type Client struct {
	HTTP *commonhttp.Client

	PersonalInfo       *MediaResource[models.PersonalInfo]
	Projects           *MediaResource[models.Project]
	JobHistory         *MediaResource[models.JobHistory]
	EducationHistory   *Resource[models.EducationHistory]
	ProfessionalSkills *Resource[models.ProfessionalSkill]
	ProjectDetails     *ProjectDetailResource

	Auth  *AuthAPI
	Media *MediaAPI
}

func New(httpClient *commonhttp.Client, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		HTTP:               httpClient,
		PersonalInfo:       NewMediaResource[models.PersonalInfo](httpClient, PathPersonalInfo, log, models.FieldProfilePicture, models.FieldResume),
		Projects:           NewMediaResource[models.Project](httpClient, PathProjects, log, models.FieldMediaFile),
		JobHistory:         NewMediaResource[models.JobHistory](httpClient, PathJobHistory, log, models.FieldCompanyLogo),
		EducationHistory:   NewResource[models.EducationHistory](httpClient, PathEducationHistory, log),
		ProfessionalSkills: NewResource[models.ProfessionalSkill](httpClient, PathProfessionalSkills, log),
		ProjectDetails: &ProjectDetailResource{
			MediaResource: NewMediaResource[models.ProjectDetailContent](httpClient, PathProjectDetailContent, log, models.FieldMediaFile),
		},
		Auth:  NewAuthAPI(httpClient),
		Media: NewMediaAPI(httpClient),
	}
}
