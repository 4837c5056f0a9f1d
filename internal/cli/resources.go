package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"portfolio-admin/internal/api"
	"portfolio-admin/internal/common/errors"
	commonhttp "portfolio-admin/internal/common/http"
	"portfolio-admin/internal/models"
)

// resourceCommands is what the generic list/get/create/update/delete commands
// need from an entity module, with the entity type erased.
type resourceCommands interface {
	list(ctx context.Context) interface{}
	get(ctx context.Context, id string) (interface{}, error)
	create(ctx context.Context, payload []byte, media map[string]string) (interface{}, error)
	update(ctx context.Context, id string, payload []byte, media map[string]string) (interface{}, error)
	remove(ctx context.Context, id string) error
}

type validatable interface {
	Validate() error
}

type formable interface {
	ToForm() *commonhttp.Form
}

// entityCommands adapts a Resource[T] (and its media variant, when it has one).
type entityCommands[T any] struct {
	res   *api.Resource[T]
	media *api.MediaResource[T]
	sort  func([]T)
}

func (e *entityCommands[T]) list(ctx context.Context) interface{} {
	items := e.res.GetAll(ctx)
	if e.sort != nil {
		e.sort(items)
	}
	return items
}

func (e *entityCommands[T]) get(ctx context.Context, id string) (interface{}, error) {
	return e.res.GetByID(ctx, id)
}

func (e *entityCommands[T]) create(ctx context.Context, payload []byte, media map[string]string) (interface{}, error) {
	item, err := e.decode(payload)
	if err != nil {
		return nil, err
	}
	if len(media) == 0 {
		return e.res.Create(ctx, item)
	}
	form, closeFiles, err := e.form(item, media)
	if err != nil {
		return nil, err
	}
	defer closeFiles()
	return e.media.CreateWithMedia(ctx, form)
}

func (e *entityCommands[T]) update(ctx context.Context, id string, payload []byte, media map[string]string) (interface{}, error) {
	item, err := e.decode(payload)
	if err != nil {
		return nil, err
	}
	if len(media) == 0 {
		return e.res.Update(ctx, id, item)
	}
	form, closeFiles, err := e.form(item, media)
	if err != nil {
		return nil, err
	}
	defer closeFiles()
	return e.media.UpdateWithMedia(ctx, id, form)
}

func (e *entityCommands[T]) remove(ctx context.Context, id string) error {
	return e.res.Delete(ctx, id)
}

// decode parses and validates a JSON payload before anything is sent.
func (e *entityCommands[T]) decode(payload []byte) (T, error) {
	var item T
	if err := json.Unmarshal(payload, &item); err != nil {
		return item, errors.NewValidationError(fmt.Sprintf("invalid %s payload: %v", e.res.Name(), err))
	}
	if v, ok := any(item).(validatable); ok {
		if err := v.Validate(); err != nil {
			return item, err
		}
	}
	return item, nil
}

// form serializes item and attaches each file. The returned func closes the files.
func (e *entityCommands[T]) form(item T, media map[string]string) (*commonhttp.Form, func(), error) {
	noop := func() {}
	if e.media == nil {
		return nil, noop, errors.NewValidationError(fmt.Sprintf("%s does not accept file uploads", e.res.Name()))
	}
	f, ok := any(item).(formable)
	if !ok {
		return nil, noop, errors.NewValidationError(fmt.Sprintf("%s cannot be sent as a form", e.res.Name()))
	}

	allowed := e.media.FileFields()
	fields := make([]string, 0, len(media))
	for field := range media {
		if !contains(allowed, field) {
			return nil, noop, errors.NewValidationError(fmt.Sprintf(
				"unknown file field %q for %s (accepted: %s)", field, e.res.Name(), strings.Join(allowed, ", ")))
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	form := f.ToForm()
	var opened []*os.File
	closeAll := func() {
		for _, file := range opened {
			file.Close()
		}
	}
	for _, field := range fields {
		file, err := os.Open(media[field])
		if err != nil {
			closeAll()
			return nil, noop, errors.NewValidationError(fmt.Sprintf("open %s: %v", media[field], err))
		}
		opened = append(opened, file)
		form.AttachFile(field, file.Name(), file)
	}
	return form, closeAll, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// resourceTable maps CLI resource names to their modules.
func resourceTable(c *api.Client) map[string]resourceCommands {
	return map[string]resourceCommands{
		c.PersonalInfo.Name(): &entityCommands[models.PersonalInfo]{
			res:   c.PersonalInfo.Resource,
			media: c.PersonalInfo,
		},
		c.Projects.Name(): &entityCommands[models.Project]{
			res:   c.Projects.Resource,
			media: c.Projects,
			sort:  models.SortByDisplayOrder[models.Project],
		},
		c.JobHistory.Name(): &entityCommands[models.JobHistory]{
			res:   c.JobHistory.Resource,
			media: c.JobHistory,
			sort:  models.SortByDisplayOrder[models.JobHistory],
		},
		c.EducationHistory.Name(): &entityCommands[models.EducationHistory]{
			res:  c.EducationHistory,
			sort: models.SortByDisplayOrder[models.EducationHistory],
		},
		c.ProfessionalSkills.Name(): &entityCommands[models.ProfessionalSkill]{
			res:  c.ProfessionalSkills,
			sort: models.SortByDisplayOrder[models.ProfessionalSkill],
		},
		c.ProjectDetails.Name(): &entityCommands[models.ProjectDetailContent]{
			res:   c.ProjectDetails.Resource,
			media: c.ProjectDetails.MediaResource,
			sort:  models.SortByDisplayOrder[models.ProjectDetailContent],
		},
	}
}

func resourceNames(table map[string]resourceCommands) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
