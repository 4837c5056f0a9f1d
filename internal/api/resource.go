// Package api exposes one typed module per portfolio entity over the shared HTTP client.
package api

import (
	"context"
	"net/http"
	"net/url"

	"portfolio-admin/internal/common/errors"
	commonhttp "portfolio-admin/internal/common/http"
	"portfolio-admin/internal/common/logger"
	"portfolio-admin/internal/common/metrics"
)

// Resource is the uniform CRUD surface of an entity collection rooted at path.
//
// Reads and writes fail differently: GetAll never reports an error and degrades
// to an empty list, while every write returns the error unchanged.
type Resource[T any] struct {
	client *commonhttp.Client
	path   string
	name   string
	logger logger.Logger
}

func NewResource[T any](client *commonhttp.Client, path string, log logger.Logger) *Resource[T] {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	name := path
	if len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	return &Resource[T]{
		client: client,
		path:   path,
		name:   name,
		logger: log.With(map[string]interface{}{"resource": name}),
	}
}

// Name is the collection name, e.g. "projects".
func (r *Resource[T]) Name() string {
	return r.name
}

// GetAll fetches GET /X/fetch. Failures are logged and yield an empty, non-nil slice.
func (r *Resource[T]) GetAll(ctx context.Context) []T {
	var items []T
	if err := r.client.JSON(ctx, http.MethodGet, r.path+"/fetch", nil, &items); err != nil {
		metrics.ListDegraded.WithLabelValues(r.name).Inc()
		stdErr := errors.Normalize(err)
		r.logger.Warn("list fetch failed, returning empty results", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"status":    stdErr.Status,
			"details":   stdErr.Details,
		})
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func (r *Resource[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.client.JSON(ctx, http.MethodGet, r.itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Create(ctx context.Context, item T) (*T, error) {
	var created T
	if err := r.client.JSON(ctx, http.MethodPost, r.path, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, item T) (*T, error) {
	var updated T
	if err := r.client.JSON(ctx, http.MethodPut, r.itemPath(id), item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.JSON(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// MediaResource adds the multipart create/update variants for entities that
// carry uploaded files. The form is sent as-is; callers serialize every scalar
// and attach files under the names in FileFields.
type MediaResource[T any] struct {
	*Resource[T]
	fileFields []string
}

func NewMediaResource[T any](client *commonhttp.Client, path string, log logger.Logger, fileFields ...string) *MediaResource[T] {
	return &MediaResource[T]{
		Resource:   NewResource[T](client, path, log),
		fileFields: fileFields,
	}
}

// FileFields lists the multipart file field names the backend accepts.
func (m *MediaResource[T]) FileFields() []string {
	return append([]string(nil), m.fileFields...)
}

// CreateWithMedia posts form to POST /X/with-media.
func (m *MediaResource[T]) CreateWithMedia(ctx context.Context, form *commonhttp.Form) (*T, error) {
	var created T
	if err := m.client.Multipart(ctx, http.MethodPost, m.path+"/with-media", form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateWithMedia puts form to PUT /X/{id}/with-media.
func (m *MediaResource[T]) UpdateWithMedia(ctx context.Context, id string, form *commonhttp.Form) (*T, error) {
	var updated T
	if err := m.client.Multipart(ctx, http.MethodPut, m.itemPath(id)+"/with-media", form, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
