package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	commonhttp "portfolio-admin/internal/common/http"
	"portfolio-admin/internal/models"
)

// MediaAPI talks to the object-storage endpoints under /media.
type MediaAPI struct {
	client *commonhttp.Client
}

func NewMediaAPI(client *commonhttp.Client) *MediaAPI {
	return &MediaAPI{client: client}
}

// Upload stores one file under folder. The returned Key is what entities persist;
// URL is a short-lived presigned link.
func (m *MediaAPI) Upload(ctx context.Context, folder, filename string, r io.Reader) (*models.UploadResult, error) {
	form := commonhttp.NewForm().AttachFile("file", filename, r)
	if folder != "" {
		form.Set("folder", folder)
	}
	var res models.UploadResult
	if err := m.client.Multipart(ctx, http.MethodPost, "/media/upload", form, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (m *MediaAPI) PresignedURL(ctx context.Context, key string) (string, error) {
	var res struct {
		URL string `json:"url"`
	}
	err := m.client.Do(ctx, commonhttp.Request{
		Method: http.MethodGet,
		Path:   "/media/presigned-url",
		Query:  url.Values{"key": {key}},
	}, &res)
	if err != nil {
		return "", err
	}
	return res.URL, nil
}

func (m *MediaAPI) Delete(ctx context.Context, fileURL string) error {
	return m.client.Do(ctx, commonhttp.Request{
		Method: http.MethodDelete,
		Path:   "/media/delete",
		Query:  url.Values{"fileUrl": {fileURL}},
	}, nil)
}
