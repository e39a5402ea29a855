package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

var logger = loggo.GetLogger("printa.upload")

// Gateway stores a file with a hosting provider and returns its public URL.
// Files are streamed through; nothing is kept locally.
type Gateway interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// ── ImgBB Adapter ─────────────────────────────────────────────────────────────
// API docs: https://api.imgbb.com/

type imgbbGateway struct {
	apiKey    string
	requester *rest.Requester
}

// NewImgBBGateway returns a Gateway posting to the ImgBB upload endpoint.
func NewImgBBGateway(apiKey, uploadURL string, doer rest.Doer) (Gateway, error) {
	requester, err := rest.NewRequester(uploadURL, doer, nil)
	if err != nil {
		return nil, fmt.Errorf("imgbb gateway: %w", err)
	}
	return &imgbbGateway{apiKey: apiKey, requester: requester}, nil
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *imgbbGateway) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("image upload is not configured")
	}
	body := &rest.Multipart{
		Fields: map[string]string{"key": g.apiKey},
		Files:  []rest.FilePart{{Field: "image", Filename: filename, Content: content}},
	}
	data, err := g.requester.Do(ctx, http.MethodPost, "", url.Values{}, body)
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) {
		// ImgBB answers failures with a non-2xx status and its own body.
		var resp imgbbResponse
		_ = json.Unmarshal(apiErr.Body, &resp)
		logger.Warningf("imgbb rejected %s with %d", filename, apiErr.StatusCode)
		return "", uploadFailed(resp.Error.Message)
	} else if err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}

	var resp imgbbResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}
	if !resp.Success || resp.Data.URL == "" {
		return "", uploadFailed(resp.Error.Message)
	}
	logger.Debugf("uploaded %s to %s", filename, resp.Data.URL)
	return resp.Data.URL, nil
}

func uploadFailed(msg string) error {
	if msg == "" {
		msg = "unknown error"
	}
	return form.Rule("Image upload failed: " + msg)
}
