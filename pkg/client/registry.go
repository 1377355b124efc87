package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/opencontainers/go-digest"

	"github.com/embedx-ml/embedx/pkg/errors"
	"github.com/embedx-ml/embedx/pkg/types"
	"github.com/embedx-ml/embedx/pkg/version"
)

// RegistryClient speaks the registry HTTP API.
type RegistryClient struct {
	Registry      string
	Authorization string
	Client        *http.Client
}

func NewRegistryClient(registry string, auth string) *RegistryClient {
	return &RegistryClient{
		Registry:      registry,
		Authorization: auth,
		// blob requests may answer 302 to presigned storage; a followed
		// redirect would rewrite PUT into a bodyless GET, so redirects
		// are handled explicitly instead.
		Client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// RequestBody allows retrying uploads by reopening the content.
type RequestBody struct {
	ContentLength int64
	ContentBody   func() (io.ReadCloser, error)
}

func (t *RegistryClient) GetGlobalIndex(ctx context.Context, search string) (*types.Index, error) {
	index := &types.Index{}
	path := "/?" + url.Values{"search": {search}}.Encode()
	if _, err := t.request(ctx, "GET", path, nil, nil, index); err != nil {
		return nil, err
	}
	return index, nil
}

func (t *RegistryClient) GetIndex(ctx context.Context, repository string, search string) (*types.Index, error) {
	index := &types.Index{}
	path := "/" + repository + "/index?" + url.Values{"search": {search}}.Encode()
	if _, err := t.request(ctx, "GET", path, nil, nil, index); err != nil {
		return nil, err
	}
	return index, nil
}

func (t *RegistryClient) DeleteIndex(ctx context.Context, repository string) error {
	path := "/" + repository + "/index"
	resp, err := t.request(ctx, "DELETE", path, nil, nil, nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (t *RegistryClient) GetManifest(ctx context.Context, repository string, version string) (*types.Manifest, error) {
	if version == "" {
		version = "latest"
	}
	manifest := &types.Manifest{}
	path := "/" + repository + "/manifests/" + version
	if _, err := t.request(ctx, "GET", path, nil, nil, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (t *RegistryClient) PutManifest(ctx context.Context, repository string, version string, manifest types.Manifest) error {
	if version == "" {
		version = "latest"
	}
	header := map[string]string{
		"Content-Type": types.MediaTypeExperimentManifestJson,
	}
	path := "/" + repository + "/manifests/" + version
	resp, err := t.request(ctx, "PUT", path, header, manifest, nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (t *RegistryClient) DeleteManifest(ctx context.Context, repository string, version string) error {
	path := "/" + repository + "/manifests/" + version
	resp, err := t.request(ctx, "DELETE", path, nil, nil, nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (t *RegistryClient) HeadBlob(ctx context.Context, repository string, digest digest.Digest) (bool, error) {
	path := "/" + repository + "/blobs/" + digest.String()
	resp, err := t.request(ctx, "HEAD", path, nil, nil, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

func (t *RegistryClient) UploadBlob(ctx context.Context, repository string, desc types.Descriptor, body RequestBody) error {
	header := map[string]string{
		"Content-Type": desc.MediaType,
	}
	content, err := body.ContentBody()
	if err != nil {
		return err
	}
	path := "/" + repository + "/blobs/" + desc.Digest.String()
	resp, err := t.request(ctx, "PUT", path, header, withLength{content, body.ContentLength}, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusFound {
		location, err := resp.Location()
		if err != nil {
			return err
		}
		return uploadToLocation(ctx, location, body)
	}
	return nil
}

func (t *RegistryClient) GetBlob(ctx context.Context, repository string, digest digest.Digest) (io.ReadCloser, int64, error) {
	path := "/" + repository + "/blobs/" + digest.String()
	resp, err := t.request(ctx, "GET", path, nil, nil, nil)
	if err != nil {
		return nil, -1, err
	}
	if resp.StatusCode == http.StatusFound {
		defer resp.Body.Close()
		location, err := resp.Location()
		if err != nil {
			return nil, -1, err
		}
		return downloadFromLocation(ctx, location)
	}
	return resp.Body, resp.ContentLength, nil
}

func uploadToLocation(ctx context.Context, location *url.URL, body RequestBody) error {
	method := http.MethodPost
	// s3 presigned uploads use PUT
	if location.Query().Has("X-Amz-Credential") {
		method = http.MethodPut
	}
	content, err := body.ContentBody()
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, location.String(), content)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength, req.GetBody = body.ContentLength, body.ContentBody

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload to %s: unexpected status %s %s", location.Host, resp.Status, msg)
	}
	return nil
}

func downloadFromLocation(ctx context.Context, location *url.URL) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", location.String(), nil)
	if err != nil {
		return nil, -1, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, -1, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(resp.Body)
		return nil, -1, fmt.Errorf("download from %s: unexpected status %s %s", location.Host, resp.Status, msg)
	}
	return resp.Body, resp.ContentLength, nil
}

type withLength struct {
	io.ReadCloser
	length int64
}

func (t *RegistryClient) request(ctx context.Context, method, path string, header map[string]string, body any, into any) (*http.Response, error) {
	addr := t.Registry + path

	var reqbody io.Reader
	var contentLength int64
	switch val := body.(type) {
	case withLength:
		reqbody = val.ReadCloser
		contentLength = val.length
	case io.Reader:
		reqbody = val
	case nil:
		reqbody = nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		reqbody = bytes.NewReader(b)
		contentLength = int64(len(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, addr, reqbody)
	if err != nil {
		return nil, err
	}
	if contentLength > 0 {
		req.ContentLength = contentLength
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	if t.Authorization != "" {
		req.Header.Set("Authorization", t.Authorization)
	}
	req.Header.Set("User-Agent", "embedx/"+version.Get().GitVersion)

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 && req.Method != "HEAD" {
		defer resp.Body.Close()
		var apierr errors.ErrorInfo
		if resp.Header.Get("Content-Type") == "application/json" {
			if err := json.NewDecoder(resp.Body).Decode(&apierr); err != nil {
				return nil, err
			}
			apierr.HttpStatus = resp.StatusCode
		} else {
			bodystr, _ := io.ReadAll(resp.Body)
			apierr = errors.ErrorInfo{
				HttpStatus: resp.StatusCode,
				Code:       errors.ErrCodeUnknown,
				Message:    string(bodystr),
			}
		}
		return nil, apierr
	}
	if into != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
