package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/opencontainers/go-digest"

	"github.com/embedx-ml/embedx/pkg/errors"
	"github.com/embedx-ml/embedx/pkg/types"
)

type Registry struct {
	Store RegistryStore
}

func NewRegistry(ctx context.Context, opts *Options) (*Registry, error) {
	store, err := NewFSRegistryStore(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Registry{Store: store}, nil
}

func (s *Registry) GetGlobalIndex(w http.ResponseWriter, r *http.Request) {
	index, err := s.Store.GetGlobalIndex(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		if IsRegistryStoreNotFound(err) {
			index = types.Index{Manifests: []types.Descriptor{}}
		} else {
			ResponseError(w, err)
			return
		}
	}
	ResponseOK(w, index)
}

func (s *Registry) GetIndex(w http.ResponseWriter, r *http.Request) {
	name, _ := GetRepositoryReference(r)
	index, err := s.Store.GetIndex(r.Context(), name, r.URL.Query().Get("search"))
	if err != nil {
		if IsRegistryStoreNotFound(err) {
			err = errors.NewIndexUnknownError(name)
		}
		ResponseError(w, err)
		return
	}
	ResponseOK(w, index)
}

func (s *Registry) DeleteIndex(w http.ResponseWriter, r *http.Request) {
	name, _ := GetRepositoryReference(r)
	if err := s.Store.RemoveIndex(r.Context(), name); err != nil {
		ResponseError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Registry) HeadManifest(w http.ResponseWriter, r *http.Request) {
	name, reference := GetRepositoryReference(r)
	exist, err := s.Store.ExistsManifest(r.Context(), name, reference)
	if err != nil {
		ResponseError(w, err)
		return
	}
	if exist {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Registry) GetManifest(w http.ResponseWriter, r *http.Request) {
	name, reference := GetRepositoryReference(r)
	manifest, err := s.Store.GetManifest(r.Context(), name, reference)
	if err != nil {
		ResponseError(w, err)
		return
	}
	ResponseOK(w, manifest)
}

func (s *Registry) PutManifest(w http.ResponseWriter, r *http.Request) {
	name, reference := GetRepositoryReference(r)
	var manifest types.Manifest
	if err := json.NewDecoder(r.Body).Decode(&manifest); err != nil {
		ResponseError(w, errors.NewManifestInvalidError(err))
		return
	}
	contenttype := r.Header.Get("Content-Type")
	if err := s.Store.PutManifest(r.Context(), name, reference, contenttype, manifest); err != nil {
		ResponseError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Registry) DeleteManifest(w http.ResponseWriter, r *http.Request) {
	name, reference := GetRepositoryReference(r)
	if err := s.Store.DeleteManifest(r.Context(), name, reference); err != nil {
		ResponseError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Registry) GCAll(w http.ResponseWriter, r *http.Request) {
	if err := GCBlobsAll(r.Context(), s.Store); err != nil {
		ResponseError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Registry) GC(w http.ResponseWriter, r *http.Request) {
	name, _ := GetRepositoryReference(r)
	removed, err := GCBlobs(r.Context(), s.Store, name)
	if err != nil {
		ResponseError(w, err)
		return
	}
	ResponseOK(w, removed)
}

func (s *Registry) HeadBlob(w http.ResponseWriter, r *http.Request) {
	BlobDigestFun(w, r, func(ctx context.Context, repository string, digest digest.Digest) {
		ok, err := s.Store.ExistsBlob(ctx, repository, digest)
		if err != nil {
			ResponseError(w, err)
			return
		}
		if ok {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (s *Registry) GetBlob(w http.ResponseWriter, r *http.Request) {
	BlobDigestFun(w, r, func(ctx context.Context, repository string, digest digest.Digest) {
		resp, err := s.Store.GetBlob(ctx, repository, digest)
		if err != nil {
			ResponseError(w, err)
			return
		}
		if resp.RedirectLocation != "" {
			w.Header().Add("Location", resp.RedirectLocation)
			w.WriteHeader(http.StatusFound)
			return
		}
		defer resp.Content.Close()
		w.Header().Set("Content-Length", strconv.FormatInt(resp.Content.ContentLength, 10))
		if resp.Content.ContentType != "" {
			w.Header().Set("Content-Type", resp.Content.ContentType)
		}
		w.WriteHeader(http.StatusOK)
		io.Copy(w, resp.Content)
	})
}

func (s *Registry) PutBlob(w http.ResponseWriter, r *http.Request) {
	BlobDigestFun(w, r, func(ctx context.Context, repository string, digest digest.Digest) {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			ResponseError(w, errors.NewContentTypeInvalidError("empty"))
			return
		}
		content := BlobContent{
			Content:       r.Body,
			ContentLength: r.ContentLength,
			ContentType:   contentType,
		}
		resp, err := s.Store.PutBlob(ctx, repository, digest, content)
		if err != nil {
			ResponseError(w, err)
			return
		}
		if resp.RedirectLocation != "" {
			w.Header().Add("Location", resp.RedirectLocation)
			w.WriteHeader(http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
}

func BlobDigestFun(w http.ResponseWriter, r *http.Request, fun func(ctx context.Context, repository string, digest digest.Digest)) {
	name, _ := GetRepositoryReference(r)
	digeststr := mux.Vars(r)["digest"]
	digest, err := digest.Parse(digeststr)
	if err != nil {
		ResponseError(w, errors.NewDigestInvalidError(digeststr))
		return
	}
	fun(r.Context(), name, digest)
}

func GetRepositoryReference(r *http.Request) (string, string) {
	vars := mux.Vars(r)
	return vars["name"], vars["reference"]
}
