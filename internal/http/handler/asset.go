package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/http/response"
	"github.com/seenlyhq/seenly/internal/service"
	"github.com/seenlyhq/seenly/internal/storage"
)

// Assets serves content asset uploads and downloads backed by the blob store.
type Assets struct {
	svc   *service.Service
	store storage.AssetStore
}

// NewAssets creates the asset handlers.
func NewAssets(svc *service.Service, store storage.AssetStore) *Assets {
	return &Assets{
		svc:   svc,
		store: store,
	}
}

func assetObjectName(contentID string) string {
	return fmt.Sprintf("content/%s", contentID)
}

func serviceUpdateAsset(contentID string, name *string) domain.UpdateContentParams {
	return domain.UpdateContentParams{
		ContentID:   contentID,
		UpdateMask:  []string{"asset_object"},
		AssetObject: name,
	}
}

// Upload handles PUT /content/{contentID}/asset. The request body is stored
// as the content piece's asset, replacing any previous one.
func (a *Assets) Upload(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}
	contentID := chi.URLParam(r, "contentID")

	if _, err := a.svc.GetContent(r.Context(), wsID, contentID); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	name := assetObjectName(contentID)
	if err := a.store.Put(r.Context(), name, r.Body); err != nil {
		response.InternalError(w, r, err)
		return
	}

	content, err := a.svc.UpdateContent(r.Context(), wsID, serviceUpdateAsset(contentID, &name))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapContentToDTO(content))
}

// Download handles GET /content/{contentID}/asset, streaming the stored blob.
func (a *Assets) Download(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}
	contentID := chi.URLParam(r, "contentID")

	content, err := a.svc.GetContent(r.Context(), wsID, contentID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	if content.AssetObject == nil {
		response.NotFound(w, "content has no asset")
		return
	}

	rc, err := a.store.Get(r.Context(), *content.AssetObject)
	if err != nil {
		if errors.Is(err, storage.ErrAssetNotFound) {
			response.NotFound(w, "asset object missing from store")
			return
		}
		response.InternalError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		// Headers are already written; all we can do is log.
		slog.WarnContext(r.Context(), "asset stream interrupted",
			"content_id", contentID, "error", err)
	}
}

// Delete handles DELETE /content/{contentID}/asset, removing the blob and
// clearing the content's asset reference.
func (a *Assets) Delete(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}
	contentID := chi.URLParam(r, "contentID")

	content, err := a.svc.GetContent(r.Context(), wsID, contentID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	if content.AssetObject == nil {
		response.NotFound(w, "content has no asset")
		return
	}

	if err := a.store.Delete(r.Context(), *content.AssetObject); err != nil && !errors.Is(err, storage.ErrAssetNotFound) {
		response.InternalError(w, r, err)
		return
	}

	if _, err := a.svc.UpdateContent(r.Context(), wsID, serviceUpdateAsset(contentID, nil)); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}
