package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
)

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		query := r.URL.Query()
		views, err := h.stores.List(ctx, common.PrincipalFromContext(ctx), publicapp.ListStoresQuery{
			Keyword: query.Get("keyword"),
			Types:   query["type"],
			Page:    h.page(r),
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildStoreList(views))
	}
}

func (h *Handler) storeCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req storeCreateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		view, err := h.stores.Create(ctx, common.PrincipalFromContext(ctx), publicapp.CreateStoreCommand{
			Name:        req.Name,
			Description: req.Description,
			KindMenu:    req.KindMenu,
			KindDetail:  req.KindDetail,
			PetFriendly: req.PetFriendly,
			City:        req.City,
			SellListIDs: req.SellList,
			PhotoURLs:   req.Photos,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.logger.Info("store created", "store_id", view.ID, "owner_id", view.OwnerID)
		h.ok(w, http.StatusCreated, buildStoreDetail(*view))
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		view, err := h.stores.Detail(ctx, common.PrincipalFromContext(ctx), chi.URLParam(r, "pk"))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildStoreDetail(*view))
	}
}

func (h *Handler) storeUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req storeUpdateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		view, err := h.stores.Update(ctx, common.PrincipalFromContext(ctx), chi.URLParam(r, "pk"), req.command())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildStoreDetail(*view))
	}
}

func (h *Handler) storeDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		storeID := chi.URLParam(r, "pk")
		if err := h.stores.Delete(ctx, common.PrincipalFromContext(ctx), storeID); err != nil {
			h.fail(w, r, err)
			return
		}
		h.logger.Info("store deleted", "store_id", storeID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) userStoreListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		views, err := h.stores.ListByOwner(ctx, common.PrincipalFromContext(ctx), chi.URLParam(r, "username"), h.page(r))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildStoreList(views))
	}
}

// userStoreDetailHandler serves the owner's own store; other callers get 403.
func (h *Handler) userStoreDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		view, err := h.stores.Detail(ctx, common.PrincipalFromContext(ctx), chi.URLParam(r, "pk"))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if !view.IsOwner || view.Owner.Username != chi.URLParam(r, "username") {
			h.fail(w, r, publicapp.ErrPermissionDenied)
			return
		}
		h.ok(w, http.StatusOK, buildStoreDetail(*view))
	}
}

func (h *Handler) userStoreUpdateHandler() http.HandlerFunc {
	return h.storeUpdateHandler()
}

func (h *Handler) userStoreDeleteHandler() http.HandlerFunc {
	return h.storeDeleteHandler()
}

func (req storeUpdateRequest) command() publicapp.UpdateStoreCommand {
	return publicapp.UpdateStoreCommand{
		Name:        req.Name,
		Description: req.Description,
		KindMenu:    req.KindMenu,
		KindDetail:  req.KindDetail,
		PetFriendly: req.PetFriendly,
		City:        req.City,
		SellListIDs: req.SellList,
		PhotoURLs:   req.Photos,
	}
}
