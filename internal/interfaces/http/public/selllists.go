package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
)

func (h *Handler) sellListListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		items, err := h.sellLists.List(ctx)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildSellLists(items))
	}
}

func (h *Handler) sellListCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req sellListRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		item, err := h.sellLists.Create(ctx, req.input())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusCreated, buildSellList(*item))
	}
}

func (h *Handler) sellListDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		item, err := h.sellLists.Detail(ctx, chi.URLParam(r, "pk"))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildSellList(*item))
	}
}

func (h *Handler) sellListUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req sellListRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		item, err := h.sellLists.Update(ctx, chi.URLParam(r, "pk"), req.input())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildSellList(*item))
	}
}

func (h *Handler) sellListDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		if err := h.sellLists.Delete(ctx, chi.URLParam(r, "pk")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) storeSellListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		items, err := h.sellLists.ListForStore(ctx, chi.URLParam(r, "pk"), h.page(r))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildSellLists(items))
	}
}

func (h *Handler) storeSellListCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req sellListRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		item, err := h.sellLists.CreateForStore(ctx, chi.URLParam(r, "pk"), req.input())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusCreated, buildSellList(*item))
	}
}

func (req sellListRequest) input() publicapp.SellListInput {
	return publicapp.SellListInput{Name: req.Name, Description: req.Description}
}
