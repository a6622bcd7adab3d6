package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
)

func (h *Handler) groupListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		views, err := h.groups.List(ctx, common.PrincipalFromContext(ctx), h.page(r))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		resp := make([]groupResponse, 0, len(views))
		for _, view := range views {
			resp = append(resp, buildGroup(view))
		}
		h.ok(w, http.StatusOK, resp)
	}
}

func (h *Handler) groupCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req groupRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		view, err := h.groups.Create(ctx, common.PrincipalFromContext(ctx), req.input())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusCreated, buildGroup(*view))
	}
}

func (h *Handler) groupDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		view, err := h.groups.Detail(ctx, common.PrincipalFromContext(ctx), chi.URLParam(r, "pk"))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildGroup(*view))
	}
}

func (h *Handler) groupUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req groupRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		view, err := h.groups.Update(ctx, common.PrincipalFromContext(ctx), chi.URLParam(r, "pk"), req.input())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildGroup(*view))
	}
}

func (h *Handler) groupDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		if err := h.groups.Delete(ctx, common.PrincipalFromContext(ctx), chi.URLParam(r, "pk")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) groupStoreToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req groupStoreRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		added, err := h.groups.ToggleStore(ctx, common.PrincipalFromContext(ctx), chi.URLParam(r, "pk"), req.StorePK)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, map[string]any{"store_id": req.StorePK, "added": added})
	}
}

func (req groupRequest) input() publicapp.GroupInput {
	return publicapp.GroupInput{Name: req.Name, MemberIDs: req.Members}
}
