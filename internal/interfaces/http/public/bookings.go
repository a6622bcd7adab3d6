package public

import (
	"net/http"

	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
)

func (h *Handler) bookingGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		view, err := h.bookings.Get(ctx, common.PrincipalFromContext(ctx), h.page(r))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, bookingResponse{
			PK:    view.ID,
			Name:  view.Name,
			User:  buildTinyUser(view.User),
			Store: buildStoreList(view.Stores),
		})
	}
}

func (h *Handler) bookingToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req bookingToggleRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		results, err := h.bookings.Toggle(ctx, common.PrincipalFromContext(ctx), req.StorePK)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		resp := make([]bookingToggleResponse, 0, len(results))
		for _, result := range results {
			resp = append(resp, bookingToggleResponse{
				StoreID: result.StoreID,
				IsLiked: result.IsLiked,
				Message: result.Message,
			})
		}
		h.ok(w, http.StatusOK, resp)
	}
}
