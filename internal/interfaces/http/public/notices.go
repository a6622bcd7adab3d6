package public

import "net/http"

func (h *Handler) noticeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		notices, err := h.notices.List(ctx, r.URL.Query().Get("keyword"), h.page(r))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildNotices(notices))
	}
}
