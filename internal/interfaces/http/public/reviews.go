package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
)

func (h *Handler) storeReviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		reviews, err := h.reviews.ListForStore(ctx, chi.URLParam(r, "pk"), h.page(r))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildReviews(reviews))
	}
}

func (h *Handler) storeReviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req reviewCreateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		storeID := chi.URLParam(r, "pk")
		review, err := h.reviews.Create(ctx, common.PrincipalFromContext(ctx), storeID, publicapp.ReviewInput{
			Taste:       *req.TasteRating,
			Atmosphere:  *req.AtmosphereRating,
			Kindness:    *req.KindnessRating,
			Cleanliness: *req.CleanRating,
			Parking:     *req.ParkingRating,
			Restroom:    *req.RestroomRating,
			Description: req.Description,
			PhotoURLs:   req.ReviewPhoto,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.logger.Info("review created", "review_id", review.ID, "store_id", storeID)
		h.ok(w, http.StatusCreated, buildReview(*review))
	}
}

func (h *Handler) userReviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		reviews, err := h.reviews.ListForUser(ctx, chi.URLParam(r, "username"), h.page(r))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildReviews(reviews))
	}
}

func (h *Handler) userReviewUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		var req reviewPatchRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		fields := req.reviewPatchFields
		if req.ReviewData != nil {
			if err := common.Validate(req.ReviewData); err != nil {
				h.fail(w, r, err)
				return
			}
			fields = *req.ReviewData
		}
		review, err := h.reviews.Update(ctx, common.PrincipalFromContext(ctx), chi.URLParam(r, "pk"), publicapp.ReviewPatch{
			Taste:       fields.TasteRating,
			Atmosphere:  fields.AtmosphereRating,
			Kindness:    fields.KindnessRating,
			Cleanliness: fields.CleanRating,
			Parking:     fields.ParkingRating,
			Restroom:    fields.RestroomRating,
			Description: fields.Description,
			PhotoURLs:   fields.ReviewPhoto,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, http.StatusOK, buildReview(*review))
	}
}

func (h *Handler) userReviewDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		reviewID := chi.URLParam(r, "pk")
		if err := h.reviews.Delete(ctx, common.PrincipalFromContext(ctx), reviewID); err != nil {
			h.fail(w, r, err)
			return
		}
		h.logger.Info("review deleted", "review_id", reviewID)
		w.WriteHeader(http.StatusNoContent)
	}
}
