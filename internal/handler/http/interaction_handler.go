package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
	"github.com/mikiasgoitom/videoreact/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
)

type InteractionHandler struct {
	interactionUsecase usecasecontract.IInteractionUseCase
	validator          usecasecontract.IValidator
	logger             usecasecontract.IAppLogger
}

func NewInteractionHandler(interactionUsecase usecasecontract.IInteractionUseCase, validator usecasecontract.IValidator, logger usecasecontract.IAppLogger) *InteractionHandler {
	return &InteractionHandler{
		interactionUsecase: interactionUsecase,
		validator:          validator,
		logger:             logger,
	}
}

// RecordInteractionHandler applies a like/dislike transition and returns the new counters.
func (h *InteractionHandler) RecordInteractionHandler(c *gin.Context) {
	var req dto.InteractRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	result, err := h.interactionUsecase.Apply(c.Request.Context(), req.VideoID, entity.TransitionKind(req.Type))
	if err != nil {
		h.logger.Errorf("record interaction for video %s: %v", req.VideoID, err)
		ErrorHandler(c, http.StatusInternalServerError, "Failed to record interaction")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToInteractionResponse(*result.Interaction))
}

// GetInteractionsHandler returns the counters of a video, zero when it was never seen.
func (h *InteractionHandler) GetInteractionsHandler(c *gin.Context) {
	videoID := c.Param("video_id")
	if err := h.validator.ValidateVideoID(videoID); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.interactionUsecase.Get(c.Request.Context(), videoID)
	if err != nil {
		h.logger.Errorf("get interactions for video %s: %v", videoID, err)
		ErrorHandler(c, http.StatusInternalServerError, "Failed to get interactions")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToInteractionResponse(*result.Interaction))
}
