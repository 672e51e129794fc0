package dto

import "github.com/mikiasgoitom/videoreact/internal/domain/entity"

// InteractRequest is the body of POST /api/interact. Type is
// not restricted: unrecognized values are answered with the unchanged record.
type InteractRequest struct {
	VideoID string `json:"video_id" binding:"required,videoid"`
	Type    string `json:"type"`
}

// InteractionResponse is the DTO for a video's counters.
type InteractionResponse struct {
	VideoID  string `json:"video_id"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

// converts an entity.Interaction to an InteractionResponse DTO.
func ToInteractionResponse(i entity.Interaction) InteractionResponse {
	return InteractionResponse{
		VideoID:  i.VideoID,
		Likes:    i.Likes,
		Dislikes: i.Dislikes,
	}
}
