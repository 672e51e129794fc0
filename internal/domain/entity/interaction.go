package entity

// InteractionUpdateEvent is the real-time event name sent after every recorded interaction.
const InteractionUpdateEvent = "interaction_update"

// TransitionKind is the counter operation requested by a client.
type TransitionKind string

const (
	TransitionLike          TransitionKind = "like"
	TransitionDislike       TransitionKind = "dislike"
	TransitionRemoveLike    TransitionKind = "remove_like"
	TransitionRemoveDislike TransitionKind = "remove_dislike"
)

// IsKnown reports whether k is one of the four recognized transitions.
func (k TransitionKind) IsKnown() bool {
	switch k {
	case TransitionLike, TransitionDislike, TransitionRemoveLike, TransitionRemoveDislike:
		return true
	}
	return false
}

// Counts is the pair of counters stored per video.
type Counts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// Interaction is the per-video counter record.
type Interaction struct {
	VideoID  string `bson:"video_id" json:"video_id"`
	Likes    int64  `bson:"likes" json:"likes"`
	Dislikes int64  `bson:"dislikes" json:"dislikes"`
}

// NewInteraction returns a zero-valued record for videoID.
func NewInteraction(videoID string) *Interaction {
	return &Interaction{VideoID: videoID}
}

// Counts returns the counters of the record.
func (i *Interaction) Counts() Counts {
	return Counts{Likes: i.Likes, Dislikes: i.Dislikes}
}

// SetCounts overwrites the counters of the record.
func (i *Interaction) SetCounts(c Counts) {
	i.Likes = c.Likes
	i.Dislikes = c.Dislikes
}

// ApplyTransition is the single update rule shared by every store.
// Remove transitions never take a counter below zero. The second return
// value is false when kind is not recognized, in which case c is returned
// unchanged.
func ApplyTransition(c Counts, kind TransitionKind) (Counts, bool) {
	switch kind {
	case TransitionLike:
		c.Likes++
	case TransitionDislike:
		c.Dislikes++
	case TransitionRemoveLike:
		if c.Likes > 0 {
			c.Likes--
		}
	case TransitionRemoveDislike:
		if c.Dislikes > 0 {
			c.Dislikes--
		}
	default:
		return c, false
	}
	return c, true
}
