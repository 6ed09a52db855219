package dto

import "github.com/memoria-viva/memorial-service/entity"

// MemorialViewResponse is the assembled public page payload: the primary
// record plus its three child collections in display order.
type MemorialViewResponse struct {
	Memorial       *entity.Memorial       `json:"memorial"`
	Photos         []entity.MemorialPhoto `json:"photos"`
	TimelineEvents []entity.TimelineEvent `json:"timeline_events"`
	Tributes       []entity.Tribute       `json:"tributes"`
}
