package dto

import (
	"encoding/json"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/grid"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/pagination"
)

// CollectionItemRequest carries metadata as raw JSON so it can be decoded
// against the declared type.
type CollectionItemRequest struct {
	models.CollectionItemInput
	Metadata json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

func (r CollectionItemRequest) ToInput() models.CollectionItemInput {
	in := r.CollectionItemInput
	in.Metadata = []byte(r.Metadata)
	return in
}

type CollectionItemResponse struct {
	models.CollectionItem
	Layout grid.Span `json:"layout"`
}

type CollectionPageResponse struct {
	pagination.Page[CollectionItemResponse]
	GridClass string `json:"grid_class"`
}

// NewCollectionPage attaches a grid span to every item by its position on
// the page.
func NewCollectionPage(p pagination.Page[models.CollectionItem], columns int) CollectionPageResponse {
	return CollectionPageResponse{
		Page: pagination.Map(p, func(i int, item models.CollectionItem) CollectionItemResponse {
			return CollectionItemResponse{
				CollectionItem: item,
				Layout:         grid.AssignSpan(item.GridSize, i, columns),
			}
		}),
		GridClass: grid.ContainerClass(columns),
	}
}

func NewCollectionItems(items []models.CollectionItem) []CollectionItemResponse {
	out := make([]CollectionItemResponse, 0, len(items))
	for i, item := range items {
		out = append(out, CollectionItemResponse{
			CollectionItem: item,
			Layout:         grid.AssignSpan(item.GridSize, i, 0),
		})
	}
	return out
}
