package catalog

import "github.com/google/uuid"

// KindInput carries the editable fields of a kind.
type KindInput struct {
	Name               string  `json:"name" validate:"required"`
	ShortDescriptionNL *string `json:"short_description_nl"`
	DescriptionNL      *string `json:"description_nl"`
	ShortDescriptionEN *string `json:"short_description_en"`
	DescriptionEN      *string `json:"description_en"`
	C                  bool    `json:"c"`
	H                  bool    `json:"h"`
	I                  bool    `json:"i"`
	S                  bool    `json:"s"`
}

// ProductInput carries the editable fields of a horeca product.
type ProductInput struct {
	Name               string  `json:"name" validate:"required"`
	ShortDescriptionNL *string `json:"short_description_nl"`
	DescriptionNL      *string `json:"description_nl"`
	ShortDescriptionEN *string `json:"short_description_en"`
	DescriptionEN      *string `json:"description_en"`
}

// CategoryInput carries the editable fields of a shop category.
type CategoryInput struct {
	ShopID         uuid.UUID  `json:"shop_id" validate:"required"`
	MainCategoryID *uuid.UUID `json:"main_category_id"`
	Name           string     `json:"name" validate:"required"`
	NameEN         *string    `json:"name_en"`
	Description    *string    `json:"description"`
	Icon           *string    `json:"icon"`
	Color          *string    `json:"color"`
	Cannabis       bool       `json:"cannabis"`
	OrderNumber    int        `json:"order_number"`
}

// TagAttachment links a tag to a kind with a reported strength.
type TagAttachment struct {
	TagID  uuid.UUID `json:"tag_id" validate:"required"`
	Amount int       `json:"amount" validate:"gte=0,lte=100"`
}

// ImageInput sets one of the six image slots.
type ImageInput struct {
	Slot int    `json:"slot" validate:"required,gte=1,lte=6"`
	URL  string `json:"url" validate:"required"`
}
