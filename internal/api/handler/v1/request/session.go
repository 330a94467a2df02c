package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/openmat-france/openmat-api/internal/domain"
)

var errUnknownSortOption = errors.New("unknown sort option")

type CreateSessionRequest struct {
	Title       string `json:"title"`
	Club        string `json:"club"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Price       string `json:"price"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
}

func (req *CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 120)),
		validation.Field(&req.Club, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.City, validation.Required, validation.Length(1, 80)),
		validation.Field(&req.Address, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Time, validation.Required),
		validation.Field(&req.Type, validation.Required,
			validation.In(domain.DisciplineJJB, domain.DisciplineLutaLivre, domain.DisciplineMixte)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 2000)),
	)
}

// UpdateSessionRequest carries a partial edit; absent fields stay as they
// are.
type UpdateSessionRequest struct {
	Title       *string `json:"title"`
	Club        *string `json:"club"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Price       *string `json:"price"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Photo       *string `json:"photo"`
}

func (req *UpdateSessionRequest) Validate() error {
	if req.Type != nil {
		return validation.Validate(*req.Type,
			validation.In(domain.DisciplineJJB, domain.DisciplineLutaLivre, domain.DisciplineMixte))
	}

	return nil
}

func (req *UpdateSessionRequest) ToUpdate() domain.SessionUpdate {
	return domain.SessionUpdate{
		Title:       req.Title,
		Club:        req.Club,
		City:        req.City,
		Address:     req.Address,
		Date:        req.Date,
		Time:        req.Time,
		Price:       req.Price,
		Type:        req.Type,
		Description: req.Description,
		Photo:       req.Photo,
	}
}

// ApproveSessionRequest optionally attaches a photo with the approval. An
// empty photo means the operator explicitly skipped.
type ApproveSessionRequest struct {
	Photo string `json:"photo"`
}

type SetPhotoRequest struct {
	Photo string `json:"photo"`
}

func (req *SetPhotoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Photo, validation.Required),
	)
}

// ValidateSortOption accepts the listing sort query parameter, where empty
// means "store order".
func ValidateSortOption(sort string) error {
	if sort == "" {
		return nil
	}

	switch sort {
	case "date-asc", "date-desc", "city-asc", "city-desc", "price-asc", "price-desc":
		return nil
	}

	return errUnknownSortOption
}
