package value

import (
	"fmt"

	"github.com/google/uuid"
)

type InventoryID uuid.UUID

func NewInventoryID() InventoryID {
	return InventoryID(uuid.New())
}

func ParseInventoryID(s string) (InventoryID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return InventoryID{}, fmt.Errorf("uuid.Parse: %w", err)
	}

	return InventoryID(id), nil
}

func (id InventoryID) String() string {
	return uuid.UUID(id).String()
}

func (id InventoryID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id InventoryID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *InventoryID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

type SaleID uuid.UUID

func NewSaleID() SaleID {
	return SaleID(uuid.New())
}

func (id SaleID) String() string {
	return uuid.UUID(id).String()
}

func (id SaleID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *SaleID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// CardID идентификатор карточки в каталоге.
type CardID string

func (id CardID) String() string {
	return string(id)
}
