package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ListSeparator joins StringList items in their text column. Items must not
// contain it.
const ListSeparator = ","

// StringList is an ordered list of strings stored as a single delimited column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	return strings.Join(l, ListSeparator), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		raw = ""
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan StringList: unsupported type %T", src)
	}

	items := []string{}
	for _, part := range strings.Split(raw, ListSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	*l = items
	return nil
}

// MarshalJSON always renders an array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Property is a listing shown on the site.
type Property struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(14,2);not null;index" swaggertype:"string"`
	Location    string          `json:"location" gorm:"size:255;not null;index"`
	Bedrooms    int             `json:"bedrooms" gorm:"not null"`
	Bathrooms   int             `json:"bathrooms" gorm:"not null"`
	Area        float64         `json:"area" gorm:"not null"`
	Images      StringList      `json:"images" gorm:"type:text"`
	Amenities   StringList      `json:"amenities" gorm:"type:text"`
	// No gorm default here: gorm skips zero values on insert when a default
	// exists, which would turn an explicit false into true.
	IsAvailable bool            `json:"is_available" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
