package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type SwipeRequest struct {
	SwipedID NumericID `json:"swiped_id" form:"swiped_id"`
	Action   string    `json:"action"    form:"action"`
}

// NumericID is an id field that accepts a JSON number or a numeric string.
// Present is false for a missing, null or blank value; Valid is false when
// something was sent that is not a whole number.
type NumericID struct {
	Value   int
	Present bool
	Valid   bool
}

func NewNumericID(value int) NumericID {
	return NumericID{Value: value, Present: true, Valid: true}
}

func (n *NumericID) UnmarshalJSON(data []byte) error {
	*n = NumericID{}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var number int
	if err := json.Unmarshal(data, &number); err == nil {
		*n = NewNumericID(number)
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		return n.UnmarshalText([]byte(text))
	}

	n.Present = true
	return nil
}

func (n *NumericID) UnmarshalText(text []byte) error {
	*n = NumericID{}

	value := strings.TrimSpace(string(text))
	if value == "" {
		return nil
	}

	n.Present = true
	if number, err := strconv.Atoi(value); err == nil {
		n.Value = number
		n.Valid = true
	}
	return nil
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}
