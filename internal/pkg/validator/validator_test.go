package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Reason string  `json:"reason" validate:"required"`
	Type   string  `json:"type" validate:"required,oneof=quotation invoice"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	fields := Validate(sample{Type: "receipt", Amount: -1})

	assert.Equal(t, map[string]string{
		"reason": "required",
		"type":   "oneof",
		"amount": "gte",
	}, fields)
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Reason: "dup", Type: "invoice"}))

	err := Struct(sample{Type: "invoice"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "required", verr.Fields["reason"])
	assert.Equal(t, "validation failed: reason: required", err.Error())
}
