package validator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"minka/shared/failure"
	"minka/shared/validator"
)

type reviewForm struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,notblank,max=500"`
}

func TestValidate_ValidBody(t *testing.T) {
	body := strings.NewReader(`{"rating": 4, "comment": "great stay"}`)

	form := reviewForm{}
	err := validator.Validate(body, &form)

	assert.NoError(t, err)
	assert.Equal(t, 4, form.Rating)
	assert.Equal(t, "great stay", form.Comment)
}

func TestValidate_MalformedJSON(t *testing.T) {
	body := strings.NewReader(`{"rating": `)

	form := reviewForm{}
	err := validator.Validate(body, &form)

	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestValidateStruct_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		form      reviewForm
		wantField string
	}{
		{
			name:      "rating above maximum",
			form:      reviewForm{Rating: 6, Comment: "fine"},
			wantField: "rating",
		},
		{
			name:      "missing comment",
			form:      reviewForm{Rating: 3},
			wantField: "comment",
		},
		{
			name:      "blank comment",
			form:      reviewForm{Rating: 3, Comment: "   "},
			wantField: "comment",
		},
		{
			name:      "comment too long",
			form:      reviewForm{Rating: 3, Comment: strings.Repeat("a", 501)},
			wantField: "comment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.form)

			assert.Error(t, err)

			var fail *failure.Failure
			assert.True(t, errors.As(err, &fail))
			assert.NotEmpty(t, fail.Fields)
			assert.Equal(t, tt.wantField, fail.Fields[0].Field)
		})
	}
}

func TestValidateStruct_BoundaryValues(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		form := reviewForm{Rating: rating, Comment: "ok"}
		assert.NoError(t, validator.ValidateStruct(&form))
	}

	longest := reviewForm{Rating: 5, Comment: strings.Repeat("b", 500)}
	assert.NoError(t, validator.ValidateStruct(&longest))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("ASC", "oneof=ASC DESC"))
	assert.Error(t, validator.ValidateVar("sideways", "oneof=ASC DESC"))
}
