package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type previewForm struct {
	Content  string `json:"content" binding:"required"`
	RenderAs string `json:"renderAs" binding:"omitempty,notefmt"`
	Price    string `json:"price" binding:"omitempty,decimal"`
}

func TestCustomValidator_Rules(t *testing.T) {
	v := NewCustomValidator()

	assert.NoError(t, v.ValidateStruct(&previewForm{Content: "x", RenderAs: "markdown", Price: "1.0850"}))
	assert.Error(t, v.ValidateStruct(previewForm{Content: "x", RenderAs: "PDF"}))
	assert.Error(t, v.ValidateStruct(previewForm{Content: "x", Price: "abc"}))
	assert.Error(t, v.ValidateStruct(previewForm{}))
	assert.NoError(t, v.ValidateStruct([]previewForm{{Content: "a"}, {Content: "b"}}))
	assert.NoError(t, v.ValidateStruct(nil))
}

func TestStruct_Messages(t *testing.T) {
	ok, msgs := Struct(&previewForm{RenderAs: "HTML"}, nil)
	assert.False(t, ok)
	assert.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Content")

	ok, msgs = Struct(&previewForm{Content: "x"}, nil)
	assert.True(t, ok)
	assert.Empty(t, msgs)
}
