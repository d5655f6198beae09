package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrCapacityExceeded, "Cannot approve: Course is at full capacity")

	assert.True(t, stdErrors.Is(err, ErrCapacityExceeded))
	assert.False(t, stdErrors.Is(err, ErrNotFound))
	assert.Equal(t, "This course is at full capacity", ErrCapacityExceeded.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	err := FromError(fmt.Errorf("boom"))

	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Nil(t, FromError(nil))
}

func TestInvalidCarriesFields(t *testing.T) {
	err := Invalid(map[string]string{"title": "Course title is required"})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Course title is required", err.Fields["title"])
	assert.Nil(t, ErrValidation.Fields)
}
