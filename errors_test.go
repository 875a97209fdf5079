package bwtz_test

import (
	"errors"
	"testing"

	"github.com/dargueta/bwtz"
	"github.com/stretchr/testify/assert"
)

func TestCodecErrorWithMessage(t *testing.T) {
	newErr := bwtz.ErrInvalidIndex.WithMessage("asdfqwerty")
	assert.Equal(
		t, "Invalid index: asdfqwerty", newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, bwtz.ErrInvalidIndex)
	assert.NotErrorIs(t, newErr, bwtz.ErrTruncatedData)
}

func TestCodecErrorWrap(t *testing.T) {
	originalErr := errors.New("original error")
	newErr := bwtz.ErrIOFailed.Wrap(originalErr)
	expectedMessage := "Input/output error: original error"

	assert.EqualValues(t, expectedMessage, newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, originalErr, "original error not set as parent")
	assert.ErrorIs(t, newErr, bwtz.ErrIOFailed, "codec error not set as parent")
}

func TestCodecErrorChainedMessages(t *testing.T) {
	newErr := bwtz.ErrTruncatedData.WithMessage("raw record").WithMessage("need 4 bytes")
	assert.Equal(t, "Truncated data: raw record: need 4 bytes", newErr.Error())
	assert.ErrorIs(t, newErr, bwtz.ErrTruncatedData)
}
