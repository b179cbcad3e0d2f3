package sitetext_test

import (
	"fmt"
	"testing"

	"github.com/sitetext/sitetext"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitetext.Errorf(sitetext.ENOTFOUND, "crawl %q not found", "test")

	assert.Equal(t, sitetext.ENOTFOUND, sitetext.ErrorCode(err))
	assert.Equal(t, "crawl \"test\" not found", sitetext.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitetext.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sitetext.EINTERNAL, sitetext.ErrorCode(fmt.Errorf("boom")))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", sitetext.Errorf(sitetext.EUNAVAILABLE, "connection refused"))

	assert.Equal(t, sitetext.EUNAVAILABLE, sitetext.ErrorCode(err))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitetext.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", sitetext.ErrorMessage(fmt.Errorf("boom")))
}
