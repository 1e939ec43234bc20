package ui_test

import (
	"testing"

	"github.com/sgaunet/auto-merger/internal/ui"
	"github.com/stretchr/testify/assert"
)

func TestAutoConfirmer(t *testing.T) {
	ok, err := ui.AutoConfirmer(true).Confirm("merge?")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = ui.AutoConfirmer(false).Confirm("merge?")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMergePrompt(t *testing.T) {
	assert.Equal(t, "Merge 1 pull request?", ui.MergePrompt(1, "pull request"))
	assert.Equal(t, "Merge 3 merge requests?", ui.MergePrompt(3, "merge request"))
}
