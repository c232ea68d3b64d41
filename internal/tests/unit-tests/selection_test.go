package unit_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"innovateai/internal/services"
)

func TestSelection_ForgetOnlyClearsMatchingID(t *testing.T) {
	var sel services.Selection
	assert.Empty(t, sel.Selected())

	sel.Select("p1")
	sel.Forget("p2")
	assert.Equal(t, "p1", sel.Selected())

	sel.Forget("p1")
	assert.Empty(t, sel.Selected())

	sel.Select("p3")
	sel.Clear()
	assert.Empty(t, sel.Selected())
}
