package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ledger/internal/core/domain"
)

func TestTaskPath(t *testing.T) {
	p := domain.ProjectTaskPath("app", "compileDebugJavac")
	assert.Equal(t, ":app:compileDebugJavac", p.String())
	assert.Equal(t, "compileDebugJavac", p.Name())
	assert.Equal(t, domain.NewTaskPath(":app:compileDebugJavac"), p, "equal strings intern to equal paths")
	assert.False(t, p.IsZero())

	assert.Equal(t, ":lint", domain.ProjectTaskPath("", "lint").String())
	assert.Equal(t, ":lib:lint", domain.ProjectTaskPath(":lib:", "lint").String())

	var zero domain.TaskPath
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}

func TestTaskPath_Text(t *testing.T) {
	var p domain.TaskPath
	assert.NoError(t, p.UnmarshalText([]byte(":app:bundle")))
	text, err := p.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, ":app:bundle", string(text))
}

func TestSortTaskPaths(t *testing.T) {
	got := domain.SortTaskPaths([]domain.TaskPath{tp(":b"), tp(":a"), tp(":b"), tp(":c")})
	assert.Equal(t, []domain.TaskPath{tp(":a"), tp(":b"), tp(":c")}, got)
}
