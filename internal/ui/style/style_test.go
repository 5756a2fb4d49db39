package style_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ledger/internal/ui/style"
)

func TestFor_PlainOutputHasNoEscapes(t *testing.T) {
	p := style.For(new(bytes.Buffer))

	assert.Equal(t, "variant debug", p.Title.Render("variant debug"))
	assert.Equal(t, style.Cross+" failed", p.Error.Render(style.Cross+" failed"))
}
