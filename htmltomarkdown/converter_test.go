package htmltomarkdown_test

import (
	"testing"

	amazonapi "github.com/belo-research/amazon-product-api"
	"github.com/belo-research/amazon-product-api/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements amazonapi.Converter at compile time.
var _ amazonapi.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<p>Meet the all-new Echo Dot.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Meet the all-new Echo Dot.")
	})

	t.Run("converts headings and emphasis", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Product Description</h2><p><strong>Crisp</strong> vocals and <em>balanced</em> bass.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "## Product Description")
		assert.Contains(t, md, "**Crisp**")
		assert.Contains(t, md, "*balanced*")
	})

	t.Run("converts feature lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>Compact design</li><li>Voice control</li><li>Built-in hub</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- Compact design")
		assert.Contains(t, md, "- Voice control")
		assert.Contains(t, md, "- Built-in hub")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>See the <a href="https://example.com/guide">setup guide</a> for details.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[setup guide](https://example.com/guide)")
	})

	t.Run("converts specification tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Spec</th><th>Value</th></tr></thead>
<tbody><tr><td>Weight</td><td>328 g</td></tr><tr><td>Height</td><td>89 mm</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Spec")
		assert.Contains(t, md, "Weight")
		assert.Contains(t, md, "328 g")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, amazonapi.EINVALID, amazonapi.ErrorCode(err))
	})
}
