package amazonapi

// Converter converts an HTML fragment to Markdown. The extraction engine
// uses it to carry a readable form of rich product descriptions alongside
// the plain text.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
