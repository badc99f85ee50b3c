package cli

import (
	"github.com/kantord/enwiro/internal/listing"
	"github.com/kantord/enwiro/internal/output"
	"github.com/kantord/enwiro/internal/suggest"
)

// reportNotFound prints an "unknown environment or recipe" error,
// appending a "did you mean?" suggestion when list_all's known names
// contain something close to name.
func reportNotFound(w *output.Writer, name string, pipeline *listing.Pipeline) {
	msg := "no environment or recipe named " + quote(name)

	known, err := pipeline.KnownNames()
	if err == nil {
		matches := suggest.Keys(name, known)
		msg += suggest.FormatSuggestion(matches)
	}

	w.Error("%s\n", msg)
}

func quote(s string) string {
	return "\"" + s + "\""
}
