package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/mgpai22/srtkit/internal/srt"
)

type ApplyOptions struct {
	Concurrency int
	// Overlay keeps the original text under the translation
	Overlay bool
}

// Items lists the text of every cue, keyed by cue index, with LF line
// breaks.
func Items(subs *srt.Subtitles) []TranslationItem {
	items := make([]TranslationItem, 0, subs.Len())
	for index, line := range subs.All() {
		items = append(items, TranslationItem{
			Index: index,
			Text:  strings.ReplaceAll(line.Text, "\r\n", "\n"),
		})
	}
	return items
}

// Apply translates every cue of subs in place. Cue indices and times are
// untouched. If any cue is left without a translation nothing is changed.
func Apply(
	ctx context.Context,
	translator Translator,
	subs *srt.Subtitles,
	opts ApplyOptions,
) error {
	items := Items(subs)
	if len(items) == 0 {
		return nil
	}

	var results []TranslationResult
	var err error
	if ct, ok := translator.(ConcurrentTranslator); ok && opts.Concurrency > 1 {
		results, err = ct.TranslateWithConcurrency(ctx, items, opts.Concurrency)
	} else {
		results, err = translator.Translate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	translated := make(map[int]string, len(results))
	for _, r := range results {
		translated[r.Index] = r.Text
	}

	return subs.ForEach(func(line *srt.SubLine) error {
		text, ok := translated[line.Index]
		if !ok {
			return fmt.Errorf("no translation returned for cue %d", line.Index)
		}
		if opts.Overlay {
			text = text + "\n" + line.Text
		}
		line.Text = text
		return nil
	})
}
