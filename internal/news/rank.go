package news

import (
	"slices"

	"github.com/ppiankov/globeintel/internal/model"
)

// Rank orders breaking articles first, then trending ones, keeping the
// original order within each group. The input slice is not modified.
func Rank(articles []model.Article) []model.Article {
	ranked := slices.Clone(articles)
	slices.SortStableFunc(ranked, func(a, b model.Article) int {
		return score(b) - score(a)
	})
	return ranked
}

func score(a model.Article) int {
	s := 0
	if a.IsBreaking {
		s += 2
	}
	if a.IsTrending {
		s++
	}
	return s
}
