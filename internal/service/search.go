package service

import (
	"strings"

	"github.com/manpreet1462/bookit/internal/model"
)

// SearchExperiences keeps the experiences whose title or location contains
// query, ignoring case and surrounding spaces.  An empty query keeps all.
func SearchExperiences(exps []model.Experience, query string) []model.Experience {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return exps
	}
	out := make([]model.Experience, 0, len(exps))
	for _, e := range exps {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Location), q) {
			out = append(out, e)
		}
	}
	return out
}
