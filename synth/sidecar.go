package synth

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/teranos/iconforge/catalog"
	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
)

// sidecar is the optional <name>.json shipped next to an icon
type sidecar struct {
	Tags         []string `json:"tags"`
	Categories   []string `json:"categories"`
	Contributors []string `json:"contributors"`
}

// readSidecar returns nil when the file does not exist
func readSidecar(path string) (*sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read sidecar %s", path)
	}

	var side sidecar
	if err := json.Unmarshal(data, &side); err != nil {
		return nil, errors.NewMalformed(path, err)
	}
	return &side, nil
}

// merge unions sidecar tags (lowercased) and in-vocabulary categories into
// record and carries contributors through verbatim
func (s *Synthesizer) merge(record catalog.IconRecord, side *sidecar) catalog.IconRecord {
	tags := record.Tags
	for _, tag := range side.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
	}
	record.Tags = catalog.SortedSet(tags)

	vocab := s.rules.Vocabulary()
	categories := record.Categories
	for _, category := range side.Categories {
		if !vocab[category] {
			logger.Output(s.log, logger.OutputDecisions, "Dropping sidecar category outside the vocabulary",
				logger.FieldIcon, record.Name,
				logger.FieldCategory, category)
			continue
		}
		categories = append(categories, category)
	}
	record.Categories = withoutRedundantFallback(catalog.SortedSet(categories), s.rules.Fallback)

	if side.Contributors != nil {
		record.Contributors = append([]string{}, side.Contributors...)
	}
	return record
}

// withoutRedundantFallback drops the fallback once a real category is present
func withoutRedundantFallback(categories []string, fallback string) []string {
	if len(categories) <= 1 {
		return categories
	}
	out := categories[:0]
	for _, c := range categories {
		if c != fallback {
			out = append(out, c)
		}
	}
	return out
}
