package pipeline

import (
	"context"

	"github.com/teranos/iconforge/codegen"
	"github.com/teranos/iconforge/logger"
)

// Check synthesizes the catalog in memory and compares every artifact a
// build would write (metadata store, optimized svgs, manifest, generated
// sources) with the files on disk. Nothing is written.
func (p *Pipeline) Check(ctx context.Context) (*codegen.CheckResult, error) {
	c, err := p.Scan(ctx)
	if err != nil {
		return nil, err
	}

	targets, err := p.renderAll(ctx, c, nil)
	if err != nil {
		return nil, err
	}

	result := &codegen.CheckResult{UpToDate: true}
	for _, t := range targets {
		r, err := codegen.Check(t.dir, t.files)
		if err != nil {
			return nil, err
		}
		result.Merge(r)
	}

	logger.FromContext(ctx, p.log).Infow("Checked generated artifacts",
		"up_to_date", result.UpToDate,
		"stale", len(result.Stale),
		"missing", len(result.Missing))
	return result, nil
}
