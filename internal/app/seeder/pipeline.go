// Package seeder imports a predefined category tree for one user. Nodes that
// already exist (same name, case-insensitive) are reused, so a tree file can
// be applied repeatedly.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/category"
)

// categoryWriter is satisfied by the category service. The user is taken
// from the context.
type categoryWriter interface {
	Tree(ctx context.Context) (domain.CategoryTree, error)
	CreateArea(ctx context.Context, input category.CreateAreaInput) (*domain.Area, error)
	CreateField(ctx context.Context, input category.CreateFieldInput) (*domain.Field, error)
	CreateActivity(ctx context.Context, input category.CreateActivityInput) (*domain.Activity, error)
}

// Result counts what one run created and what it found already present.
type Result struct {
	Areas      int
	Fields     int
	Activities int
	Existing   int
	Duration   time.Duration
}

// Pipeline applies a Tree through the category service, so names are
// validated and limits enforced exactly as for API calls.
type Pipeline struct {
	log    *slog.Logger
	svc    categoryWriter
	dryRun bool
}

// NewPipeline creates a new Pipeline. With dryRun set nothing is written and
// Result reports what would be created.
func NewPipeline(log *slog.Logger, svc categoryWriter, dryRun bool) *Pipeline {
	return &Pipeline{log: log.With("component", "seeder"), svc: svc, dryRun: dryRun}
}

// Run imports tree for the user in ctx.
func (p *Pipeline) Run(ctx context.Context, tree Tree) (Result, error) {
	start := time.Now()
	var res Result

	current, err := p.svc.Tree(ctx)
	if err != nil {
		return res, fmt.Errorf("load tree: %w", err)
	}

	for _, as := range tree.Areas {
		node, ok := findArea(current, as.Name)
		if ok {
			res.Existing++
		} else {
			res.Areas++
			node = domain.AreaNode{Area: domain.Area{Name: as.Name}}
			if !p.dryRun {
				area, err := p.svc.CreateArea(ctx, category.CreateAreaInput{Name: as.Name, Color: as.Color})
				if err != nil {
					return res, fmt.Errorf("area %q: %w", as.Name, err)
				}
				node.Area = *area
			}
		}

		for _, fs := range as.Fields {
			if err := p.seedField(ctx, node, fs, &res); err != nil {
				return res, fmt.Errorf("area %q: %w", as.Name, err)
			}
		}
	}

	res.Duration = time.Since(start)
	p.log.InfoContext(ctx, "seed completed",
		slog.Int("areas", res.Areas),
		slog.Int("fields", res.Fields),
		slog.Int("activities", res.Activities),
		slog.Int("existing", res.Existing),
		slog.Bool("dry_run", p.dryRun),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

func (p *Pipeline) seedField(ctx context.Context, area domain.AreaNode, fs FieldSpec, res *Result) error {
	node, ok := findField(area, fs.Name)
	if ok {
		res.Existing++
	} else {
		res.Fields++
		node = domain.FieldNode{Field: domain.Field{Name: fs.Name}}
		if !p.dryRun {
			field, err := p.svc.CreateField(ctx, category.CreateFieldInput{AreaID: area.Area.ID, Name: fs.Name})
			if err != nil {
				return fmt.Errorf("field %q: %w", fs.Name, err)
			}
			node.Field = *field
		}
	}

	for _, name := range fs.Activities {
		if hasActivity(node, name) {
			res.Existing++
			continue
		}
		res.Activities++
		if p.dryRun {
			continue
		}
		if _, err := p.svc.CreateActivity(ctx, category.CreateActivityInput{FieldID: node.Field.ID, Name: name}); err != nil {
			return fmt.Errorf("field %q: activity %q: %w", fs.Name, name, err)
		}
	}
	return nil
}

func findArea(t domain.CategoryTree, name string) (domain.AreaNode, bool) {
	for _, an := range t.Areas {
		if domain.SameName(an.Area.Name, name) {
			return an, true
		}
	}
	return domain.AreaNode{}, false
}

func findField(an domain.AreaNode, name string) (domain.FieldNode, bool) {
	for _, fn := range an.Fields {
		if domain.SameName(fn.Field.Name, name) {
			return fn, true
		}
	}
	return domain.FieldNode{}, false
}

func hasActivity(fn domain.FieldNode, name string) bool {
	for _, a := range fn.Activities {
		if domain.SameName(a.Name, name) {
			return true
		}
	}
	return false
}
