package quote

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/inventory"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/options"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/treatment"
)

// Источники записей. Как они хранятся, сервису неважно.
type (
	TemplateSource interface {
		GetTemplate(ctx context.Context, id int64) (*treatment.Template, error)
	}
	MaterialSource interface {
		GetMaterial(ctx context.Context, id int64) (*treatment.Material, error)
	}
	OptionSource interface {
		Tree(ctx context.Context, templateID int64) ([]options.Node, error)
	}
)

// Recorder — счётчики; реализация в infra/metrics.
type Recorder interface {
	QuoteCalculated(family string, outcome string)
	GroupSubmitted(ok bool)
}

type nopRecorder struct{}

func (nopRecorder) QuoteCalculated(string, string) {}
func (nopRecorder) GroupSubmitted(bool)            {}

// Pricing — цены склада по умолчанию, если запрос их не задал.
type Pricing struct {
	InventoryMode inventory.PricingMode
	MarkupPercent float64
}

type Service struct {
	log       *slog.Logger
	templates TemplateSource
	materials MaterialSource
	options   OptionSource
	agg       *options.Aggregator
	pricing   Pricing
	rec       Recorder

	submitter Submitter
	notifier  Notifier
	poPrefix  string
}

type Deps struct {
	Templates TemplateSource
	Materials MaterialSource
	Options   OptionSource
	Inventory options.InventoryPricer
	Submitter Submitter
	Notifier  Notifier
	Recorder  Recorder
}

func NewService(log *slog.Logger, d Deps, pricing Pricing, poPrefix string) *Service {
	rec := d.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Service{
		log:       log,
		templates: d.Templates,
		materials: d.Materials,
		options:   d.Options,
		agg:       options.NewAggregator(d.Inventory),
		pricing:   pricing,
		rec:       rec,
		submitter: d.Submitter,
		notifier:  d.Notifier,
		poPrefix:  poPrefix,
	}
}

// Quote загружает шаблон, материал и дерево опций и считает цену.
func (s *Service) Quote(ctx context.Context, req Request) (Quote, error) {
	tpl, err := s.templates.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		return Quote{}, fmt.Errorf("load template: %w", err)
	}
	mat, err := s.materials.GetMaterial(ctx, req.MaterialID)
	if err != nil {
		return Quote{}, fmt.Errorf("load material: %w", err)
	}

	var tree []options.Node
	if len(req.SelectedOptions) > 0 {
		tree, err = s.options.Tree(ctx, req.TemplateID)
		if err != nil {
			return Quote{}, fmt.Errorf("load options: %w", err)
		}
	}

	tc := Context{
		Template:     *tpl,
		Material:     *mat,
		Measurements: treatment.ParseMeasurements(req.Width, req.Drop, req.Pooling),
		Tree:         tree,
		Selection:    options.NewSelection(req.SelectedOptions...),
		Pricing:      s.pricingFor(req),
	}

	q, err := Configure(ctx, s.agg, tc)
	s.rec.QuoteCalculated(string(tc.Template.Family), outcome(q, err))
	if err != nil {
		s.log.Warn("quote failed",
			"template_id", req.TemplateID, "material_id", req.MaterialID, "err", err)
		return Quote{}, err
	}
	if len(q.Options.Excluded) > 0 || len(q.Options.Duplicates) > 0 {
		s.log.Debug("options skipped",
			"template_id", req.TemplateID,
			"excluded", q.Options.Excluded, "duplicates", q.Options.Duplicates)
	}
	return q, nil
}

func (s *Service) pricingFor(req Request) Pricing {
	p := s.pricing
	if req.InventoryMode != "" {
		p.InventoryMode = req.InventoryMode
	}
	if req.MarkupPercent != nil {
		p.MarkupPercent = *req.MarkupPercent
	}
	return p
}

func outcome(q Quote, err error) string {
	switch {
	case err != nil:
		return "error"
	case !q.Complete:
		return "incomplete"
	default:
		return "ok"
	}
}
