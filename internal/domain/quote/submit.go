package quote

import (
	"context"
	"errors"
	"strings"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/twc"
)

var (
	ErrNoSubmitter   = errors.New("order submission is not configured")
	ErrNoOrderNumber = errors.New("order number is required")
	ErrNoItems       = errors.New("order has no items")
)

// Submitter отправляет одну группу партнёру. orderID — номер заказа у партнёра.
type Submitter interface {
	SubmitOrder(ctx context.Context, g twc.Group) (orderID string, err error)
}

// Notifier сообщает админу об итоге отправки.
type Notifier interface {
	NotifySubmission(ctx context.Context, r SubmitReport) error
}

// OrderDraft — заказ покупателя до разбиения на группы.
type OrderDraft struct {
	OrderNumber string         `json:"orderNumber"`
	Customer    string         `json:"customer,omitempty"`
	Items       []twc.LineItem `json:"items"`
}

// GroupOutcome — итог одной группы. Группы независимы: ошибка одной не
// отменяет остальные.
type GroupOutcome struct {
	ItemNumber    string `json:"itemNumber"`
	PurchaseOrder string `json:"purchaseOrder"`
	Items         int    `json:"items"`
	OK            bool   `json:"ok"`
	OrderID       string `json:"orderId,omitempty"`
	Error         string `json:"error,omitempty"`
}

type SubmitReport struct {
	OrderNumber string         `json:"orderNumber"`
	Customer    string         `json:"customer,omitempty"`
	Groups      []GroupOutcome `json:"groups"`
	Dropped     []twc.Dropped  `json:"dropped,omitempty"`
}

func (r SubmitReport) Succeeded() int {
	n := 0
	for _, g := range r.Groups {
		if g.OK {
			n++
		}
	}
	return n
}

func (r SubmitReport) Failed() int { return len(r.Groups) - r.Succeeded() }

// SubmitOrder маппит позиции, делит их по типу изделия и отправляет группы
// по очереди. Возвращает ошибку только если отправлять нечем или нечего;
// сбои групп — в отчёте.
func (s *Service) SubmitOrder(ctx context.Context, d OrderDraft) (SubmitReport, error) {
	if s.submitter == nil {
		return SubmitReport{}, ErrNoSubmitter
	}
	orderNumber := strings.TrimSpace(d.OrderNumber)
	// PO и ключ идемпотентности строятся из номера: без него разные
	// заказы у партнёра склеятся в один
	if orderNumber == "" {
		return SubmitReport{}, ErrNoOrderNumber
	}
	if len(d.Items) == 0 {
		return SubmitReport{}, ErrNoItems
	}

	items, dropped := twc.MapForSubmission(d.Items)
	for _, dk := range dropped {
		s.log.Debug("option not sent to partner", "order", d.OrderNumber, "item", dk.Item, "key", dk.Key)
	}

	po := s.poPrefix + orderNumber
	groups := twc.GroupByItemNumber(items, po)

	rep := SubmitReport{OrderNumber: d.OrderNumber, Customer: d.Customer, Dropped: dropped}
	for _, g := range groups {
		out := GroupOutcome{ItemNumber: g.ItemNumber, PurchaseOrder: g.PurchaseOrder, Items: len(g.Items)}

		id, err := s.submitter.SubmitOrder(ctx, g)
		if err != nil {
			out.Error = err.Error()
			s.log.Error("group submit failed", "po", g.PurchaseOrder, "item_number", g.ItemNumber, "err", err)
		} else {
			out.OK = true
			out.OrderID = id
			s.log.Info("group submitted", "po", g.PurchaseOrder, "item_number", g.ItemNumber, "order_id", id)
		}
		s.rec.GroupSubmitted(out.OK)
		rep.Groups = append(rep.Groups, out)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifySubmission(ctx, rep); err != nil {
			s.log.Warn("submission notify failed", "order", d.OrderNumber, "err", err)
		}
	}
	return rep, nil
}
