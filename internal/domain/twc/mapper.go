package twc

import (
	"fmt"
	"strings"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/options"
)

// lookup — один способ найти поле партнёра по опции.
type lookup func(key string, o OptionSelection) string

// Порядок важен: сырой ключ, ключ в нижнем регистре, подпись, подпись в нижнем.
var lookups = []lookup{
	func(key string, _ OptionSelection) string { return key },
	func(key string, _ OptionSelection) string { return strings.ToLower(key) },
	func(_ string, o OptionSelection) string { return strings.TrimSpace(o.Label) },
	func(_ string, o OptionSelection) string { return strings.ToLower(strings.TrimSpace(o.Label)) },
}

// ResolveField ищет поле партнёра для опции. ok=false — сопоставить нечем.
func ResolveField(o OptionSelection) (string, bool) {
	key := options.StripInstanceSuffix(o.Key)
	for _, l := range lookups {
		cand := l(key, o)
		if cand == "" {
			continue
		}
		if f, ok := fieldIndex[cand]; ok && IsKnownField(f) {
			return f, true
		}
	}
	return "", false
}

// MapOptions переводит выбранные опции в поля партнёра.
// Возвращает поля в порядке первого появления и ключи, которые отброшены
// как неизвестные. Пустые значения пропускаются молча.
func MapOptions(selected, breakdown []OptionSelection) ([]NameValue, []string) {
	var (
		out     []NameValue
		dropped []string
		seen    = map[string]bool{}
	)

	add := func(opts []OptionSelection) {
		for _, o := range opts {
			if isEmptyValue(o.Value) {
				continue
			}
			field, ok := ResolveField(o)
			if !ok {
				dropped = append(dropped, o.Key)
				continue
			}
			if seen[field] {
				continue
			}
			seen[field] = true

			v := translate(field, strings.TrimSpace(o.Value))
			if isColourField(field) {
				v = ExtractColour(v)
			}
			out = append(out, NameValue{Name: field, Value: v})
		}
	}
	// явный выбор покупателя важнее полей из расчёта
	add(selected)
	add(breakdown)

	return out, dropped
}

// MapLineItem собирает позицию для партнёра.
func MapLineItem(li LineItem) (OrderLineItem, []string) {
	fields, dropped := MapOptions(li.Options, li.BreakdownFields)
	if fields == nil {
		fields = []NameValue{}
	}
	return OrderLineItem{
		ItemNumber:        strings.TrimSpace(li.ItemNumber),
		ItemName:          li.ItemName,
		Location:          li.Location,
		Quantity:          max(li.Quantity, 1),
		Width:             li.Width,
		Drop:              li.Drop,
		Material:          li.Material,
		Colour:            ExtractColour(li.Colour),
		CustomFieldValues: fields,
	}, dropped
}

// MapForSubmission маппит все позиции заказа.
func MapForSubmission(items []LineItem) ([]OrderLineItem, []Dropped) {
	out := make([]OrderLineItem, 0, len(items))
	var dropped []Dropped
	for i, li := range items {
		m, d := MapLineItem(li)
		out = append(out, m)
		for _, k := range d {
			dropped = append(dropped, Dropped{Item: i, Key: k})
		}
	}
	return out, dropped
}

// GroupByItemNumber делит позиции на отправки: партнёр принимает один тип
// изделия на заказ. Группы идут в порядке первого появления. Если групп
// больше одной, PO получает суффикс "-1", "-2", ...
func GroupByItemNumber(items []OrderLineItem, purchaseOrder string) []Group {
	var (
		groups []Group
		index  = map[string]int{}
	)
	for _, it := range items {
		i, ok := index[it.ItemNumber]
		if !ok {
			i = len(groups)
			index[it.ItemNumber] = i
			groups = append(groups, Group{ItemNumber: it.ItemNumber})
		}
		groups[i].Items = append(groups[i].Items, it)
	}

	for i := range groups {
		if len(groups) == 1 {
			groups[i].PurchaseOrder = purchaseOrder
			continue
		}
		groups[i].PurchaseOrder = fmt.Sprintf("%s-%d", purchaseOrder, i+1)
	}
	return groups
}
