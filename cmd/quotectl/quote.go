package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/inventory"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/options"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/quote"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/treatment"
)

// quoteFile — всё для расчёта без базы: записи, размеры, выбор и
// цены склада.
type quoteFile struct {
	Template      treatment.Template    `json:"template"`
	Material      treatment.Material    `json:"material"`
	Width         any                   `json:"width"`
	Drop          any                   `json:"drop"`
	Pooling       any                   `json:"pooling"`
	Options       []options.Node        `json:"options"`
	Selected      []string              `json:"selected"`
	Inventory     []inventory.Item      `json:"inventory"`
	InventoryMode inventory.PricingMode `json:"inventory_mode"`
	MarkupPercent float64               `json:"markup_percent"`
}

type itemList []inventory.Item

func (l itemList) GetItem(_ context.Context, id string) (*inventory.Item, error) {
	for i := range l {
		if l[i].ID == id {
			return &l[i], nil
		}
	}
	return nil, nil
}

var quoteCmd = &cobra.Command{
	Use:   "quote <request.json>",
	Short: "Price one treatment from a JSON file (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func readQuoteFile(path string, stdin io.Reader) (quoteFile, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return quoteFile{}, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var qf quoteFile
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&qf); err != nil {
		return quoteFile{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if qf.InventoryMode == "" {
		qf.InventoryMode = inventory.ModeSelling
	}
	for i := range qf.Inventory {
		// в файле выключенных позиций не бывает
		qf.Inventory[i].Active = true
	}
	return qf, nil
}

func runQuote(cmd *cobra.Command, args []string) error {
	qf, err := readQuoteFile(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	agg := options.NewAggregator(inventory.NewResolver(itemList(qf.Inventory)))
	q, err := quote.Configure(cmd.Context(), agg, quote.Context{
		Template:     qf.Template,
		Material:     qf.Material,
		Measurements: treatment.ParseMeasurements(qf.Width, qf.Drop, qf.Pooling),
		Tree:         qf.Options,
		Selection:    options.NewSelection(qf.Selected...),
		Pricing:      quote.Pricing{InventoryMode: qf.InventoryMode, MarkupPercent: qf.MarkupPercent},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(q)
}
