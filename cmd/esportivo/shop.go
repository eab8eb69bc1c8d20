package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	shopdomain "github.com/Black-And-White-Club/esportivo/app/modules/shop/domain"
	"github.com/urfave/cli/v2"
)

func (r *runner) shopCommand() *cli.Command {
	return &cli.Command{
		Name:  "shop",
		Usage: "club store",
		Subcommands: []*cli.Command{
			{
				Name:  "products",
				Usage: "products of the selected club",
				Action: func(c *cli.Context) error {
					products, err := r.app.Shop.Products(c.Context, r.selectedClubID())
					if err != nil {
						return err
					}
					tw := newTable(r.out, "ID", "PRODUTO", "PREÇO", "ESTOQUE")
					for _, p := range products {
						stock := "-"
						if p.Stock != nil {
							stock = strconv.Itoa(*p.Stock)
						}
						row(tw, p.ID, p.Name, shopdomain.FormatPrice(p.PriceCents), stock)
					}
					return tw.Flush()
				},
			},
			{
				Name:      "product",
				Usage:     "product details",
				ArgsUsage: "<product id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "product id")
					if err != nil {
						return err
					}
					p, err := r.app.Shop.Product(c.Context, id)
					if err != nil {
						return err
					}
					fmt.Fprintf(r.out, "%s  %s\n", p.Name, shopdomain.FormatPrice(p.PriceCents))
					if p.Description != "" {
						fmt.Fprintln(r.out, p.Description)
					}
					if len(p.Sizes) > 0 {
						fmt.Fprintf(r.out, "Tamanhos: %s\n", strings.Join(p.Sizes, ", "))
					}
					if !p.Available(1) {
						fmt.Fprintln(r.out, "Esgotado")
					}
					return nil
				},
			},
			{
				Name:      "order",
				Usage:     "place an order",
				ArgsUsage: "<product id>[:quantity[:size]] ...",
				Action: func(c *cli.Context) error {
					if err := r.requireSignIn(); err != nil {
						return err
					}
					items, err := parseItems(c.Args().Slice())
					if err != nil {
						return err
					}
					orders, err := r.app.Shop.PlaceOrder(c.Context, items)
					if err != nil {
						return err
					}
					r.printOrders(orders)
					return nil
				},
			},
			{
				Name:  "orders",
				Usage: "your orders",
				Action: func(c *cli.Context) error {
					if err := r.requireSignIn(); err != nil {
						return err
					}
					orders, err := r.app.Shop.MyOrders(c.Context)
					if err != nil {
						return err
					}
					r.printOrders(orders)
					return nil
				},
			},
		},
	}
}

// parseItems reads "id", "id:qty" or "id:qty:size" arguments.
func parseItems(args []string) ([]shopdomain.OrderItem, error) {
	items := make([]shopdomain.OrderItem, 0, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 3)
		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q", parts[0])
		}
		item := shopdomain.OrderItem{ProductID: id, Quantity: 1}
		if len(parts) > 1 {
			if item.Quantity, err = strconv.Atoi(parts[1]); err != nil {
				return nil, fmt.Errorf("invalid quantity %q", parts[1])
			}
		}
		if len(parts) > 2 {
			item.Size = parts[2]
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *runner) printOrders(orders []shopdomain.Order) {
	tw := newTable(r.out, "PEDIDO", "DATA", "SITUAÇÃO", "ITENS", "TOTAL")
	for _, o := range orders {
		count := 0
		for _, l := range o.Items {
			count += l.Quantity
		}
		row(tw, o.ID, o.CreatedAt.Local().Format(time.DateOnly), o.Status, count, shopdomain.FormatPrice(o.TotalCents))
	}
	_ = tw.Flush()
}

func (r *runner) cardCommand() *cli.Command {
	return &cli.Command{
		Name:  "card",
		Usage: "digital membership card",
		Action: func(c *cli.Context) error {
			if err := r.requireSignIn(); err != nil {
				return err
			}
			card, err := r.app.Membership.Card(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.out, "%s\n%s\nNº %s  %s\n", card.ClubName, card.HolderName, card.Number, card.Category)
			fmt.Fprintf(r.out, "Validade: %s\n", card.ValidUntil.Format("02/01/2006"))
			if card.IsValid(time.Now()) {
				fmt.Fprintln(r.out, "Situação: válida")
			} else {
				fmt.Fprintln(r.out, "Situação: inválida")
			}
			fmt.Fprintf(r.out, "QR: %s\n", card.QRPayload)
			return nil
		},
	}
}
