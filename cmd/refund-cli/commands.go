package main

import (
	"clipchain/types"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
)

func commands(app func() *App) []*cli.Command {
	statusFlag := &cli.StringFlag{Name: "status", Value: "pending", Usage: "pending, sent, confirmed, failed or empty for all"}
	limitFlag := &cli.IntFlag{Name: "limit", Value: 200}

	return []*cli.Command{
		{
			Name:  "list",
			Usage: "print refund requests",
			Flags: []cli.Flag{statusFlag, limitFlag},
			Action: func(ctx *cli.Context) error {
				list, err := app().Refunds.List(ctx.Context, ctx.String("status"), ctx.Int("limit"))
				if err != nil {
					return err
				}
				return printTable(ctx.App.Writer, list)
			},
		},
		{
			Name:  "export",
			Usage: "write refund requests as csv for the payout wallet",
			Flags: []cli.Flag{statusFlag, limitFlag, &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, stdout when empty"}},
			Action: func(ctx *cli.Context) error {
				list, err := app().Refunds.List(ctx.Context, ctx.String("status"), ctx.Int("limit"))
				if err != nil {
					return err
				}
				w := ctx.App.Writer
				if out := ctx.String("out"); out != "" {
					f, err := os.Create(out)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				return writeCSV(w, list)
			},
		},
		{
			Name:      "mark-sent",
			Usage:     "record the settlement transfer of a pending refund",
			ArgsUsage: "<id|reference>",
			Flags:     []cli.Flag{&cli.StringFlag{Name: "tx", Required: true, Usage: "settlement transaction hash"}},
			Action: func(ctx *cli.Context) error {
				id, err := resolve(ctx, app())
				if err != nil {
					return err
				}
				rec, err := app().Refunds.MarkSent(ctx.Context, id, ctx.String("tx"))
				return printResult(ctx, rec, err)
			},
		},
		{
			Name:      "confirm",
			Usage:     "mark a sent refund as confirmed on chain",
			ArgsUsage: "<id|reference>",
			Action: func(ctx *cli.Context) error {
				id, err := resolve(ctx, app())
				if err != nil {
					return err
				}
				rec, err := app().Refunds.Confirm(ctx.Context, id)
				return printResult(ctx, rec, err)
			},
		},
		{
			Name:      "fail",
			Usage:     "mark a refund as failed",
			ArgsUsage: "<id|reference>",
			Flags:     []cli.Flag{&cli.StringFlag{Name: "reason", Required: true}},
			Action: func(ctx *cli.Context) error {
				id, err := resolve(ctx, app())
				if err != nil {
					return err
				}
				rec, err := app().Refunds.Fail(ctx.Context, id, ctx.String("reason"))
				return printResult(ctx, rec, err)
			},
		},
		{
			Name:      "retry",
			Usage:     "move a failed refund back to pending",
			ArgsUsage: "<id|reference>",
			Action: func(ctx *cli.Context) error {
				id, err := resolve(ctx, app())
				if err != nil {
					return err
				}
				rec, err := app().Refunds.Retry(ctx.Context, id)
				return printResult(ctx, rec, err)
			},
		},
		{
			Name:  "credit",
			Usage: "give a user one generation credit back",
			Flags: []cli.Flag{
				&cli.Uint64Flag{Name: "fid", Required: true},
				&cli.StringFlag{Name: "reason", Value: "Manual refund"},
			},
			Action: func(ctx *cli.Context) error {
				acc, err := app().Ledger.Refund(ctx.Context, ctx.Uint64("fid"), ctx.String("reason"))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(ctx.App.Writer, "fid %d balance %d\n", acc.Fid, acc.CreditBalance)
				return err
			},
		},
	}
}

func resolve(ctx *cli.Context, app *App) (int64, error) {
	if ctx.NArg() != 1 {
		return 0, errors.New("exactly one refund id or reference is required")
	}
	return app.Refunds.Resolve(ctx.Context, ctx.Args().First())
}

func printResult(ctx *cli.Context, rec *types.RefundRecord, err error) error {
	if err != nil {
		return err
	}
	return printTable(ctx.App.Writer, []types.RefundRecord{*rec})
}

func printTable(w io.Writer, list []types.RefundRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREFERENCE\tSTATUS\tAMOUNT\tRECIPIENT\tPAYMENT TX\tSETTLEMENT TX\tCREATED")
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s %s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Reference, r.Status, r.Amount, r.Token, r.RecipientAddress, r.TransactionHash, r.SettlementTxHash, r.CreatedAt)
	}
	return tw.Flush()
}

var csvHeader = []string{"id", "reference", "recipient", "amount", "token", "chain", "payment_tx", "reason", "status", "created_at"}

func writeCSV(w io.Writer, list []types.RefundRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range list {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.Reference,
			r.RecipientAddress,
			r.Amount,
			r.Token,
			r.Chain,
			r.TransactionHash,
			r.Reason,
			r.Status,
			r.CreatedAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
