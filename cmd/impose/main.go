// seehuhn.de/go/impose - automated imposition of print jobs onto press sheets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Impose reads a TOML job ticket, fetches the artwork and writes the
// imposed press sheets as a PDF file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"seehuhn.de/go/impose"
	"seehuhn.de/go/impose/barcode"
	"seehuhn.de/go/impose/fetch"
	"seehuhn.de/go/impose/pdfdraw"
	"seehuhn.de/go/impose/render"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := root().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	output     string
	artworkDir string
	artworkURL string
	noBarcode  bool
	verbose    bool
}

func root() *cobra.Command {
	opt := &options{}

	cmd := &cobra.Command{
		Use:          "impose ticket.toml",
		Short:        "impose print jobs onto press sheets",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if opt.verbose {
				level = log.DebugLevel
			}
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05",
				Level:           level,
			})
			return run(cmd.Context(), logger, args[0], opt)
		},
	}

	cmd.Flags().StringVarP(&opt.output, "output", "o", "",
		"output file name (default: derived from the ticket)")
	cmd.Flags().StringVar(&opt.artworkDir, "artwork-dir", "",
		"directory holding <id>.pdf artwork files")
	cmd.Flags().StringVar(&opt.artworkURL, "artwork-url", "",
		"base URL of the artwork store")
	cmd.Flags().BoolVar(&opt.noBarcode, "no-barcode", false,
		"render tracking values as text instead of barcodes")
	cmd.Flags().BoolVarP(&opt.verbose, "verbose", "v", false,
		"enable verbose logging")

	return cmd
}

func run(ctx context.Context, logger *log.Logger, ticketName string, opt *options) error {
	fd, err := os.Open(ticketName)
	if err != nil {
		return err
	}
	job, err := impose.ReadJob(fd)
	fd.Close()
	if err != nil {
		return err
	}

	src, err := artworkSource(opt)
	if err != nil {
		return err
	}

	var gen barcode.Generator = barcode.Code128{}
	if opt.noBarcode {
		gen = barcode.Null{}
	}

	outName := opt.output
	if outName == "" {
		outName = job.OutputName()
	}
	doc, err := pdfdraw.Create(outName, job.Sheet.W, job.Sheet.H)
	if err != nil {
		return err
	}

	imp := &render.Imposer{
		Job:     job,
		Source:  src,
		Barcode: gen,
		Log:     logger,
	}
	res, err := imp.Run(ctx, doc)
	if err != nil {
		doc.Close()
		os.Remove(outName)
		return err
	}
	if err := doc.Close(); err != nil {
		os.Remove(outName)
		return err
	}

	logger.Info("imposition finished",
		"output", outName,
		"grid", fmt.Sprintf("%dx%d", res.Grid.Cols, res.Grid.Rows),
		"waste", res.Grid.Waste,
		"sheets", res.Sheets,
		"covers", res.Covers)
	return nil
}

func artworkSource(opt *options) (fetch.Source, error) {
	switch {
	case opt.artworkURL != "" && opt.artworkDir != "":
		return &fetch.HTTP{
			Base:     opt.artworkURL,
			Fallback: &fetch.Dir{Path: opt.artworkDir},
		}, nil
	case opt.artworkURL != "":
		return &fetch.HTTP{Base: opt.artworkURL}, nil
	case opt.artworkDir != "":
		return &fetch.Dir{Path: opt.artworkDir}, nil
	default:
		return nil, errors.New("either --artwork-dir or --artwork-url is required")
	}
}
