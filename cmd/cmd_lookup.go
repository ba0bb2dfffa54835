// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"

	"github.com/jcodagnone/geocoder/geocode"
	"github.com/jcodagnone/geocoder/spatial"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// queryOptions are the flags that describe a geocoding query.
type queryOptions struct {
	address  string
	latlng   string
	bounds   string
	region   string
	language string
	output   string
	nfc      bool
}

func (o *queryOptions) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.address, "address", "a", "", "address to geocode")
	fs.StringVarP(&o.latlng, "latlng", "p", "", `point to reverse geocode, as "lat,lng"`)
	fs.StringVarP(&o.bounds, "bounds", "b", "", `viewport bias, as "lat,lng|lat,lng"`)
	fs.StringVarP(&o.region, "region", "r", "", "region bias (ccTLD code)")
	fs.StringVarP(&o.language, "language", "l", "", "language of the results (BCP 47)")
	fs.StringVarP(&o.output, "output", "o", string(geocode.FormatJSON), "response format: json or xml")
	fs.BoolVar(&o.nfc, "nfc", false, "normalize the address to Unicode NFC before sending it")
}

func (o *queryOptions) query() (geocode.Query, error) {
	q := geocode.Query{
		Address: o.address,
		Region:  o.region,
		Format:  geocode.OutputFormat(o.output),
	}

	if o.nfc {
		q.Address = norm.NFC.String(q.Address)
	}

	if o.latlng != "" {
		p, err := spatial.ParseLatLng(o.latlng)
		if err != nil {
			return q, usageError(fmt.Errorf("--latlng: %w", err))
		}

		q.LatLng = &p
	}

	if o.bounds != "" {
		b, err := spatial.ParseBounds(o.bounds)
		if err != nil {
			return q, usageError(fmt.Errorf("--bounds: %w", err))
		}

		q.Bounds = b
	}

	if o.language != "" {
		tag, err := language.Parse(o.language)
		if err != nil {
			return q, usageError(fmt.Errorf("--language %q: %w", o.language, err))
		}

		q.Language = tag.String()
	}

	return q, nil
}

func newLookupCmd(a *app) *cobra.Command {
	var (
		opts      queryOptions
		raw       bool
		component string
		long      bool
		first     bool
		table     bool
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Geocode an address or reverse geocode a point",
		Long: `Sends one request to the geocoding service and prints the results.

Every result is printed as "address (lat, lng) - location type".
Use --first for the first result only, --component to print a single address
component and --raw to dump the response body untouched.

Examples:
  geocoder lookup -a "1 Front Street West, Toronto" -r ca
  geocoder lookup -p 43.6463685,-79.3770610 -l fr -o xml
  geocoder lookup -a "Montevideo" --component country --long`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := opts.query()
			if err != nil {
				return err
			}

			client := a.client(cmd)
			out := cmd.OutOrStdout()

			if raw {
				body, err := client.GeocodeRaw(cmd.Context(), q)
				if err != nil {
					return err
				}

				_, err = out.Write(body)

				return err
			}

			view, err := client.Geocode(cmd.Context(), q)
			if err != nil {
				return err
			}

			if !view.IsSuccess() {
				fmt.Fprintln(out, view.Status())

				return &exitError{code: exitNotSuccess, err: fmt.Errorf("service returned %s", view.Status())}
			}

			if component != "" {
				return printComponent(out, view, component, long, !first)
			}

			if table || isTerminal(out) {
				return printTable(out, view, !first)
			}

			return printResults(out, view, !first)
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().BoolVar(&raw, "raw", false, "print the response body without parsing it")
	cmd.Flags().StringVar(&component, "component", "", "print only the address component of this type")
	cmd.Flags().BoolVar(&long, "long", false, "with --component, print the long name instead of the short one")
	cmd.Flags().BoolVar(&first, "first", false, "print only the first result")
	cmd.Flags().BoolVar(&table, "table", false, "print results as a table even when not writing to a terminal")

	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// selected yields every result, or only the first one when all is false.
func selected(view *geocode.ResultView, all bool) iter.Seq2[int, geocode.Result] {
	return func(yield func(int, geocode.Result) bool) {
		for i, res := range view.All() {
			if !yield(i, res) || !all {
				return
			}
		}
	}
}

func describe(res geocode.Result) (addr string, loc spatial.LatLng, locType string, err error) {
	if addr, err = res.FormattedAddress(); err != nil {
		return
	}

	if loc, err = res.Location(); err != nil {
		return
	}

	locType, err = res.LocationType()

	return
}

func printResults(w io.Writer, view *geocode.ResultView, all bool) error {
	for _, res := range selected(view, all) {
		addr, loc, locType, err := describe(res)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s (%s, %s) - %s\n",
			addr, spatial.FormatDecimal(loc.Lat), spatial.FormatDecimal(loc.Lng), locType)
	}

	return nil
}

func printTable(w io.Writer, view *geocode.ResultView, all bool) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Address", "Lat", "Lng", "Type"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for i, res := range selected(view, all) {
		addr, loc, locType, err := describe(res)
		if err != nil {
			return err
		}

		table.Append([]string{
			strconv.Itoa(i),
			addr,
			spatial.FormatDecimal(loc.Lat),
			spatial.FormatDecimal(loc.Lng),
			locType,
		})
	}

	table.Render()

	return nil
}

var errComponentNotFound = errors.New("address component not found")

func printComponent(w io.Writer, view *geocode.ResultView, componentType string, long, all bool) error {
	found := false

	for i, res := range selected(view, all) {
		name, ok, err := res.AddressComponent(componentType, long)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		found = true

		if all {
			fmt.Fprintf(w, "%d\t%s\n", i, name)
		} else {
			fmt.Fprintln(w, name)
		}
	}

	if !found {
		return &exitError{code: exitNotSuccess, err: fmt.Errorf("%w: %s", errComponentNotFound, componentType)}
	}

	return nil
}
