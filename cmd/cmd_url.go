// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/jcodagnone/geocoder/geocode"
	"github.com/spf13/cobra"
)

var errSignatureMismatch = errors.New("signature does not match")

func newURLCmd(a *app) *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:     "url",
		Short:   "Print the signed request URL without sending it",
		Example: `  geocoder url -a "New York" --client-id clientID --signing-key vNIXE0xscrmjlyV-12Nj_BvUPaw=`,
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := opts.query()
			if err != nil {
				return err
			}

			u, err := a.client(cmd).URL(q)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), u)

			return nil
		},
	}

	opts.register(cmd.Flags())

	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify URL",
		Short: "Check the signature of a request URL against the signing key",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := a.config.SigningKey
			if key == "" {
				return usageError(errors.New("verify needs --signing-key or GEOCODER_SIGNING_KEY"))
			}

			ok, err := geocode.VerifySignature(args[0], key)
			if err != nil {
				return err
			}

			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")

				return &exitError{code: exitUsage, err: errSignatureMismatch}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "valid")

			return nil
		},
	}
}
