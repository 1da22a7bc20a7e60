package main

import (
	"encoding/json"
	"errors"

	"hire-rank/internal/domain/ranking"

	"github.com/spf13/cobra"
)

var errInvalidWeights = errors.New("weights are invalid")

var validateCmd = &cobra.Command{
	Use:   "validate-weights",
	Short: "Check that a weight configuration totals 100%",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w, err := weightsFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		v := ranking.Validate(w)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return err
		}
		if !v.Valid {
			return errInvalidWeights
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addWeightFlags(validateCmd.Flags())
}
