package main

import (
	"fmt"
	"os"
	"strings"

	"hire-rank/internal/config"
	"hire-rank/internal/domain/ranking"
	"hire-rank/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "rankctl"

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "rankctl scores and ranks candidates against jobs from a YAML dataset",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func newLogger() (*zap.Logger, error) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return l, nil
}

// addWeightFlags registers one flag per weight component, defaulting to
// the configured weights.
func addWeightFlags(fs *pflag.FlagSet) {
	d := config.Defaults().Ranking.DefaultWeights
	fs.Float64("skills-weight", d.Skills, "skills weight in percent")
	fs.Float64("experience-weight", d.Experience, "experience weight in percent")
	fs.Float64("education-weight", d.Education, "education weight in percent")
	fs.Float64("personality-weight", d.Personality, "personality weight in percent")
	fs.Float64("cultural-fit-weight", d.CulturalFit, "cultural fit weight in percent")
}

func weightsFromFlags(fs *pflag.FlagSet) (ranking.Weights, error) {
	var w ranking.Weights
	for name, dst := range map[string]*float64{
		"skills-weight":       &w.Skills,
		"experience-weight":   &w.Experience,
		"education-weight":    &w.Education,
		"personality-weight":  &w.Personality,
		"cultural-fit-weight": &w.CulturalFit,
	} {
		v, err := fs.GetFloat64(name)
		if err != nil {
			return ranking.Weights{}, err
		}
		*dst = v
	}
	return w, nil
}

func flagName(key string) string { return strings.ReplaceAll(key, "_", "-") }

func envName(key string) string { return strings.ToUpper(key) }
