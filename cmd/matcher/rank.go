package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"craftlab/careers/internal/matcher"
)

func newRankCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Score and rank opportunities from JSON files",
		Example: `  matcher rank --profile profile.json --opportunities opportunities.json --limit 5
  MATCHER_PROFILE=profile.json matcher rank --opportunities opportunities.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRank(cmd, v)
		},
	}

	cmd.Flags().StringP("profile", "p", "", "candidate profile JSON file")
	cmd.Flags().StringP("opportunities", "o", "", "JSON file holding an array of opportunities")
	cmd.Flags().IntP("limit", "n", 0, "print at most this many results (0 prints all)")

	v.BindPFlag("profile", cmd.Flags().Lookup("profile"))
	v.BindPFlag("opportunities", cmd.Flags().Lookup("opportunities"))
	v.BindPFlag("limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runRank(cmd *cobra.Command, v *viper.Viper) error {
	profilePath := v.GetString("profile")
	if profilePath == "" {
		return fmt.Errorf("--profile is required")
	}

	oppsPath := v.GetString("opportunities")
	if oppsPath == "" {
		return fmt.Errorf("--opportunities is required")
	}

	var profile matcher.CandidateProfile
	if err := readJSON(profilePath, &profile); err != nil {
		return fmt.Errorf("reading profile: %w", err)
	}

	var opps []matcher.Opportunity
	if err := readJSON(oppsPath, &opps); err != nil {
		return fmt.Errorf("reading opportunities: %w", err)
	}

	results := matcher.Rank(profile, opps)
	if limit := v.GetInt("limit"); limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
