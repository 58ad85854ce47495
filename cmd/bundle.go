package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bostonmetro/crimedata/internal/bundle"
	"github.com/bostonmetro/crimedata/internal/refdata"
)

var bundleOutPath string

var bundleCmd = &cobra.Command{
	Use:   "bundle <municipality>",
	Short: "Compose a data bundle and write it as JSON",
	Long:  "Municipality is Cambridge, Boston, or Somerville; any other value (e.g. \"all\") composes the combined metro bundle.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		b, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		zap.L().Info("bundle composed",
			zap.String("municipality", args[0]),
			zap.Int("crime_records", len(b.Crime)),
			zap.Int("regions", len(b.Geo)),
			zap.Int("neighborhoods", len(b.Population)),
		)

		out := os.Stdout
		if bundleOutPath != "" {
			f, err := os.Create(bundleOutPath)
			if err != nil {
				return eris.Wrapf(err, "create %s", bundleOutPath)
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	},
}

func newService() (*bundle.Service, error) {
	tables, err := refdata.Load()
	if err != nil {
		return nil, err
	}
	return bundle.NewService(bundle.FromConfig(cfg.Data, tables)), nil
}

func init() {
	bundleCmd.Flags().StringVarP(&bundleOutPath, "output", "o", "", "write JSON to file instead of stdout")
	rootCmd.AddCommand(bundleCmd)
}
