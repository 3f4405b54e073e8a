/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/wordvault/internal/usecase/backup"
)

const (
	exportUserKey   = "backup.export.user"
	exportOutputKey = "backup.export.output"
	exportGzipKey   = "backup.export.gzip"
	exportBatchKey  = "backup.export.batch_size"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one user's vocabulary data as an NDJSON backup",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		userID := viper.GetString(exportUserKey)
		if userID == "" {
			return fmt.Errorf("--user is required")
		}
		outputPath := viper.GetString(exportOutputKey)
		gzipEnabled := viper.GetBool(exportGzipKey)
		batchSize := viper.GetInt(exportBatchKey)

		svc, cleanup, err := openBackupService(batchSize)
		if err != nil {
			return err
		}
		defer cleanup()

		var out io.Writer = os.Stdout
		if outputPath != "" && outputPath != "-" {
			if dir := filepath.Dir(outputPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			file, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			out = file

			if gzipEnabled || strings.HasSuffix(outputPath, ".gz") {
				gzipEnabled = true
			}
		}

		if gzipEnabled {
			gw := gzip.NewWriter(out)
			defer func() {
				if cerr := gw.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			out = gw
		}

		err = svc.Export(ctx, userID, out, backup.WithProgressReporter(newCLIProgress()))
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("user", "", "user whose data is exported")
	exportCmd.Flags().StringP("output", "o", "-", "output file (- for stdout)")
	exportCmd.Flags().Bool("gzip", false, "gzip-compress the output")
	exportCmd.Flags().Int("batch-size", 0, "rows per write batch on restore")

	bindFlagToViper(exportUserKey, exportCmd.Flags().Lookup("user"))
	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
	bindFlagToViper(exportGzipKey, exportCmd.Flags().Lookup("gzip"))
	bindFlagToViper(exportBatchKey, exportCmd.Flags().Lookup("batch-size"))
}
