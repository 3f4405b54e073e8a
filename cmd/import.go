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
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	importUserKey  = "backup.import.user"
	importInputKey = "backup.import.input"
	importGzipKey  = "backup.import.gzip"
	importBatchKey = "backup.import.batch_size"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import an NDJSON backup into a user's account",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		userID := viper.GetString(importUserKey)
		if userID == "" {
			return fmt.Errorf("--user is required")
		}
		inputPath := viper.GetString(importInputKey)
		gzipEnabled := viper.GetBool(importGzipKey)
		batchSize := viper.GetInt(importBatchKey)

		svc, cleanup, err := openBackupService(batchSize)
		if err != nil {
			return err
		}
		defer cleanup()

		var in io.Reader = os.Stdin
		if inputPath != "" && inputPath != "-" {
			file, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open input file: %w", err)
			}
			defer file.Close()
			in = file

			if gzipEnabled || strings.HasSuffix(inputPath, ".gz") {
				gzipEnabled = true
			}
		}

		if gzipEnabled {
			gr, err := gzip.NewReader(in)
			if err != nil {
				return fmt.Errorf("open gzip stream: %w", err)
			}
			defer gr.Close()
			in = gr
		}

		if err := svc.Import(ctx, userID, in); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		fmt.Fprintln(os.Stderr, "import complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("user", "", "user receiving the imported data")
	importCmd.Flags().StringP("input", "i", "-", "input file (- for stdin)")
	importCmd.Flags().Bool("gzip", false, "treat the input as gzip-compressed")
	importCmd.Flags().Int("batch-size", 0, "rows per write batch")

	bindFlagToViper(importUserKey, importCmd.Flags().Lookup("user"))
	bindFlagToViper(importInputKey, importCmd.Flags().Lookup("input"))
	bindFlagToViper(importGzipKey, importCmd.Flags().Lookup("gzip"))
	bindFlagToViper(importBatchKey, importCmd.Flags().Lookup("batch-size"))
}
