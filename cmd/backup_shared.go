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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/wordvault/internal/adapter/repository"
	"github.com/eslsoft/wordvault/internal/app"
	"github.com/eslsoft/wordvault/internal/infrastructure/config"
	"github.com/eslsoft/wordvault/internal/infrastructure/docstore"
	"github.com/eslsoft/wordvault/internal/usecase/backup"
)

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// openBackupService opens the configured store and builds a backup
// service over it. The returned cleanup closes the store.
func openBackupService(batchSize int) (*backup.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	store, cleanup, err := app.ProvideStore(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	var opts []backup.Option
	if batchSize > 0 {
		opts = append(opts, backup.WithBatchSize(batchSize))
	}
	svc := backup.NewService(
		repository.NewWordbookRepository(store),
		repository.NewWordRepository(store),
		repository.NewPosTagRepository(store),
		opts...,
	)
	return svc, cleanup, nil
}

// openStore opens the configured document store for a CLI command.
func openStore() (docstore.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return app.ProvideStore(cfg)
}

// cliProgress prints export progress per section to stderr.
type cliProgress struct {
	counts map[string]int
}

func newCLIProgress() *cliProgress {
	return &cliProgress{counts: make(map[string]int)}
}

func (p *cliProgress) StartSection(section string, total int) {
	fmt.Fprintf(os.Stderr, "exporting %s (%d)...\n", section, total)
}

func (p *cliProgress) Increment(section string, delta int) {
	p.counts[section] += delta
}

func (p *cliProgress) FinishSection(section string) {
	fmt.Fprintf(os.Stderr, "exported %s: %d\n", section, p.counts[section])
}
