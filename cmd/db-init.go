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

	"github.com/eslsoft/wordvault/internal/adapter/repository"
	"github.com/eslsoft/wordvault/internal/cache"
	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/usecase"
)

// dbInitCmd represents the db-init command
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Initialize the document store, optionally seeding sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sampleUser, _ := cmd.Flags().GetString("sample-user")

		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		if sampleUser == "" {
			fmt.Fprintln(os.Stderr, "store initialized")
			return nil
		}

		caches := usecase.NewCaches(cache.NeverExpire())
		wordbooks := usecase.NewWordbookUsecase(repository.NewWordbookRepository(store), caches)
		words := usecase.NewWordUsecase(repository.NewWordRepository(store), caches)
		tags := usecase.NewPosTagUsecase(
			repository.NewPosTagRepository(store),
			repository.NewWordbookRepository(store),
			repository.NewWordRepository(store),
			caches,
		)

		noun, err := tags.CreatePosTag(ctx, sampleUser, &entity.PosTag{Name: "noun", Color: "#4a90d9"})
		if err != nil {
			return fmt.Errorf("seed tag: %w", err)
		}
		verb, err := tags.CreatePosTag(ctx, sampleUser, &entity.PosTag{Name: "verb", Color: "#d94a4a"})
		if err != nil {
			return fmt.Errorf("seed tag: %w", err)
		}

		wordbook, err := wordbooks.CreateWordbook(ctx, sampleUser, "Starter Wordbook")
		if err != nil {
			return fmt.Errorf("seed wordbook: %w", err)
		}

		_, err = words.ImportWords(ctx, sampleUser, wordbook.ID, []entity.Word{
			{Text: "serendipity", Phonetic: "/ˌserənˈdɪpəti/", PosIDs: []string{noun.ID}, Translation: "机缘巧合"},
			{Text: "wander", Phonetic: "/ˈwɒndə/", PosIDs: []string{verb.ID}, Translation: "漫游"},
			{Text: "ephemeral", Phonetic: "/ɪˈfem(ə)rəl/", Translation: "短暂的"},
		})
		if err != nil {
			return fmt.Errorf("seed words: %w", err)
		}

		fmt.Fprintf(os.Stderr, "store initialized, sample data seeded for user %s\n", sampleUser)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)

	dbInitCmd.Flags().String("sample-user", "", "seed a starter wordbook for this user")
}
