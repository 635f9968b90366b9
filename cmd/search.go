package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"reposearch/internal/domain"
	"reposearch/internal/github"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run one search and print the results",
	Long: `Run a single repository search, sorted by stars, and print the results.
Queries use GitHub search syntax, e.g. "language:go stars:>1000".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntP("limit", "n", 10, "maximum number of results to print (0 for all)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := github.NewClient(cfg.APIURL,
		github.WithToken(cfg.Token),
		github.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	query := strings.Join(args, " ")
	repos, err := client.SearchRepositories(cmd.Context(), query)
	if err != nil {
		var statusErr *github.StatusError
		if errors.As(err, &statusErr) {
			return fmt.Errorf("search %q: GitHub answered %d: %s", query, statusErr.StatusCode, statusErr.Message)
		}
		return fmt.Errorf("search %q: %w", query, err)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	printRepositories(cmd.OutOrStdout(), repos, limit)
	return nil
}

// printRepositories writes one line per repository: stars, name, language and description
func printRepositories(w io.Writer, repos []domain.Repository, limit int) {
	if len(repos) == 0 {
		fmt.Fprintln(w, "No repositories found")
		return
	}
	if limit > 0 && len(repos) > limit {
		repos = repos[:limit]
	}
	for _, r := range repos {
		line := fmt.Sprintf("%7d  %s", r.StargazersCount, r.FullName)
		if lang := r.LanguageOrEmpty(); lang != "" {
			line += fmt.Sprintf(" [%s]", lang)
		}
		if desc := r.DescriptionOrEmpty(); desc != "" {
			line += "  " + strings.Join(strings.Fields(desc), " ")
		}
		fmt.Fprintln(w, line)
	}
}
