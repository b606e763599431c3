// Package history implements the `docsight history` command over the stored
// run database.
package history

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"docsight/pkg/db"
)

// ListAction prints recent runs, newest first.
func ListAction(c *cli.Context) error {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		status := "ok"
		if r.FailedCount > 0 {
			status = fmt.Sprintf("%d failed", r.FailedCount)
		}
		fmt.Printf("%s  %s  %d doc(s)  %d words  %d keywords  [%s]\n",
			r.RunID, r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.DocCount, r.TotalWords, r.UniqueKeywords, status)
	}
	return nil
}

// ShowAction prints one stored run as JSON.
func ShowAction(c *cli.Context) error {
	runID := c.Args().First()
	if runID == "" {
		fmt.Fprintln(os.Stderr, "Usage: docsight history show <run-id>")
		os.Exit(1)
	}

	database, err := db.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer database.Close()

	report, err := database.GetRun(runID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
