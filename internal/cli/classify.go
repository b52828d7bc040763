package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gng-scout/athlete-directory-service/internal/divisions"
)

type classification struct {
	College     string                `json:"college"`
	Division    divisions.Division    `json:"division"`
	Association divisions.Association `json:"association"`
	FullName    string                `json:"fullName"`
	Method      divisions.Method      `json:"method"`
	Candidate   string                `json:"candidate,omitempty"`
}

func newClassifyCommand(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "classify [NAME...]",
		Short: "Classify college names, read from stdin when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				if names, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			c := divisions.New(table)
			results := make([]classification, 0, len(names))
			for _, name := range names {
				m := c.Lookup(name)
				results = append(results, classification{
					College:     name,
					Division:    m.Info.Division,
					Association: m.Info.Association,
					FullName:    m.Info.FullName,
					Method:      m.Method,
					Candidate:   m.Candidate,
				})
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			return writeClassifications(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return lines, nil
}

func writeClassifications(w io.Writer, results []classification) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLLEGE\tDIVISION\tASSOCIATION\tFULL NAME\tMETHOD")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.College, r.Division, r.Association, r.FullName, r.Method)
	}
	return tw.Flush()
}
