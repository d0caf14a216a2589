package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate question bank files against the bank schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveDataDir(cmd)

		reports, err := bank.Check(dir)
		if err != nil {
			return err
		}

		bad := 0
		for _, r := range reports {
			if r.OK() {
				fmt.Printf("ok    %s  (%d 题)\n", r.File, r.Records)
				continue
			}
			bad++
			fmt.Printf("FAIL  %s  %v\n", r.File, r.Err)
		}

		if bad > 0 {
			return fmt.Errorf("%d of %d files failed validation", bad, len(reports))
		}
		fmt.Printf("%d files ok\n", len(reports))
		return nil
	},
}
