package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
)

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List loaded courses, chapters, and question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("共 %d 题，%d 门课程\n", lib.Len(), len(lib.Courses()))
		for _, course := range lib.Courses() {
			n := len(lib.Filter(bank.Signature{Course: course}))
			fmt.Printf("%s（%d 题）\n", course, n)
			for _, chapter := range lib.Chapters(course) {
				c := len(lib.Filter(bank.Signature{Course: course, Chapter: chapter}))
				fmt.Printf("  %s  %d 题", chapter, c)
				for _, t := range lib.Types(course, chapter) {
					n := len(lib.Filter(bank.Signature{Course: course, Chapter: chapter, Type: t}))
					fmt.Printf("  %s %d", t.Label(), n)
				}
				fmt.Println()
			}
		}

		if diags := lib.Diagnostics(); len(diags) > 0 {
			fmt.Printf("加载失败的文件（%d）：\n", len(diags))
			for _, d := range diags {
				fmt.Printf("  %s：%v\n", d.File, d.Err)
			}
		}
		return nil
	},
}
