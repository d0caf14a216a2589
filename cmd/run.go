package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmsltll12138/pathology-quiz/internal/app"
	"github.com/nmsltll12138/pathology-quiz/internal/bank"
	"github.com/nmsltll12138/pathology-quiz/internal/grader"
	"github.com/nmsltll12138/pathology-quiz/internal/session"
)

// runApp loads the banks and launches the TUI.
func runApp(cmd *cobra.Command) error {
	lib, err := loadLibrary(cmd)
	if err != nil {
		return err
	}

	sess := session.New(lib, grader.New(grader.DefaultConfig()))
	if err := app.Run(app.Options{Session: sess}); err != nil {
		return err
	}

	fmt.Println(sessionSummary(sess))
	return nil
}

// sessionSummary identifies the drilling session that just ended, so a
// user reporting a problem can name the exact run.
func sessionSummary(s *session.Session) string {
	return fmt.Sprintf("会话 %s 已结束", s.ID)
}

// loadLibrary loads the resolved data directory, translating a fatal
// load error into a remediation message.
func loadLibrary(cmd *cobra.Command) (*bank.Library, error) {
	dir := resolveDataDir(cmd)

	lib, err := bank.Load(dir)
	var loadErr *bank.LoadError
	if errors.As(err, &loadErr) {
		fmt.Fprintf(os.Stderr, "无法加载题库目录 %s：%s\n", loadErr.Dir, loadErr.Reason)
		fmt.Fprintln(os.Stderr, "请将题库 JSON 文件放入该目录，或通过 --data / PATHQUIZ_DATA 指定其他目录。")
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("load banks: %w", err)
	}
	return lib, nil
}
