package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/haierkeys/trade-journal-service/pkg/note"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

type noteFlags struct {
	as        string // 输出格式
	highlight bool   // 是否高亮代码块
	style     string // chroma 样式
}

// readNoteSource 读取文件内容，参数为空或为 "-" 时读取标准输入
func readNoteSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}

func newNoteCommand() *cobra.Command {
	flags := new(noteFlags)

	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Note formatter tools",
	}

	formatCmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format a note file (or stdin) and print the note content JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderAs, err := note.ParseFormat(flags.as)
			if err != nil {
				return err
			}
			src, err := readNoteSource(cmd, args)
			if err != nil {
				return err
			}

			var opts []note.Option
			if flags.highlight {
				opts = append(opts, note.WithHighlighting(flags.style))
			}
			content, err := note.NewFormatter(opts...).Format(src, renderAs)
			if err != nil {
				return err
			}

			out, err := sonic.ConfigDefault.MarshalIndent(content, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	formatCmd.Flags().StringVar(&flags.as, "as", string(note.FormatHTML), "render format: MARKDOWN, HTML or JSON")
	formatCmd.Flags().BoolVar(&flags.highlight, "highlight", false, "highlight TipTap code blocks")
	formatCmd.Flags().StringVar(&flags.style, "style", "github", "chroma style used by --highlight")

	cssCmd := &cobra.Command{
		Use:   "css",
		Short: "Print the stylesheet for highlighted code blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			css, err := note.NewHighlighter(flags.style).CSS()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), css)
			return err
		},
	}
	cssCmd.Flags().StringVar(&flags.style, "style", "github", "chroma style name")

	noteCmd.AddCommand(formatCmd, cssCmd)
	return noteCmd
}

func init() {
	rootCmd.AddCommand(newNoteCommand())
}
