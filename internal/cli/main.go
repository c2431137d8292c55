package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "vertcut",
		Short:        "Turn raw footage into upload-ready vertical shorts",
		SilenceUsage: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", "", "Path to a YAML config file")

	process := &cobra.Command{
		Use:   "process <input>",
		Short: "Run the editing pipeline on a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args[0])
		},
	}
	process.Flags().Bool("captions", true, "Transcribe audio and burn captions")
	process.Flags().Bool("grade", true, "Apply the color grade")
	process.Flags().Bool("intro", false, "Prepend the intro template")
	process.Flags().Bool("outro", false, "Append the outro template")
	root.AddCommand(process)

	trendsCmd := &cobra.Command{
		Use:   "trends",
		Short: "Fetch, score and rank current trends",
		Args:  cobra.NoArgs,
		RunE:  runTrends,
	}
	trendsCmd.Flags().Int("ideas", 0, "Also print N content ideas")
	root.AddCommand(trendsCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
