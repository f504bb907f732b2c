package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	filesSubdir   string
	fileGetOutput string
	uploadDir     string
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Browse the shared workspace",
	Long: `Browse and manage the file workspace you share with your AI
executives.

Subcommands:
  cat      Print a text file
  get      Download a file
  mkdir    Create a directory
  upload   Upload files or folders
  summary  Show what the agents can read

Examples:
  edge files
  edge files --subdir research
  edge files cat research/market.md
  edge files get design/logo.png -o logo.png
  edge files upload pitch.md ./research --dir docs
  edge files summary`,
	Args: cobra.NoArgs,
	RunE: runFilesList,
}

var fileCatCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print a text file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFileCat,
}

var fileGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Download a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFileGet,
}

var fileMkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runFileMkdir,
}

var fileUploadCmd = &cobra.Command{
	Use:   "upload <path>...",
	Short: "Upload files or folders",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFileUpload,
}

var fileSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show what the agents can read",
	Args:  cobra.NoArgs,
	RunE:  runFileSummary,
}

func init() {
	filesCmd.Flags().StringVarP(&filesSubdir, "subdir", "d", "", "list only this workspace directory")
	fileGetCmd.Flags().StringVarP(&fileGetOutput, "output", "o", "", "local file name (defaults to the workspace name)")
	fileUploadCmd.Flags().StringVar(&uploadDir, "dir", "", "workspace directory to upload into")

	filesCmd.AddCommand(fileCatCmd)
	filesCmd.AddCommand(fileGetCmd)
	filesCmd.AddCommand(fileMkdirCmd)
	filesCmd.AddCommand(fileUploadCmd)
	filesCmd.AddCommand(fileSummaryCmd)
}

func runFilesList(cmd *cobra.Command, args []string) error {
	paths, err := api.ListFiles(context.Background(), filesSubdir)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not list the workspace"))
	}
	if len(paths) == 0 {
		fmt.Println("The workspace is empty.")
		return nil
	}

	for _, group := range workspace.GroupByDirectory(paths) {
		fmt.Printf("%s/\n", group.Directory)
		for _, p := range group.Files {
			marker := " "
			if workspace.IsTextFile(p) {
				marker = "t"
			}
			fmt.Printf("  %s %s\n", marker, p)
		}
	}
	return nil
}

func runFileCat(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !workspace.IsTextFile(path) {
		return fmt.Errorf("%s is not previewable as text, use 'edge files get %s'", path, path)
	}

	content, err := api.ReadFile(context.Background(), path)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not read the file"))
	}
	fmt.Print(content)
	return nil
}

func runFileGet(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := api.ReadFile(context.Background(), path)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not download the file"))
	}

	out := fileGetOutput
	if out == "" {
		out = workspace.DownloadName(path)
	}
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("Saved %s (%d bytes).\n", out, len(content))
	return nil
}

func runFileMkdir(cmd *cobra.Command, args []string) error {
	if err := api.MakeDirectory(context.Background(), args[0]); err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not create the directory"))
	}
	fmt.Printf("Created %s/.\n", args[0])
	return nil
}

func runFileUpload(cmd *cobra.Command, args []string) error {
	sess, err := requireSession()
	if err != nil {
		return err
	}

	local := make([]string, 0, len(args))
	for _, a := range args {
		local = append(local, filepath.Clean(a))
	}

	files, closeAll, err := workspace.Stage(local)
	if err != nil {
		return err
	}
	defer closeAll()

	result, err := api.UploadFiles(context.Background(), files, uploadDir, sess.User.ID)
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "upload failed"))
	}

	fmt.Printf("Uploaded %d file(s):\n", result.Count)
	for _, f := range result.UploadedFiles {
		fmt.Printf("  %s\n", f)
	}
	return nil
}

func runFileSummary(cmd *cobra.Command, args []string) error {
	summary, err := api.GetFilesSummary(context.Background())
	if err != nil {
		return fmt.Errorf("%s", client.Detail(err, "could not fetch the summary"))
	}

	fmt.Printf("Workspace: %d files, %d readable by the agents\n\n",
		summary.TotalFiles, summary.AIAccessibleCount)
	for _, f := range summary.AIAccessibleFiles {
		fmt.Printf("  %-10s %8d  %s\n", f.Type, f.Size, f.Path)
	}
	if verbose && len(summary.WorkspaceTools) > 0 {
		fmt.Printf("\nAgent tools: %v\n", summary.WorkspaceTools)
	}
	return nil
}
