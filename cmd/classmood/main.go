package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SdReum/classmood-cli/internal/bootstrap"
	plugindto "github.com/SdReum/classmood-cli/internal/modules/plugin/dto"
	"github.com/SdReum/classmood-cli/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var serverURL, dataDir string

	root := &cobra.Command{
		Use:           "classmood",
		Short:         "ClassMood lecture engagement client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL (default http://localhost:8000)")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "client data directory (default ~/.classmood)")

	root.AddCommand(newTUICmd(&serverURL, &dataDir))
	root.AddCommand(newLoginCmd(&serverURL, &dataDir))
	root.AddCommand(newRegisterCmd(&serverURL, &dataDir))
	root.AddCommand(newLogoutCmd(&serverURL, &dataDir))
	root.AddCommand(newWhoamiCmd(&serverURL, &dataDir))
	root.AddCommand(newStatusCmd(&serverURL, &dataDir))
	root.AddCommand(newUploadCmd(&serverURL, &dataDir))
	root.AddCommand(newFilesCmd(&serverURL, &dataDir))
	root.AddCommand(newAnalyzeCmd(&serverURL, &dataDir))
	root.AddCommand(newInsightsCmd(&serverURL, &dataDir))
	root.AddCommand(newActivityCmd(&serverURL, &dataDir))
	root.AddCommand(newPluginCmd(&serverURL, &dataDir))
	return root
}

func loadApp(serverURL, dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(serverURL, dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(serverURL, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the classmood terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newLoginCmd(serverURL, dataDir *string) *cobra.Command {
	var username, password string
	login := &cobra.Command{
		Use:   "login --username <name> --password <password>",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
				return fmt.Errorf("--username and --password are required")
			}
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Login(context.Background(), username, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", out.Username)
			return nil
		},
	}
	login.Flags().StringVar(&username, "username", "", "account name")
	login.Flags().StringVar(&password, "password", "", "account password")
	return login
}

func newRegisterCmd(serverURL, dataDir *string) *cobra.Command {
	var username, password string
	register := &cobra.Command{
		Use:   "register --username <name> --password <password>",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
				return fmt.Errorf("--username and --password are required")
			}
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Register(context.Background(), username, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			return nil
		},
	}
	register.Flags().StringVar(&username, "username", "", "account name")
	register.Flags().StringVar(&password, "password", "", "account password")
	return register
}

func newLogoutCmd(serverURL, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Logout(context.Background())
			if err != nil {
				return err
			}
			if out.HadSession {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
			}
			return nil
		},
	}
}

func newWhoamiCmd(serverURL, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.CurrentUser(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Username)
			return nil
		},
	}
}

func newStatusCmd(serverURL, dataDir *string) *cobra.Command {
	var path string
	status := &cobra.Command{
		Use:   "status [--path <path>]",
		Short: "Run the session guard for a path and print its decision",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Check(context.Background(), path)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "state=%s", out.State)
			if out.TargetPath != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " target=%s", out.TargetPath)
			}
			if out.TokenCleared {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " token_cleared=true boot_changed=%t", out.BootChanged)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	status.Flags().StringVar(&path, "path", "/upload", "navigation path to check")
	return status
}

func newUploadCmd(serverURL, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>...",
		Short: "Upload engagement recordings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.MediaCLI.Upload(context.Background(), args)
			if err != nil {
				return err
			}
			for _, f := range out.Files {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s stored=%s\n", f.Filename, f.StoredPath)
			}
			return nil
		},
	}
}

func newFilesCmd(serverURL, dataDir *string) *cobra.Command {
	files := &cobra.Command{Use: "files", Short: "Uploaded file commands"}

	var cached bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List uploaded files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			items, err := app.MediaCLI.List(context.Background(), cached)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no files")
				return nil
			}
			for _, f := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", f.ID, f.UploadedAt.Format("2006-01-02 15:04"), f.Filename)
			}
			return nil
		},
	}
	list.Flags().BoolVar(&cached, "cached", false, "serve from the local cache without hitting the backend")
	files.AddCommand(list)

	var rmID int64
	var rmYes bool
	rm := &cobra.Command{
		Use:   "rm --id <id>",
		Short: "Delete an uploaded file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rmID <= 0 {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.MediaCLI.Delete(context.Background(), rmID, rmYes)
			if err != nil {
				return err
			}
			if out.Aborted {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "aborted: pass --yes to really delete %d\n", rmID)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d, %d file(s) remain\n", rmID, len(out.Files))
			return nil
		},
	}
	rm.Flags().Int64Var(&rmID, "id", 0, "file id")
	rm.Flags().BoolVar(&rmYes, "yes", false, "confirm the delete")
	files.AddCommand(rm)

	var dlID int64
	var dlDir string
	download := &cobra.Command{
		Use:   "download --id <id>",
		Short: "Download a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dlID <= 0 {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.MediaCLI.Download(context.Background(), dlID, dlDir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "downloaded to %s\n", out.Path)
			return nil
		},
	}
	download.Flags().Int64Var(&dlID, "id", 0, "file id")
	download.Flags().StringVar(&dlDir, "dir", "", "target directory (default <data>/downloads)")
	files.AddCommand(download)

	var openID int64
	open := &cobra.Command{
		Use:   "open --id <id>",
		Short: "Download a file and open it with the system handler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if openID <= 0 {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.MediaCLI.Open(context.Background(), openID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "opened %s\n", out.Path)
			return nil
		},
	}
	open.Flags().Int64Var(&openID, "id", 0, "file id")
	files.AddCommand(open)

	var previewID int64
	preview := &cobra.Command{
		Use:   "preview --id <id>",
		Short: "Show a local preview of a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if previewID <= 0 {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.MediaCLI.Preview(context.Background(), previewID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kind=%s", out.Kind)
			if out.PageCount > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " pages=%d", out.PageCount)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			if strings.TrimSpace(out.Excerpt) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Excerpt)
			}
			return nil
		},
	}
	preview.Flags().Int64Var(&previewID, "id", 0, "file id")
	files.AddCommand(preview)

	return files
}

func newAnalyzeCmd(serverURL, dataDir *string) *cobra.Command {
	var fileID int64
	var pngPath string
	analyze := &cobra.Command{
		Use:   "analyze --id <id>",
		Short: "Fetch the engagement series and summarize it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fileID <= 0 {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.AnalysisCLI.Analyze(context.Background(), fileID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "file=%d points=%d min=%.3f max=%.3f mean=%.3f\n",
				out.FileID, out.Points, out.Min, out.Max, out.Mean)
			if pngPath == "" {
				return nil
			}
			exp, err := app.AnalysisCLI.Export(context.Background(), fileID, pngPath)
			if err != nil {
				return err
			}
			if exp.Path == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no samples, nothing to export")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exp.Path)
			return nil
		},
	}
	analyze.Flags().Int64Var(&fileID, "id", 0, "file id")
	analyze.Flags().StringVar(&pngPath, "png", "", "also render the chart to this PNG path")
	return analyze
}

func newInsightsCmd(serverURL, dataDir *string) *cobra.Command {
	var limit int
	insights := &cobra.Command{
		Use:   "insights",
		Short: "Rank analyzed lectures by mean engagement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			items, err := app.InsightsCLI.Top(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no insights yet, run analyze first")
				return nil
			}
			for _, s := range items {
				name := s.Filename
				if name == "" {
					name = fmt.Sprintf("file %d", s.FileID)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\tmean=%.3f\tsamples=%d\n", s.FileID, name, s.Mean, s.Points)
			}
			return nil
		},
	}
	insights.Flags().IntVar(&limit, "limit", 10, "how many lectures to show")
	return insights
}

func newActivityCmd(serverURL, dataDir *string) *cobra.Command {
	var limit int
	activity := &cobra.Command{
		Use:   "activity",
		Short: "Show the most recent recorded actions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			entries, err := app.ActivityCLI.Tail(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no activity recorded")
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.OccurredAt.Format(time.RFC3339), e.Kind, e.Detail)
			}
			return nil
		},
	}
	activity.Flags().IntVar(&limit, "limit", 20, "how many entries to show")
	return activity
}

func newPluginCmd(serverURL, dataDir *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Processor plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			results, err := app.PluginCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var commandPluginName string
	commandsCmd := &cobra.Command{
		Use:   "commands --plugin <name>",
		Short: "List commands exposed by a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(commandPluginName) == "" {
				return fmt.Errorf("--plugin is required")
			}
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			commands, err := app.PluginCLI.Commands(context.Background(), commandPluginName)
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no commands")
				return nil
			}
			for _, item := range commands {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s kind=%s timeout_ms=%d title=%q\n", item.ID, item.Kind, item.TimeoutMS, item.Title)
			}
			return nil
		},
	}
	commandsCmd.Flags().StringVar(&commandPluginName, "plugin", "", "plugin name")
	plugin.AddCommand(commandsCmd)

	var runPluginName, runCommandID, runDir string
	var runFileID int64
	runCmd := &cobra.Command{
		Use:   "run --plugin <name> --command <id> --file-id <id>",
		Short: "Feed a file's engagement series through a plugin command",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(runPluginName) == "" || strings.TrimSpace(runCommandID) == "" {
				return fmt.Errorf("--plugin and --command are required")
			}
			app, err := loadApp(*serverURL, *dataDir)
			if err != nil {
				return err
			}
			out, err := app.PluginCLI.Run(context.Background(), plugindto.RunInput{
				PluginName: runPluginName,
				CommandID:  runCommandID,
				FileID:     runFileID,
				Dir:        runDir,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plugin=%s command=%s exit=%d\n", out.PluginName, out.CommandID, out.ExitCode)
			if strings.TrimSpace(out.Stdout) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Stdout)
			}
			if strings.TrimSpace(out.Stderr) != "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), out.Stderr)
			}
			if strings.TrimSpace(out.OutputJSON) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&runPluginName, "plugin", "", "plugin name")
	runCmd.Flags().StringVar(&runCommandID, "command", "", "command id")
	runCmd.Flags().Int64Var(&runFileID, "file-id", 0, "file whose series feeds the command")
	runCmd.Flags().StringVar(&runDir, "dir", "", "working directory for export commands (default cwd)")
	plugin.AddCommand(runCmd)

	return plugin
}
