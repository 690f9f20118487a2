package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kompox/mashup/domain/model"
	"github.com/kompox/mashup/internal/logging"
	"github.com/kompox/mashup/usecase/workspace"
)

func newCmdWorkspace() *cobra.Command {
	c := &cobra.Command{
		Use:                "workspace",
		Aliases:            []string{"ws"},
		Short:              "Workspace commands",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	c.AddCommand(newCmdWorkspaceCreate())
	c.AddCommand(newCmdWorkspaceClone())
	c.AddCommand(newCmdWorkspaceMerge())
	c.AddCommand(newCmdWorkspaceRemove())
	c.AddCommand(newCmdWorkspaceDelete())
	c.AddCommand(newCmdWorkspaceExists())
	c.AddCommand(newCmdWorkspaceList())
	c.AddCommand(newCmdWorkspaceLoad())
	c.AddCommand(newCmdWorkspaceActive())
	return c
}

// commandContext bounds a command by the configured server timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout := 30 * time.Second
	if runConfig != nil && runConfig.Server.Timeout > 0 {
		timeout = runConfig.Server.Timeout
	}
	return context.WithTimeout(cmd.Context(), timeout)
}

func encodeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// logMonitor forwards sub-task notes to the context logger.
type logMonitor struct{ ctx context.Context }

func (m logMonitor) LogSubTask(msg string) {
	logging.FromContext(m.ctx).Info(m.ctx, msg)
}

func newCmdWorkspaceCreate() *cobra.Command {
	var allowRenaming, replaceNavigation bool
	c := &cobra.Command{
		Use:                "create <name>",
		Short:              "Create an empty workspace and make it active",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.create", uc.Username+"/"+args[0])
			defer func() { cleanup(err) }()

			out, err := uc.Create(ctx, &workspace.CreateInput{
				Name:                   args[0],
				AllowRenaming:          allowRenaming,
				ReplaceNavigationState: replaceNavigation,
			})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out.Workspace)
		},
	}
	c.Flags().BoolVar(&allowRenaming, "allow-renaming", false, "Let the server pick another name on collision")
	c.Flags().BoolVar(&replaceNavigation, "replace-navigation", false, "Replace the current navigation entry instead of pushing one")
	return c
}

func newCmdWorkspaceClone() *cobra.Command {
	var allowRenaming, dryRun bool
	c := &cobra.Command{
		Use:                "clone <mashup-uri>",
		Short:              "Create a workspace from a mashup",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.clone", args[0])
			defer func() { cleanup(err) }()

			out, err := uc.CloneFromMashup(ctx, &workspace.CloneInput{
				Mashup:        model.MashupRef{URI: args[0]},
				AllowRenaming: &allowRenaming,
				DryRun:        dryRun,
			})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out)
		},
	}
	c.Flags().BoolVar(&allowRenaming, "allow-renaming", true, "Let the server pick another name on collision")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without creating the workspace")
	return c
}

func newCmdWorkspaceMerge() *cobra.Command {
	return &cobra.Command{
		Use:                "merge <mashup-uri>",
		Short:              "Merge a mashup into the active workspace",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.merge", args[0])
			defer func() { cleanup(err) }()

			out, err := uc.MergeIntoActive(ctx, &workspace.MergeInput{
				Mashup:  model.MashupRef{URI: args[0]},
				Monitor: logMonitor{ctx: ctx},
			})
			if err != nil {
				return err
			}
			return encodeJSON(cmd, out.Workspace)
		},
	}
}

func newCmdWorkspaceRemove() *cobra.Command {
	return &cobra.Command{
		Use:                "remove <id>",
		Short:              "Forget a cached workspace without deleting it on the server",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.remove", args[0])
			defer func() { cleanup(err) }()

			got, err := uc.Get(ctx, &workspace.GetInput{WorkspaceID: args[0]})
			if err != nil {
				return err
			}
			out, err := uc.Remove(ctx, &workspace.RemoveInput{Workspace: got.Workspace})
			return reportRemoval(ctx, cmd, args[0], activeOf(out), err)
		},
	}
}

func newCmdWorkspaceDelete() *cobra.Command {
	return &cobra.Command{
		Use:                "delete <id>",
		Short:              "Delete a workspace on the server and forget it locally",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.delete", args[0])
			defer func() { cleanup(err) }()

			out, err := uc.Delete(ctx, &workspace.DeleteInput{WorkspaceID: args[0]})
			var active *model.Workspace
			if out != nil {
				active = out.Active
			}
			return reportRemoval(ctx, cmd, args[0], active, err)
		},
	}
}

func activeOf(out *workspace.RemoveOutput) *model.Workspace {
	if out == nil {
		return nil
	}
	return out.Active
}

// reportRemoval prints the outcome of remove and delete. Running out of
// workspaces is reported, not failed.
func reportRemoval(ctx context.Context, cmd *cobra.Command, id string, active *model.Workspace, err error) error {
	switch {
	case errors.Is(err, model.ErrNoWorkspacesRemaining):
		logging.FromContext(ctx).Warn(ctx, "no workspaces remaining", "removed", id)
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
		return nil
	case err != nil:
		return err
	case active != nil:
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s, active %s\n", id, active.ID)
		return nil
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
		return nil
	}
}

func newCmdWorkspaceExists() *cobra.Command {
	return &cobra.Command{
		Use:                "exists <name>",
		Short:              "Report whether a cached workspace with the name exists",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			fmt.Fprintln(cmd.OutOrStdout(), uc.Exists(ctx, args[0]))
			return nil
		},
	}
}

func newCmdWorkspaceList() *cobra.Command {
	var owner string
	c := &cobra.Command{
		Use:                "list",
		Short:              "List cached workspaces",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := uc.List(ctx, &workspace.ListInput{Owner: owner})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, it := range out.Workspaces {
				if err := enc.Encode(it); err != nil {
					return err
				}
			}
			return nil
		},
	}
	c.Flags().StringVar(&owner, "owner", "", "Owner namespace (default: session user)")
	return c
}

func newCmdWorkspaceLoad() *cobra.Command {
	return &cobra.Command{
		Use:                "load",
		Short:              "Fetch the workspace list from the server into the cache",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "workspace.load", uc.Username)
			defer func() { cleanup(err) }()

			out, err := uc.Load(ctx, &workspace.LoadInput{})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, it := range out.Workspaces {
				if err := enc.Encode(it); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCmdWorkspaceActive() *cobra.Command {
	return &cobra.Command{
		Use:                "active",
		Short:              "Show the active workspace",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildWorkspaceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := uc.Active(ctx)
			if err != nil {
				return err
			}
			if out.Workspace == nil {
				return model.ErrNoActiveWorkspace
			}
			return encodeJSON(cmd, out.Workspace)
		},
	}
}
