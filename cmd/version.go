package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// repositorySlug is the GitHub repository releases are published to
const repositorySlug = "s0up4200/betaseries"

var checkLatest bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{configAnnotation: configNone},
	RunE:        runVersion,
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:         "update",
	Short:       "Update betaseries to the latest release",
	Annotations: map[string]string{configAnnotation: configNone},
	RunE:        runUpdate,
}

func init() {
	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "betaseries %s (built %s)\n", version, buildTime)

	if !checkLatest {
		return nil
	}

	latest, newer, err := latestRelease(cmd.Context())
	if err != nil {
		return err
	}
	if latest == nil {
		fmt.Fprintln(out, "No release found.")
		return nil
	}
	printUpdateStatus(out, latest.Version(), newer)
	return nil
}

func printUpdateStatus(w io.Writer, latest string, newer bool) {
	if newer {
		fmt.Fprintf(w, "A newer release is available: %s (run 'betaseries update')\n", latest)
		return
	}
	fmt.Fprintf(w, "You are running the latest release (%s).\n", latest)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	latest, newer, err := latestRelease(ctx)
	if err != nil {
		return err
	}
	if latest == nil || !newer {
		fmt.Fprintln(cmd.OutOrStdout(), "Already up to date.")
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	logger.Info().
		Str("current", version).
		Str("latest", latest.Version()).
		Str("asset", latest.AssetName).
		Msg("Updating")

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated to %s\n", latest.Version())
	return nil
}

// latestRelease returns the latest GitHub release and whether it is newer than
// the running build. Development builds are always outdated.
func latestRelease(ctx context.Context) (*selfupdate.Release, bool, error) {
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return nil, false, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	newer, err := isNewer(latest.Version(), version)
	if err != nil {
		return nil, false, err
	}
	return latest, newer, nil
}

var errInvalidVersion = errors.New("invalid version")

// isNewer compares semantic versions; a current version that doesn't parse
// (e.g. "dev") is older than any release
func isNewer(latest, current string) (bool, error) {
	l, err := semver.ParseTolerant(latest)
	if err != nil {
		return false, fmt.Errorf("%w %q: %v", errInvalidVersion, latest, err)
	}
	c, err := semver.ParseTolerant(current)
	if err != nil {
		return true, nil
	}
	return l.GT(c), nil
}
