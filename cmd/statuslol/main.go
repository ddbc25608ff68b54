// Command statuslol is the CLI driver for the archival status index: point
// lookups, prefix scans, two-hop user reports, and id dumps over a Badger
// store built from a JSON-status archive.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/archivelab/statuslol/ingest"
	"github.com/archivelab/statuslol/profile"
	"github.com/archivelab/statuslol/report"
	"github.com/archivelab/statuslol/store"
	"github.com/archivelab/statuslol/tag"
)

var (
	dbPath        string
	profileDBPath string
	verbosity     int
)

var rootCmd = &cobra.Command{
	Use:   "statuslol",
	Short: "Archival index over social-media status records",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		switch {
		case verbosity >= 2:
			level = zerolog.DebugLevel
		case verbosity == 1:
			level = zerolog.InfoLevel
		}
		log.Logger = log.Logger.Level(level)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "tmp/data/all", "path to the store directory")
	rootCmd.PersistentFlags().StringVar(&profileDBPath, "profile-db", "tmp/data/profiles", "path to the profile-history store directory")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging verbosity (repeatable)")

	rootCmd.AddCommand(
		screenNameCmd,
		tweetCmd,
		userCmd,
		userReportCmd,
		deletesCmd,
		statsCmd,
		filesCmd,
		dumpUserIDsCmd,
		dumpFullStatusIDsCmd,
		dumpShortStatusIDsCmd,
		dumpDeleteIDsCmd,
		extendedUserCmd,
		importCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("statuslol: command failed")
		os.Exit(1)
	}
}

func openStore() (*store.Store, error) {
	return store.Open(dbPath)
}

func openProfileStore() (*profile.Store, error) {
	return profile.Open(profileDBPath, nil)
}

var screenNameCmd = &cobra.Command{
	Use:   "screen-name <name>",
	Short: "Look up every user id ever observed under a screen name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ids, err := s.LookupScreenName(args[0])
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var tweetCmd = &cobra.Command{
	Use:   "tweet <status_id>",
	Short: "Look up the metadata recorded for a status id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		statusID, err := parseUint64(args[0])
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		meta, err := s.LookupTweetMetadata(statusID)
		if err != nil {
			return err
		}
		if meta == nil {
			fmt.Println("not found")
			return nil
		}
		fmt.Printf("%+v\n", *meta)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user <user_id>",
	Short: "List every screen name and status-id set recorded for a user id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUint64(args[0])
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		aliases, err := s.LookupUser(userID)
		if err != nil {
			return err
		}
		for _, a := range aliases {
			fmt.Printf("%s %v\n", a.ScreenName, a.StatusIDs)
		}
		return nil
	},
}

var userReportCmd = &cobra.Command{
	Use:   "user-report <user_id>",
	Short: "Synthesize the two-hop cross-reference report for a user id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUint64(args[0])
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		rpt, err := report.Generate(s, userID)
		if err != nil {
			return err
		}
		fmt.Printf("%+v\n", *rpt)
		return nil
	},
}

var deletesCmd = &cobra.Command{
	Use:   "deletes <user_id>",
	Short: "List every deletion notice recorded for a user id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUint64(args[0])
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		deletes, err := s.LookupDeletes(userID)
		if err != nil {
			return err
		}
		for _, d := range deletes {
			if d.TimeMillis != nil {
				fmt.Printf("%d %d\n", d.StatusID, *d.TimeMillis)
			} else {
				fmt.Println(d.StatusID)
			}
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a single full-scan summary of the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.GetStats()
		if err != nil {
			return err
		}
		fmt.Printf("%+v\n", stats)
		return nil
	},
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List every completed archive/file import marker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		files, err := s.GetCompletedFiles()
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("%s|%s %d\n", f.ArchivePath, f.FilePath, f.StatusCount)
		}
		return nil
	},
}

func dumpIDsCmd(use, short string, t tag.Tag) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ids, err := s.DumpIDs(t)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

var dumpUserIDsCmd = dumpIDsCmd("dump-user-ids", "Dump every user id with a UserEntry", tag.User)
var dumpFullStatusIDsCmd = dumpIDsCmd("dump-full-status-ids", "Dump every status id with a FullStatus entry", tag.FullStatus)
var dumpShortStatusIDsCmd = dumpIDsCmd("dump-short-status-ids", "Dump every status id with a ShortStatus entry", tag.ShortStatus)
var dumpDeleteIDsCmd = dumpIDsCmd("dump-delete-ids", "Dump every user id with a deletion notice", tag.Delete)

var extendedUserCmd = &cobra.Command{
	Use:   "extended-user <user_id>",
	Short: "Print a user's aliases alongside their recorded profile history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUint64(args[0])
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		aliases, err := s.LookupUser(userID)
		if err != nil {
			return err
		}
		for _, a := range aliases {
			fmt.Printf("%s %v\n", a.ScreenName, a.StatusIDs)
		}

		deletes, err := s.LookupDeletes(userID)
		if err != nil {
			return err
		}
		fmt.Printf("deletes: %d\n", len(deletes))

		ps, err := openProfileStore()
		if err != nil {
			return err
		}
		defer ps.Close()

		observations, err := ps.LookupUser(userID)
		if err != nil {
			return err
		}
		fmt.Printf("profile observations: %d\n", len(observations))
		for _, o := range observations {
			fmt.Printf("  %d %s (%s)\n", o.ObservedMillis, o.Snapshot.ScreenName, o.Snapshot.Name)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Bulk-load raw (key, value) records from the binary import format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		count, err := ingest.Submit(s, f)
		if err != nil {
			return err
		}
		log.Info().Int("count", count).Msg("import complete")
		return nil
	},
}

func parseUint64(s string) (uint64, error) {
	var v uint64
	_, err := fmt.Sscanf(s, "%d", &v)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return v, nil
}
