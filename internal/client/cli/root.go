package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/followupdesk/internal/buildinfo"
	"github.com/dmitrijs2005/followupdesk/internal/client/config"
	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// annotationNoApp marks commands that run without configuration or storage.
const annotationNoApp = "followupdesk/no-app"

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	var app *App

	root := &cobra.Command{
		Use:           "followupdesk",
		Short:         "FollowUpDesk records dashboard client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationNoApp] != "" {
				return nil
			}
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			app, err = NewApp(cmd.Context(), cfg, in, out, errOut)
			return err
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	current := func() *App { return app }
	addCommands(root, current)

	root.AddCommand(&cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoApp: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(out, "Welcome to FollowUpDesk CLI (type 'help' for commands)")
			runREPL(cmd.Context(), app, app.status, app.reader)
			return nil
		},
	})

	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if app != nil {
		if cerr := app.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}
	if err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(errOut, msg)
		}
		return 1
	}
	return 0
}

// Exec runs one command line against this App. The REPL uses it so typed
// lines share the command tree of the non-interactive CLI.
func (a *App) Exec(ctx context.Context, args []string) error {
	root := &cobra.Command{
		Use:           "followupdesk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addCommands(root, func() *App { return a })
	root.SetArgs(args)
	root.SetIn(a.reader)
	root.SetOut(a.out)
	root.SetErr(a.out)
	return root.ExecuteContext(ctx)
}

// addCommands attaches the domain commands to root. app is resolved at run
// time, after the persistent pre-run has built it.
func addCommands(root *cobra.Command, app func() *App) {
	root.AddCommand(
		loginCommand(app),
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app().Logout(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the signed-in user",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app().WhoAmI(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "health",
			Short: "Check that the server is reachable",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app().Health(cmd.Context())
			},
		},
		recordsCommand(app),
		remarksCommand(app),
	)
}

func loginCommand(app func() *App) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in; the password is read from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().Login(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")
	return cmd
}

// filterFlags binds the record filter flags shared by list and download.
type filterFlags struct {
	ledger   string
	phone    string
	expected string
	from     string
	to       string
	search   string
}

func (f *filterFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.ledger, "ledger", "", "filter by ledger")
	fs.StringVar(&f.phone, "phone", "", "filter by phone number")
	fs.StringVar(&f.expected, "expected", "", "filter by payment expected (yes or no)")
	fs.StringVar(&f.from, "from", "", "payment expected on or after YYYY-MM-DD")
	fs.StringVar(&f.to, "to", "", "payment expected on or before YYYY-MM-DD")
	fs.StringVar(&f.search, "search", "", "free-text search")
}

func (f *filterFlags) filters() (models.RecordFilters, error) {
	out := models.RecordFilters{
		Ledger:                  f.ledger,
		PhoneNo:                 f.phone,
		PaymentExpectedDateFrom: f.from,
		PaymentExpectedDateTo:   f.to,
		Search:                  f.search,
	}
	if f.expected != "" {
		v, err := parseYesNo(f.expected)
		if err != nil {
			return out, &models.ValidationError{Field: "expected", Message: err.Error()}
		}
		out.PaymentExpected = &v
	}
	return out, nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected must be yes or no, got %q", s)
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, &userError{msg: fmt.Sprintf("invalid %s %q", name, s), err: models.ErrValidation}
	}
	return id, nil
}

func recordsCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"r"},
		Short:   "Browse, update, import and export records",
	}

	var (
		listFilters filterFlags
		page, limit int
	)
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := listFilters.filters()
			if err != nil {
				return app().failed(cmd.Context(), "Invalid filters", err)
			}
			f.Page, f.Limit = page, limit
			return app().ListRecords(cmd.Context(), f)
		},
	}
	listFilters.bind(list.Flags())
	list.Flags().IntVar(&page, "page", models.DefaultPage, "page number")
	list.Flags().IntVar(&limit, "limit", models.DefaultLimit, "records per page")

	next := &cobra.Command{
		Use:   "next",
		Short: "Show the next page of the last listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().TurnRecordsPage(cmd.Context(), 1)
		},
	}
	prev := &cobra.Command{
		Use:   "prev",
		Short: "Show the previous page of the last listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().TurnRecordsPage(cmd.Context(), -1)
		},
	}

	var (
		refineFilters filterFlags
		refineLimit   int
	)
	filter := &cobra.Command{
		Use:   "filter",
		Short: "Narrow the last listing and go back to its first page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := refineFilters.filters()
			if err != nil {
				return app().failed(cmd.Context(), "Invalid filters", err)
			}
			f.Limit = refineLimit
			return app().RefineRecords(cmd.Context(), f)
		},
	}
	refineFilters.bind(filter.Flags())
	filter.Flags().IntVar(&refineLimit, "limit", 0, "records per page (keeps the current size when 0)")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a record and its remarks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("record id", args[0])
			if err != nil {
				return err
			}
			return app().ShowRecord(cmd.Context(), id)
		},
	}

	var expected, date string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update payment expectation (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("record id", args[0])
			if err != nil {
				return err
			}
			var data models.UpdateRecordData
			if cmd.Flags().Changed("expected") {
				v, err := parseYesNo(expected)
				if err != nil {
					return app().failed(cmd.Context(), "Invalid update", &models.ValidationError{Field: "expected", Message: err.Error()})
				}
				data.PaymentExpected = &v
			}
			if cmd.Flags().Changed("date") {
				d := date
				data.PaymentExpectedDate = &d
			}
			return app().UpdateRecord(cmd.Context(), id, data)
		},
	}
	update.Flags().StringVar(&expected, "expected", "", "payment expected (yes or no)")
	update.Flags().StringVar(&date, "date", "", `expected payment date YYYY-MM-DD ("" clears it)`)

	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Import records from an .xlsx, .xls or .csv file (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().UploadRecords(cmd.Context(), args[0])
		},
	}

	var (
		dlFilters filterFlags
		outDir    string
		toS3      bool
	)
	download := &cobra.Command{
		Use:   "download",
		Short: "Export records to a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			f, err := dlFilters.filters()
			if err != nil {
				return a.failed(cmd.Context(), "Invalid filters", err)
			}
			dir := outDir
			if dir == "" {
				dir = a.config.DownloadDir
			}
			return a.DownloadRecords(cmd.Context(), f, dir, toS3)
		},
	}
	dlFilters.bind(download.Flags())
	download.Flags().StringVarP(&outDir, "out", "o", "", "directory to save the export into")
	download.Flags().BoolVar(&toS3, "s3", false, "upload the export to the configured S3 bucket")
	download.MarkFlagsMutuallyExclusive("out", "s3")

	cmd.AddCommand(list, next, prev, filter, get, update, upload, download)
	return cmd
}

func remarksCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remarks",
		Short: "Read and write remarks on a record",
	}

	var page, limit int
	list := &cobra.Command{
		Use:     "list <recordID>",
		Aliases: []string{"ls"},
		Short:   "List remarks of a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("record id", args[0])
			if err != nil {
				return err
			}
			return app().ListRemarks(cmd.Context(), id, page, limit)
		},
	}
	list.Flags().IntVar(&page, "page", models.DefaultPage, "page number")
	list.Flags().IntVar(&limit, "limit", models.DefaultLimit, "remarks per page")

	add := &cobra.Command{
		Use:   "add <recordID> <text>...",
		Short: "Add a remark (admin)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("record id", args[0])
			if err != nil {
				return err
			}
			return app().AddRemark(cmd.Context(), id, strings.Join(args[1:], " "))
		},
	}

	update := &cobra.Command{
		Use:   "update <recordID> <remarkID> <text>...",
		Short: "Edit a remark (admin)",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := parseID("record id", args[0])
			if err != nil {
				return err
			}
			remarkID, err := parseID("remark id", args[1])
			if err != nil {
				return err
			}
			return app().UpdateRemark(cmd.Context(), recordID, remarkID, strings.Join(args[2:], " "))
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:     "delete <recordID> <remarkID>",
		Aliases: []string{"rm"},
		Short:   "Delete a remark (admin); the initial remark cannot be deleted",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := parseID("record id", args[0])
			if err != nil {
				return err
			}
			remarkID, err := parseID("remark id", args[1])
			if err != nil {
				return err
			}
			return app().DeleteRemark(cmd.Context(), recordID, remarkID, yes)
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, add, update, del)
	return cmd
}
