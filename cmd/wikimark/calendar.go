package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/wikimark/internal/calendar"
	"github.com/gorewood/wikimark/internal/output"
	"github.com/gorewood/wikimark/internal/wiki"
)

// calendarOptions builds label and week options from config and flags.
func calendarOptions(cmd *cobra.Command, env *cmdEnv, firstDay int, locale string) (calendar.Options, error) {
	opts := calendar.DefaultOptions()
	opts.FirstDayOfWeek = time.Weekday(env.cfg.FirstDayOfWeek)
	if cmd.Flags().Changed("first-day") {
		if firstDay < 0 || firstDay > 6 {
			return opts, output.NewUserErrorf("--first-day must be 0 (Sunday) to 6, got %d", firstDay)
		}
		opts.FirstDayOfWeek = time.Weekday(firstDay)
	}

	name := env.cfg.Locale
	if cmd.Flags().Changed("locale") {
		name = locale
	}
	l, ok := calendar.LocaleFor(name)
	if !ok {
		env.logger.Warn("unknown locale, using en_US", "locale", name)
	}
	opts.Locale = l

	if env.cfg.DateLayout != "" {
		opts.DateLayout = env.cfg.DateLayout
	}
	if env.cfg.WeekdayLayout != "" {
		opts.WeekdayLayout = env.cfg.WeekdayLayout
	}
	return opts, nil
}

// newCalendarCmd creates the calendar command.
func newCalendarCmd() *cobra.Command {
	var yearFlag, firstDayFlag, weeksFlag int
	var localeFlag, formatFlag, startFlag, endFlag string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show dated pages as a week-by-week calendar",
		Long: `Show dated pages as a week-by-week calendar.

A page's date is its "at" field, else its creation time. Without a year the
calendar covers the current week and the three before it.

Examples:
  wikimark calendar                          # Last four weeks as a Markdown table
  wikimark calendar --year 2023              # The whole of 2023
  wikimark calendar --first-day 0 --locale de
  wikimark calendar --start 2024-03-01 --weeks 6
  wikimark calendar --format html            # Styled HTML table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			opts, err := calendarOptions(cmd, env, firstDayFlag, localeFlag)
			if err != nil {
				env.printer.Error(err)
				return err
			}
			start, end, err := calendarRange(yearFlag, startFlag, endFlag, weeksFlag, opts)
			if err != nil {
				env.printer.Error(err)
				return err
			}
			store, err := env.openStore()
			if err != nil {
				return err
			}

			cal := calendar.Build(calendar.FromPages(store.Pages()), start, end, opts)
			if env.printer.IsJSON() {
				return env.printer.WriteJSON(cal)
			}
			switch formatFlag {
			case "html":
				env.printer.Print("%s", cal.HTML())
			case "md", "markdown":
				md, err := cal.Markdown(env.dialect)
				if err != nil {
					err = output.NewSystemErrorWithCause("calendar failed", err)
					env.printer.Error(err)
					return err
				}
				env.printer.Print("%s", md)
			default:
				err := output.NewUserErrorf("--format must be md or html, got %q", formatFlag)
				env.printer.Error(err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&yearFlag, "year", 0, "Calendar year (default: the last four weeks)")
	cmd.Flags().IntVar(&firstDayFlag, "first-day", 1, "First day of the week, 0 (Sunday) to 6")
	cmd.Flags().StringVar(&localeFlag, "locale", "", "Locale for day and month names, such as de or en_GB")
	cmd.Flags().StringVar(&formatFlag, "format", "md", "Output format: md or html")
	cmd.Flags().StringVar(&startFlag, "start", "", "First date to show (widened to whole weeks)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Last date to show (widened to whole weeks)")
	cmd.Flags().IntVar(&weeksFlag, "weeks", 4, "Weeks to show when only one of --start and --end is given")
	cmd.MarkFlagsMutuallyExclusive("year", "start")
	cmd.MarkFlagsMutuallyExclusive("year", "end")

	return cmd
}

// calendarRange resolves --year, or --start/--end/--weeks, into a range.
func calendarRange(year int, start, end string, weeks int, opts calendar.Options) (time.Time, time.Time, error) {
	now := opts.Now.In(opts.Location)
	if start == "" && end == "" {
		s, e := calendar.Range(year, now, opts.FirstDayOfWeek)
		return s, e, nil
	}

	var from, to *time.Time
	if start != "" {
		t, err := wiki.ParseSince(start, now)
		if err != nil {
			return time.Time{}, time.Time{}, output.NewUserErrorf("invalid --start value %q", start)
		}
		t = localDay(t, now.Location())
		from = &t
	}
	if end != "" {
		t, err := wiki.ParseSince(end, now)
		if err != nil {
			return time.Time{}, time.Time{}, output.NewUserErrorf("invalid --end value %q", end)
		}
		t = localDay(t, now.Location())
		to = &t
	}
	s, e := calendar.WeekRange(from, to, weeks, now, opts.FirstDayOfWeek)
	return s, e, nil
}

// localDay keeps the calendar date of t at midnight in loc.
func localDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// newByDateCmd creates the bydate command.
func newByDateCmd() *cobra.Command {
	var daysFlag int
	var localeFlag, layoutFlag string

	cmd := &cobra.Command{
		Use:   "bydate",
		Short: "List pages grouped by date, newest first",
		Long: `List pages grouped by date, newest first, as Markdown headings with links.

Examples:
  wikimark bydate                                  # The 30 newest dates
  wikimark bydate --days 7 --dialect logseq
  wikimark bydate --layout "Monday, 2 January 2006" --locale fr`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			opts, err := calendarOptions(cmd, env, 0, localeFlag)
			if err != nil {
				env.printer.Error(err)
				return err
			}
			opts.DateLayout = layoutFlag
			store, err := env.openStore()
			if err != nil {
				return err
			}

			text := calendar.ByDate(calendar.FromPages(store.Pages()), daysFlag, opts, env.dialect)
			if env.printer.IsJSON() {
				return env.printer.WriteJSON(map[string]any{"markdown": text})
			}
			env.printer.Print("%s", text)
			return nil
		},
	}

	cmd.Flags().IntVar(&daysFlag, "days", 30, "Number of dates to list")
	cmd.Flags().StringVar(&localeFlag, "locale", "", "Locale for day and month names")
	cmd.Flags().StringVar(&layoutFlag, "layout", calendar.ByDateLayout, "Go time layout for the date headings")

	return cmd
}
