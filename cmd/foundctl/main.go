package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	campusfound "github.com/campusfound/campusfound-go"
	"github.com/campusfound/campusfound-go/credstore"
	"github.com/campusfound/campusfound-go/lostfound"
)

var version = "dev"

type flags struct {
	baseURL    string
	configPath string
	logLevel   string
	role       string
}

func main() {
	// Optional; credentials can come from FOUNDCTL_USERNAME/FOUNDCTL_PASSWORD.
	_ = godotenv.Load()

	f := &flags{}
	var client *campusfound.Client

	app := &cli.Command{
		Name:    "foundctl",
		Usage:   "Query the campus lost-and-found service",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "base-url",
				Usage:       "service base URL",
				Sources:     cli.EnvVars("FOUNDCTL_BASE_URL"),
				Value:       "http://localhost:8080",
				Destination: &f.baseURL,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FOUNDCTL_CONFIG"),
				Destination: &f.configPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("FOUNDCTL_LOG_LEVEL"),
				Value:       "warn",
				Destination: &f.logLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := setupLogger(f.logLevel)
			if err != nil {
				return ctx, err
			}

			cfg := campusfound.DefaultConfig()
			if f.configPath != "" {
				cfg, err = campusfound.ConfigFromFile(f.configPath)
				if err != nil {
					return ctx, fmt.Errorf("load config: %w", err)
				}
			}
			if cfg.HTTP.BaseURL == "" {
				cfg.HTTP.BaseURL = f.baseURL
			}

			store, err := sessionStore()
			if err != nil {
				return ctx, err
			}

			client, err = campusfound.New().
				WithConfig(cfg).
				WithStore(store).
				WithLogger(logger).
				Build()
			if err != nil {
				return ctx, err
			}
			if err := client.Initialize(ctx); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			loginCmd(f, &client),
			whoamiCmd(&client),
			searchCmd(&client),
			logoutCmd(&client),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loginCmd(f *flags, client **campusfound.Client) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate and persist the session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "role",
				Usage:       "normal_user, lost_item_admin, or super_admin",
				Value:       string(campusfound.RoleNormalUser),
				Destination: &f.role,
			},
			&cli.StringFlag{
				Name:     "username",
				Aliases:  []string{"u"},
				Sources:  cli.EnvVars("FOUNDCTL_USERNAME"),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Sources:  cli.EnvVars("FOUNDCTL_PASSWORD"),
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			state, err := (*client).LoginAs(ctx, campusfound.Role(f.role), campusfound.Credentials{
				Username: c.String("username"),
				Password: c.String("password"),
			})
			if err != nil {
				return err
			}
			fmt.Printf("logged in as %s (%s)\n", state.Identity.DisplayName(), state.Role)
			return nil
		},
	}
}

func whoamiCmd(client **campusfound.Client) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the current session",
		Action: func(ctx context.Context, c *cli.Command) error {
			state := (*client).Session()
			if !state.Authenticated {
				fmt.Println("not logged in")
				return nil
			}
			fmt.Printf("%s (%s)\n", state.Identity.DisplayName(), state.Role)
			if (*client).TokenExpired() {
				fmt.Println("warning: token has expired; run login again")
			}
			return nil
		},
	}
}

func searchCmd(client **campusfound.Client) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search published lost items",
		ArgsUsage: "[keyword]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "building", Usage: "filter by building"},
			&cli.IntFlag{Name: "page", Value: lostfound.DefaultPageNum},
			&cli.IntFlag{Name: "size", Value: lostfound.DefaultPageSize},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			items := lostfound.NewItems((*client).Pipeline())
			result, err := items.Search(ctx, lostfound.SearchQuery{
				Keyword:  c.Args().First(),
				Building: c.String("building"),
				Page: lostfound.Page{
					Num:  int(c.Int("page")),
					Size: int(c.Int("size")),
				},
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tCOLOR\tBUILDING\tSTATUS")
			for _, item := range result.Records {
				status := lostfound.StatusUnclaimed
				if item.Claimed() {
					status = lostfound.StatusClaimed
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					item.ID, item.Name, item.Type, item.Color, item.Building, status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("%s of %d items\n", pageLabel(result), result.Total)
			return nil
		},
	}
}

func logoutCmd(client **campusfound.Client) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "End the session locally and server-side",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := (*client).Logout(ctx); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func pageLabel(r *lostfound.PageResult[lostfound.LostItem]) string {
	return "page " + strconv.Itoa(r.PageNum)
}

func setupLogger(level string) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(parsed).
		With().Timestamp().Logger(), nil
}

func sessionStore() (credstore.Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	path := filepath.Join(dir, "foundctl", "session.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return credstore.NewFile(path), nil
}
