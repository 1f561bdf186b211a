// Command dashboard is a terminal client for the monitoring service. It
// authenticates, routes to the view the access guard allows for the stored
// session, and drives the alert lifecycle for clinical staff.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"carewatch/internal/alerts"
	"carewatch/internal/gateway"
	"carewatch/internal/guard"
	"carewatch/internal/session"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type clientConfig struct {
	BaseURL     string `env:"CAREWATCH_API" envDefault:"http://localhost:5000"`
	SessionFile string `env:"CAREWATCH_SESSION_FILE"`
}

func main() {
	username := flag.String("username", "", "log in with this username")
	password := flag.String("password", "", "log in with this password")
	register := flag.Bool("register", false, "register a patient account instead of logging in")
	phone := flag.String("phone", "", "phone for registration")
	logout := flag.Bool("logout", false, "clear the stored session")
	ack := flag.Int("ack", 0, "acknowledge the alert with this id")
	filter := flag.String("filter", "all", "alert category filter (all, HIGH_RISK, CRITICAL, WARNING)")
	flag.Parse()

	godotenv.Load()
	var cfg clientConfig
	if err := env.Parse(&cfg); err != nil {
		fail("config: %v", err)
	}
	if cfg.SessionFile == "" {
		home, _ := os.UserHomeDir()
		cfg.SessionFile = filepath.Join(home, ".carewatch", "session.json")
	}

	store := session.NewFileStore(cfg.SessionFile)
	client := gateway.New(cfg.BaseURL, store)
	client.OnAuthFailure(func() {
		fmt.Println("session expired, please log in again")
	})
	ctx := context.Background()

	switch {
	case *logout:
		if err := client.Logout(); err != nil {
			fail("logout: %v", err)
		}
		fmt.Println("logged out")
		return
	case *register:
		if *username == "" || *password == "" || *phone == "" {
			fail("registration needs -username, -password and -phone")
		}
		if err := client.Register(ctx, *username, *password, *phone); err != nil {
			fail("register: %v", err)
		}
		fmt.Println("registered, you can now log in")
		return
	case *username != "":
		if _, err := client.Login(ctx, *username, *password); err != nil {
			fail("login: %v", err)
		}
	}

	// Route exactly the way the guard decides; never render a view the
	// session is not authorized for.
	target := resolve(store.Get())
	switch target {
	case guard.LoginRoute:
		fail("not logged in; run with -username and -password")
	case guard.PatientRoute:
		showPatientView(ctx, client, store.Get())
	case guard.DoctorRoute:
		showStaffView(ctx, client, *filter, *ack, false)
	case guard.HospitalRoute:
		showStaffView(ctx, client, *filter, *ack, true)
	}
}

// resolve follows redirects from the root entry point to a terminal route.
func resolve(s session.Session) string {
	d := guard.Evaluate(guard.ScopeRoot, s)
	if d.Action == guard.Render {
		return guard.LoginRoute
	}
	return d.Target
}

func showPatientView(ctx context.Context, client *gateway.Client, s session.Session) {
	convs, err := client.Conversations(ctx, s.PatientID)
	if err != nil {
		fail("load conversations: %v", err)
	}
	trend, err := client.PainTrend(ctx, s.PatientID)
	if err != nil {
		fail("load pain trend: %v", err)
	}

	fmt.Println("== Recovery check-ins ==")
	for _, c := range convs {
		fmt.Printf("[%s] you: %s\n         care team: %s (risk %s)\n",
			c.CreatedAt.Format("2006-01-02 15:04"), c.PatientMessage, c.AgentResponse, c.RiskLevel)
	}
	fmt.Println("== Pain trend ==")
	for _, p := range trend {
		fmt.Printf("%s  pain %d\n", p.Date, p.Pain)
	}
}

func showStaffView(ctx context.Context, client *gateway.Client, filter string, ack int, admin bool) {
	mgr := alerts.NewManager(client)
	if err := mgr.Load(ctx); err != nil {
		// Partial results already loaded stay visible; say what failed.
		fmt.Fprintf(os.Stderr, "warning: load incomplete: %v\n", err)
		if errors.Is(err, gateway.ErrSessionExpired) {
			os.Exit(1)
		}
	}

	if admin {
		if stats, err := client.HospitalStats(ctx); err == nil {
			fmt.Printf("patients %d (active %d)  doctors %d  open alerts %d\n",
				stats.Patients, stats.ActivePatients, stats.Doctors, stats.OpenAlerts)
		} else {
			fmt.Fprintf(os.Stderr, "warning: stats unavailable: %v\n", err)
		}
	}

	if ack != 0 {
		if err := mgr.Acknowledge(ctx, ack); err != nil {
			fmt.Fprintf(os.Stderr, "acknowledge %d failed: %v\n", ack, err)
		} else {
			fmt.Printf("alert %d acknowledged\n", ack)
		}
	}

	fmt.Printf("== Active alerts (%d, showing %q) ==\n", mgr.ActiveCount(), filter)
	for _, a := range mgr.Filter(filter) {
		fmt.Printf("%s #%-4d %-10s %-20s %s\n",
			marker(a.AlertType), a.ID, a.AlertType, a.Name, a.Reason)
	}

	if !admin {
		fmt.Println("== Patients ==")
		for _, p := range mgr.Patients() {
			status := "inactive"
			if p.IsActive {
				status = "active"
			}
			fmt.Printf("#%-4d %-20s %-14s surgery %s (%s)\n", p.ID, p.Name, p.Phone, p.SurgeryDate, status)
		}
	}
}

func marker(alertType string) string {
	switch alerts.Classify(alertType) {
	case alerts.SeverityCritical:
		return "[!!]"
	case alerts.SeverityWarning:
		return "[! ]"
	default:
		return "[i ]"
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
