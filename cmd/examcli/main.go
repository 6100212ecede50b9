package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/lshigami/examprep/internal/client"
	"github.com/lshigami/examprep/internal/exam"
	"github.com/lshigami/examprep/internal/logger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const help = `commands: n next | p previous | 1-4 answer | j N jump | m mark | s submit | t terminate
          y confirm | c cancel | r dismiss error | q quit`

func main() {
	logger.Init()

	pflag.String("api", "http://localhost:8080/api/v1", "API base URL")
	pflag.String("email", "", "sign in with this email")
	pflag.String("password", "", "password for --email")
	pflag.String("test", "", "ID of the test to sit; lists tests when empty")
	pflag.String("subject", "", "subject filter for the test list")
	pflag.Parse()
	viper.SetEnvPrefix("EXAMCLI")
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(viper.GetString("api"))
	if email := viper.GetString("email"); email != "" {
		if err := api.Login(ctx, email, viper.GetString("password")); err != nil {
			log.Fatal().Err(err).Msg("Login failed")
		}
	}

	testID := viper.GetString("test")
	if testID == "" {
		listTests(ctx, api, viper.GetString("subject"))
		return
	}

	e, err := api.GetExam(ctx, testID)
	if err != nil {
		log.Fatal().Err(err).Str("testID", testID).Msg("Failed to load test")
	}

	r := &renderer{title: e.Title}
	session := exam.NewSession(e.ID, e.Duration, client.Questions(e))
	ctrl := exam.NewController(session, api, exam.WithOnChange(r.render))

	go func() {
		if err := ctrl.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("Timer stopped")
		}
	}()

	fmt.Println(help)
	r.render(ctrl.View())
	readCommands(ctx, ctrl)
}

func listTests(ctx context.Context, api *client.Client, subject string) {
	tests, err := api.ListTests(ctx, subject)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list tests")
	}
	for _, t := range tests {
		fmt.Printf("%s  %-45s %-35s %3d min  %2d questions\n", t.ID, t.Title, t.Subject, t.Duration, t.QuestionCount)
	}
}

func readCommands(ctx context.Context, ctrl *exam.Controller) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch cmd := fields[0]; cmd {
		case "n":
			ctrl.HandleKey("ArrowRight")
		case "p":
			ctrl.HandleKey("ArrowLeft")
		case "1", "2", "3", "4":
			ctrl.HandleKey(cmd)
		case "j":
			if len(fields) > 1 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					ctrl.JumpTo(n - 1)
				}
			}
		case "m":
			if q := ctrl.View().Question; q.ID != "" {
				_ = ctrl.ToggleMark(q.ID)
			}
		case "s":
			ctrl.RequestSubmit()
		case "t":
			ctrl.RequestTerminate()
		case "c":
			ctrl.CancelDialog()
		case "r":
			ctrl.DismissError()
		case "y":
			switch ctrl.Phase() {
			case exam.PhaseConfirm:
				_ = ctrl.ConfirmSubmit(ctx)
			case exam.PhaseTerminate:
				ctrl.ConfirmTerminate()
			}
		case "q":
			return
		default:
			fmt.Println(help)
		}
		switch ctrl.Phase() {
		case exam.PhaseResult, exam.PhaseTerminated:
			return
		}
	}
}

// renderer prints the view when anything but the clock changes, and the
// clock itself once a minute.
type renderer struct {
	mu    sync.Mutex
	title string
	last  string
}

func (r *renderer) render(v exam.View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s|%d|%d|%d|%s", v.Phase, v.Index, len(v.Answers), len(v.Marked), v.Error)
	if key == r.last {
		if v.Phase == exam.PhaseActive && v.TimeLeft%60 == 0 && v.TimeLeft > 0 {
			fmt.Printf("  %s left\n", clock(v.TimeLeft))
		}
		return
	}
	r.last = key

	switch v.Phase {
	case exam.PhaseActive:
		fmt.Printf("\n%s  [%s]  question %d/%d  answered %d\n", r.title, clock(v.TimeLeft), v.Index+1, v.QuestionCount, len(v.Answers))
		mark := ""
		if v.Marked[v.Question.ID] {
			mark = " (marked)"
		}
		fmt.Printf("%s%s\n", v.Question.Content, mark)
		selected, answered := v.Answers[v.Question.ID]
		for i, opt := range v.Question.Options {
			cursor := " "
			if answered && selected == i {
				cursor = ">"
			}
			fmt.Printf(" %s %d. %s\n", cursor, i+1, opt)
		}
	case exam.PhaseConfirm:
		fmt.Printf("Submit with %d of %d questions answered? [y/c]\n", len(v.Answers), v.QuestionCount)
	case exam.PhaseTerminate:
		fmt.Println("Terminate the exam? Your answers will be discarded. [y/c]")
	case exam.PhaseSubmitting:
		fmt.Println("Submitting...")
	case exam.PhaseFailed:
		fmt.Printf("Submission failed: %s\nPress r to return to the exam and submit again.\n", v.Error)
	case exam.PhaseResult:
		fmt.Printf("Score %d/%d (%d%%). Attempt %s. Press enter to exit.\n", v.Result.Score, v.Result.TotalMarks, v.Result.Percentage, v.Result.AttemptID)
	case exam.PhaseTerminated:
		fmt.Println("Exam terminated.")
	}
}

func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
