package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/RJBOGA/JAP/internal/chat"
	applog "github.com/RJBOGA/JAP/internal/logger"
	"github.com/RJBOGA/JAP/internal/policy"
	"github.com/RJBOGA/JAP/internal/portal"
	"github.com/RJBOGA/JAP/internal/result"
	"github.com/RJBOGA/JAP/internal/scheduling"
	"github.com/RJBOGA/JAP/internal/session"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptExit        = "exit"
	PromptContinue    = "Continue chatting"
	PromptShowDetails = "Show the generated query and raw result"
	PromptCancel      = "Cancel"

	maxRawLogLength = 2000
)

var errExit = errors.New("exit requested")

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a conversational session with the recruiting backend",
	Run: func(_ *cobra.Command, _ []string) {
		runChat()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// actionItem is one selectable follow-up next to a rendered result. The
// label is what the select shows; the rest is the dispatch target.
type actionItem struct {
	label  string
	action policy.Action

	user          result.User
	jobID         int
	jobTitle      string
	applicationID int
}

func runChat() {
	ctx := context.Background()

	logger, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := newSessionStore(config)

	sess := store.Current()
	if sess == nil {
		logger.Fatal("no active session",
			zap.String("hint", "run 'jap login' first"),
		)
	}

	client := portal.New(ctx, logger, config.Endpoint)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}
	client.RoleFunc = func() string {
		return string(store.Role())
	}

	logger.Info("starting the chat session",
		zap.String("version", version),
		zap.String("user", sess.DisplayName()),
		zap.String("role", string(sess.User.Role)),
	)

	fmt.Printf("Hi %s! Ask me about jobs, candidates, applications or interviews. Type '%s' to quit.\n",
		sess.User.FirstName, PromptExit)

	transcript := &chat.Transcript{}

	for {
		// Re-read the session on every turn so expiry mid-conversation is
		// noticed before the next request goes out.
		sess = store.Current()
		if sess == nil {
			fmt.Println("Your session has expired. Run 'jap login' to continue.")
			return
		}

		input := promptui.Prompt{Label: sess.User.FirstName}

		text, err := input.Run()
		if err != nil {
			// Ctrl-C / Ctrl-D end the session.
			return
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, PromptExit) {
			return
		}

		transcript.Append(chat.TextMessage{Speaker: chat.SpeakerUser, Text: text})

		if err := handleTurn(client, transcript, config, logger, sess, text); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// handleTurn runs one conversational turn: translate, execute, classify,
// render and offer the follow-up actions the current role is entitled to.
func handleTurn(client *portal.Client, transcript *chat.Transcript, config *Config, logger *zap.Logger, sess *session.Session, text string) error {
	turn, err := client.TranslateAndExecute(text, portal.UserContext(sess.User))
	if err != nil {
		reply := "I couldn't reach the backend. Please try again."
		var apiErr *portal.APIError
		if errors.As(err, &apiErr) {
			reply = "An error occurred: " + apiErr.Message
		}

		logger.Warn("turn failed", zap.Error(err))
		fmt.Println(reply)
		transcript.Append(chat.TextMessage{Speaker: chat.SpeakerAssistant, Text: reply})
		return nil
	}

	if response, ok := turn.SmallTalk(); ok {
		fmt.Println(response)
		transcript.Append(chat.TextMessage{Speaker: chat.SpeakerAssistant, Text: response})
		return nil
	}

	logger.Debug("turn executed",
		zap.String("generated_query", applog.TruncateForLog(turn.GeneratedQuery, maxRawLogLength)),
	)

	view := result.Classify(turn.Result)

	transcript.Append(chat.ResultMessage{
		Speaker:        chat.SpeakerAssistant,
		GeneratedQuery: turn.GeneratedQuery,
		Raw:            turn.Result,
		View:           view,
	})

	fmt.Println(chat.Render(view))

	return offerFollowUps(client, config, logger, sess, turn, view)
}

// offerFollowUps shows the per-result menu: the role-gated entry actions
// plus the detail toggle. It returns once the user continues chatting.
func offerFollowUps(client *portal.Client, config *Config, logger *zap.Logger, sess *session.Session, turn *portal.TranslateResult, view result.View) error {
	entries := buildActionItems(view, sess)

	for {
		items := []string{PromptContinue}
		for _, entry := range entries {
			items = append(items, entry.label)
		}
		items = append(items, PromptShowDetails)

		menu := promptui.Select{
			Label: "Anything else for this result?",
			Items: items,
		}

		_, selected, err := menu.Run()
		if err != nil {
			return errExit
		}

		switch selected {
		case PromptContinue:
			return nil
		case PromptShowDetails:
			fmt.Println(chat.RenderDetails(turn.GeneratedQuery, turn.Result))
		default:
			entry := findActionItem(entries, selected)
			if entry == nil {
				return fmt.Errorf("invalid action: %s", selected)
			}
			if err := dispatchAction(client, config, logger, sess, *entry); err != nil {
				return err
			}
		}
	}
}

// buildActionItems lists every per-entry action the current role may invoke
// on this view. The view-level gate runs first so a role never sees another
// role's controls, whatever the payload contains.
func buildActionItems(view result.View, sess *session.Session) []actionItem {
	role := sess.User.Role

	if len(policy.ActionsFor(view, role)) == 0 {
		return nil
	}

	var entries []actionItem

	switch view.Kind {
	case result.KindApplicantsByJob:
		for _, group := range view.JobApplicants {
			for _, applicant := range group.Applicants {
				entries = append(entries, userEntries(applicant, role, group.Job.JobID, group.Job.Title)...)
			}
		}
	case result.KindUserList:
		for _, user := range view.Users {
			entries = append(entries, userEntries(user, role, 0, "")...)
		}
	case result.KindSingleUser:
		if view.User != nil {
			entries = append(entries, userEntries(*view.User, role, 0, "")...)
		}
	case result.KindApplicationList:
		for _, app := range view.Applications {
			entries = append(entries, applicationEntries(app, role)...)
		}
	case result.KindSingleApplication:
		if view.Application != nil {
			entries = append(entries, applicationEntries(*view.Application, role)...)
		}
	}

	return entries
}

func userEntries(user result.User, role session.Role, jobID int, jobTitle string) []actionItem {
	var entries []actionItem

	for _, action := range policy.UserActions(user, role) {
		entry := actionItem{
			action:   action,
			user:     user,
			jobID:    jobID,
			jobTitle: jobTitle,
		}

		suffix := ""
		if jobTitle != "" {
			suffix = " for " + jobTitle
		}

		switch action {
		case policy.ActionSchedule:
			entry.label = fmt.Sprintf("Schedule an interview with %s%s", user.FullName(), suffix)
		case policy.ActionHire:
			entry.label = fmt.Sprintf("Hire %s%s", user.FullName(), suffix)
		case policy.ActionReject:
			entry.label = fmt.Sprintf("Reject %s%s", user.FullName(), suffix)
		default:
			continue
		}

		entries = append(entries, entry)
	}

	return entries
}

func applicationEntries(app result.Application, role session.Role) []actionItem {
	var entries []actionItem

	for _, action := range policy.ApplicationActions(app, role) {
		if action != policy.ActionSelfSchedule {
			continue
		}

		target := fmt.Sprintf("application #%d", app.AppID)
		jobTitle := ""
		if app.Job != nil && app.Job.Title != "" {
			target = app.Job.Title
			jobTitle = app.Job.Title
		}

		entries = append(entries, actionItem{
			label:         fmt.Sprintf("Pick an interview slot for %s", target),
			action:        action,
			jobID:         app.JobID,
			jobTitle:      jobTitle,
			applicationID: app.AppID,
		})
	}

	return entries
}

func findActionItem(entries []actionItem, label string) *actionItem {
	for i := range entries {
		if entries[i].label == label {
			return &entries[i]
		}
	}
	return nil
}

func dispatchAction(client *portal.Client, config *Config, logger *zap.Logger, sess *session.Session, entry actionItem) error {
	switch entry.action {
	case policy.ActionSchedule:
		jobID, err := resolveJobID(entry)
		if err != nil {
			return err
		}

		return runScheduling(client, config, logger, scheduling.Target{
			CandidateID:   entry.user.UserID,
			JobID:         jobID,
			JobTitle:      entry.jobTitle,
			CandidateName: entry.user.FullName(),
		})
	case policy.ActionSelfSchedule:
		return runScheduling(client, config, logger, scheduling.Target{
			CandidateID:   sess.User.ID,
			JobID:         entry.jobID,
			JobTitle:      entry.jobTitle,
			CandidateName: sess.DisplayName(),
			ApplicationID: entry.applicationID,
		})
	case policy.ActionHire, policy.ActionReject:
		status := policy.StatusForAction(entry.action)
		if status == "" {
			return fmt.Errorf("invalid action: %s", entry.action)
		}

		jobID, err := resolveJobID(entry)
		if err != nil {
			return err
		}

		updated, err := client.UpdateApplicationStatus(entry.user.UserID, jobID, status)
		if err != nil {
			var apiErr *portal.APIError
			if errors.As(err, &apiErr) {
				fmt.Println("An error occurred: " + apiErr.Message)
				return nil
			}
			return err
		}

		logger.Info("application status updated",
			zap.Int("user_id", entry.user.UserID),
			zap.Int("job_id", jobID),
			zap.String("status", updated),
		)
		fmt.Printf("%s's application is now %s.\n", entry.user.FullName(), updated)
		return nil
	default:
		return fmt.Errorf("invalid action: %s", entry.action)
	}
}

// resolveJobID returns the job the action applies to. Views grouped by job
// already carry it; plain user lookups don't, so the job is asked for.
func resolveJobID(entry actionItem) (int, error) {
	if entry.jobID != 0 {
		return entry.jobID, nil
	}

	input := promptui.Prompt{
		Label: fmt.Sprintf("Which job ID is this about for %s?", entry.user.FullName()),
		Validate: func(s string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				return errors.New("enter a numeric job id")
			}
			return nil
		},
	}

	raw, err := input.Run()
	if err != nil {
		return 0, errExit
	}

	return strconv.Atoi(strings.TrimSpace(raw))
}

// runScheduling drives one scheduling panel: a single slot fetch, then a
// select-and-confirm loop until the booking lands or the user cancels.
func runScheduling(client *portal.Client, config *Config, logger *zap.Logger, target scheduling.Target) error {
	w := scheduling.New(client, target, config.Scheduling.DurationMinutes, config.Scheduling.WindowDays, logger)
	defer w.Cancel()

	who := target.CandidateName
	if target.ApplicantMode() {
		who = "you"
	}
	fmt.Printf("Looking for conflict-free slots for %s...\n", who)

	if err := w.Load(); err != nil {
		return err
	}

	for {
		m := w.Machine()

		switch m.State {
		case scheduling.StateFailed:
			fmt.Println("Couldn't load available slots: " + m.Message)
			return nil
		case scheduling.StateConfirmed:
			fmt.Println("Interview successfully scheduled!")
			if m.Booked != nil && m.Booked.StartTime != "" {
				fmt.Printf("Starts at %s.\n", formatSlot(m.Booked.StartTime))
			}
			return nil
		case scheduling.StateLoaded:
			if m.Message != "" {
				fmt.Println(m.Message)
			}
			if len(m.Slots) == 0 {
				fmt.Printf("No open slots in the next %d days.\n", config.Scheduling.WindowDays)
				return nil
			}

			items := make([]string, 0, len(m.Slots)+1)
			for _, slot := range m.Slots {
				items = append(items, formatSlot(slot))
			}
			items = append(items, PromptCancel)

			slotPrompt := promptui.Select{
				Label: "Choose a slot and press ENTER",
				Items: items,
			}

			idx, selected, err := slotPrompt.Run()
			if err != nil || selected == PromptCancel {
				return nil
			}

			if err := w.Confirm(m.Slots[idx]); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected scheduling state: %s", m.State)
		}
	}
}

// formatSlot renders an RFC3339 slot for the menu; unparseable values are
// shown raw rather than hidden.
func formatSlot(slot string) string {
	t, err := time.Parse(time.RFC3339, slot)
	if err != nil {
		return slot
	}
	return t.Format("Mon, 02 Jan 2006 at 15:04 MST")
}
