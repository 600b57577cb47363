// MedAgent terminal client: consent, intake, chat and summary against a
// running MedAgent API server, or fully offline with a scripted assistant.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"medagent/internal/agentapi"
	"medagent/internal/consent"
	"medagent/internal/i18n"
	"medagent/internal/intake"
	"medagent/internal/session"
	"medagent/internal/summary"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "MedAgent API base URL")
	langFlag := flag.String("lang", string(i18n.Default), "interface language (it|en)")
	offline := flag.Bool("offline", false, "run against a scripted in-process assistant")
	flag.Parse()

	lang := i18n.Language(*langFlag)
	if !lang.Valid() {
		fmt.Fprintf(os.Stderr, "unknown language %q, falling back to %s\n", *langFlag, i18n.Default)
		lang = i18n.Default
	}

	app := &app{
		in:   bufio.NewScanner(os.Stdin),
		lang: lang,
	}

	if *offline {
		app.client = agentapi.NewScripted()
	} else {
		app.client = agentapi.NewHTTPClient(*serverURL, &http.Client{Timeout: 30 * time.Second})
	}

	if err := app.run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	in     *bufio.Scanner
	lang   i18n.Language
	client agentapi.Client
}

func (a *app) tr(key string) string { return i18n.Resolve(a.lang, key) }

func (a *app) run() error {
	fmt.Println(a.tr("app.title"))
	fmt.Println(a.tr("app.subtitle"))
	fmt.Println(a.tr("entry.disclaimer"))
	fmt.Println()

	if err := a.consentGate(); err != nil {
		return err
	}

	ctx := context.Background()
	ctrl := session.NewController(a.client, a.lang)
	if err := ctrl.Create(ctx); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	if err := a.intakeForm(ctx, ctrl); err != nil {
		return err
	}

	if err := ctrl.FetchWelcome(ctx); err != nil {
		return fmt.Errorf("fetch welcome: %w", err)
	}

	if err := a.chatLoop(ctx, ctrl); err != nil {
		return err
	}

	return a.showSummary(ctx, ctrl)
}

// consentGate blocks until the user has accepted all three conditions, or
// returns an error if they decline.
func (a *app) consentGate() error {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	store := consent.NewFileStore(filepath.Join(dir, "medagent"))
	gate := consent.NewGate(store)
	if gate.HasConsented() {
		return nil
	}

	fmt.Println(a.tr("consent.prompt"))
	terms := a.askYesNo(a.tr("consent.terms"))
	privacy := a.askYesNo(a.tr("consent.privacy"))
	gdpr := a.askYesNo(a.tr("consent.gdpr"))

	if err := gate.Record(terms, privacy, gdpr); err != nil {
		if errors.Is(err, consent.ErrIncomplete) {
			return errors.New(a.tr("consent.missing"))
		}
		return err
	}
	return nil
}

// intakeForm collects the profile draft and submits it, re-prompting on
// validation failures.
func (a *app) intakeForm(ctx context.Context, ctrl *session.Controller) error {
	fmt.Println()
	fmt.Println(a.tr("intake.title"))

	draft := &intake.Draft{}
	if i := a.choose(a.tr("intake.age"), ageLabels()); i >= 0 {
		draft.Age = ageBrackets[i]
	}
	if i := a.choose(a.tr("intake.gender"), genderLabels(a.lang)); i >= 0 {
		draft.Gender = genders[i]
	}

	for {
		draft.PrimarySymptom = a.askLine(a.tr("intake.main_symptom"))
		if err := draft.Validate(); err != nil {
			fmt.Println(a.tr("intake.invalid_symptom"))
			continue
		}
		break
	}

	if i := a.choose(a.tr("intake.duration"), durationLabels(a.lang)); i >= 0 {
		draft.Duration = durations[i]
	}
	draft.Intensity = a.askIntensity(a.tr("intake.intensity"))
	draft.AssociatedSymptoms = a.pickOptions(a.tr("intake.associated_symptoms"), i18n.AssociatedSymptoms)
	draft.KnownConditions = a.pickOptions(a.tr("intake.known_conditions"), i18n.KnownConditions)
	draft.FamilyHistory = a.askLine(a.tr("intake.family_history"))

	if err := ctrl.SubmitProfile(ctx, draft); err != nil {
		if errors.Is(err, session.ErrProfileRejected) {
			fmt.Println(a.tr("intake.invalid_symptom"))
			return a.intakeForm(ctx, ctrl)
		}
		return fmt.Errorf("submit profile: %w", err)
	}
	return nil
}

// chatLoop runs the conversation until the user asks for the results.
func (a *app) chatLoop(ctx context.Context, ctrl *session.Controller) error {
	conv := ctrl.Conversation()
	fmt.Println()
	fmt.Println(a.tr("chat.title"))
	a.printLastAssistant(conv)
	fmt.Printf("(%s: /results)\n", a.tr("chat.see_results"))

	for {
		fmt.Print("> ")
		if !a.in.Scan() {
			return nil
		}
		line := strings.TrimSpace(a.in.Text())

		switch {
		case line == "/results" || line == "/esci":
			return nil
		case strings.HasPrefix(line, "/"):
			if n, err := strconv.Atoi(strings.TrimPrefix(line, "/")); err == nil {
				suggestions := conv.LastSuggestions()
				if n >= 1 && n <= len(suggestions) {
					conv.SelectSuggestedReply(suggestions[n-1])
					line = conv.TakePendingInput()
					break
				}
			}
			continue
		}

		if line == "" {
			continue
		}

		fmt.Println(a.tr("chat.thinking"))
		if err := conv.SendUserTurn(ctx, line); err != nil {
			if errors.Is(err, session.ErrEmptyInput) || errors.Is(err, session.ErrTurnInFlight) {
				continue
			}
			// The fallback reply is already in the log; keep going.
		}
		a.printLastAssistant(conv)
	}
}

// printLastAssistant prints the newest assistant message with its urgency
// and numbered suggested replies.
func (a *app) printLastAssistant(conv *session.Conversation) {
	msgs := conv.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if m, ok := msgs[i].(*session.AssistantMessage); ok {
			fmt.Printf("\n[%s: %s]\n%s\n", a.tr("chat.urgency"), strings.ToUpper(string(m.Urgency)), m.Text)
			for j, s := range m.Suggestions {
				fmt.Printf("  /%d %s\n", j+1, s)
			}
			return
		}
	}
}

// showSummary fetches the terminal summary, renders both views and closes
// the session.
func (a *app) showSummary(ctx context.Context, ctrl *session.Controller) error {
	pres := summary.NewPresenter(ctrl, a.lang)
	sum, err := pres.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch summary: %w", err)
	}
	fmt.Println()
	fmt.Println(a.tr("summary.title"))
	fmt.Println()
	fmt.Println(pres.RenderLay(sum))
	fmt.Println()
	fmt.Println(pres.RenderTechnical(sum))
	return ctrl.Close(ctx)
}

// Prompt helpers.

func (a *app) askLine(label string) string {
	fmt.Printf("%s: ", label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) askYesNo(label string) bool {
	for {
		answer := strings.ToLower(a.askLine(label + " [y/n]"))
		switch answer {
		case "y", "yes", "s", "si", "sì":
			return true
		case "n", "no":
			return false
		}
	}
}

// choose prints a numbered list and returns the chosen index, or -1 when
// the field is skipped with empty input.
func (a *app) choose(label string, options []string) int {
	fmt.Println(label + ":")
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	for {
		answer := a.askLine(label)
		if answer == "" {
			return -1
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return n - 1
		}
	}
}

func (a *app) askIntensity(label string) int {
	for {
		answer := a.askLine(label + " (1-10)")
		if answer == "" {
			return 0
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= 10 {
			return n
		}
	}
}

// pickOptions shows the localized option list and returns the stable ids of
// the comma-separated choices.
func (a *app) pickOptions(label string, list i18n.ListName) []string {
	options := i18n.Options(a.lang, list)
	fmt.Println(label + ":")
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt.Label)
	}
	answer := a.askLine(label)
	if answer == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(answer, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && n >= 1 && n <= len(options) {
			ids = intake.Toggle(ids, options[n-1].ID)
		}
	}
	return ids
}
