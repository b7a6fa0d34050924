// Command helio-cli is a terminal companion client. It runs the full turn
// pipeline in process against the local file store, so it works offline with
// the mock brain and upgrades itself to Gemini when a key is present.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/harshbaithub/helio/internal/brain"
	"github.com/harshbaithub/helio/internal/engine"
	"github.com/harshbaithub/helio/internal/lexicon"
	"github.com/harshbaithub/helio/internal/resources"
	"github.com/harshbaithub/helio/internal/session"
	"github.com/harshbaithub/helio/internal/store"
	"github.com/harshbaithub/helio/internal/voice"
)

var (
	userID   = flag.String("user", "default_user", "User identity for chat history")
	persona  = flag.String("persona", brain.DefaultPersona, "Assistant persona")
	language = flag.String("lang", "English", "Conversation language (English, Hindi, Marathi)")
	dataDir  = flag.String("data-dir", "chat_history", "Directory for per-user history files")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	if !brain.ValidPersona(*persona) {
		log.Fatalf("unknown persona %q (known: %s)", *persona, strings.Join(brain.Personas(), ", "))
	}
	lang, err := lexicon.Parse(*language)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nGoodbye.")
		cancel()
		os.Exit(0)
	}()

	st, err := store.NewFileStore(*dataDir)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}
	defer st.Close()

	var provider brain.Provider
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		provider, err = brain.NewGeminiProvider(ctx, key)
		if err != nil {
			log.Fatalf("gemini provider init failed: %v", err)
		}
	} else {
		provider = brain.NewMockProvider()
		fmt.Println("No GEMINI_API_KEY set, using the offline mock brain.")
	}

	eng := engine.New(st, provider, nil, resources.NewGate(0), nil)

	sessions := session.NewManager(0)
	sess := sessions.Create(*userID, *persona, voice.DefaultVoice, lang)

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	ui := lang.UI()
	fmt.Println(boldGreen("Helio"))
	fmt.Println(dim(ui.Disclaimer))
	fmt.Printf("Persona: %s, language: %s\n", boldCyan(sess.Persona), boldCyan(lang.String()))
	fmt.Println(ui.Welcome)
	fmt.Println("Type a message, or /persona NAME, /lang NAME, /score, /history, /export FILE, exit.")
	fmt.Println()

	if update := eng.Bootstrap(ctx, sess); update.Scored {
		printScore(update.Score, update.Label, update.Percent, update.Color)
		if update.ShowResources {
			printResources(update.Contacts)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			break
		}
		if strings.HasPrefix(input, "/") {
			sess = runCommand(ctx, eng, sessions, sess, input)
			continue
		}

		res, err := eng.ProcessTurn(ctx, sess, uuid.NewString(), input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		fmt.Printf("%s %s\n", boldCyan(sess.Persona+":"), res.Reply)
		if res.Scored {
			printScore(res.Score, res.Label, res.Percent, res.Color)
		}
		if res.ShowResources {
			printResources(res.Contacts)
		}
		fmt.Println()
	}
}

func runCommand(ctx context.Context, eng *engine.Engine, sessions *session.Manager, sess *session.Session, input string) *session.Session {
	cmd, arg, _ := strings.Cut(strings.TrimPrefix(input, "/"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "persona":
		if !brain.ValidPersona(arg) {
			fmt.Printf("Unknown persona %q. Known: %s\n", arg, strings.Join(brain.Personas(), ", "))
			return sess
		}
		if err := sessions.SetPersona(sess.ID, arg); err == nil {
			fmt.Printf("Persona set to %s.\n", arg)
		}
	case "lang":
		lang, err := lexicon.Parse(arg)
		if err != nil {
			fmt.Printf("%v\n", err)
			return sess
		}
		if err := sessions.SetLanguage(sess.ID, lang); err == nil {
			fmt.Printf("Language set to %s.\n", lang)
		}
	case "score":
		scores := eng.Scores(ctx, sess.UserID, 10)
		if len(scores) == 0 {
			fmt.Println("No scores recorded yet.")
			return sess
		}
		for _, s := range scores {
			fmt.Printf("%s  %.2f\n", s.Timestamp, s.Score)
		}
	case "history":
		for _, m := range eng.History(ctx, sess.UserID) {
			who := "AI"
			if m.IsUser {
				who = "You"
			}
			fmt.Printf("[%s] %s: %s\n", m.Timestamp, who, m.Text)
		}
	case "export":
		if arg == "" {
			fmt.Println("Usage: /export FILE")
			return sess
		}
		f, err := os.Create(arg)
		if err != nil {
			fmt.Printf("Export failed: %v\n", err)
			return sess
		}
		defer f.Close()
		if err := eng.Export(ctx, sess.UserID, f); err != nil {
			fmt.Printf("Export failed: %v\n", err)
			return sess
		}
		fmt.Printf("Exported to %s.\n", arg)
	default:
		fmt.Printf("Unknown command /%s\n", cmd)
	}

	refreshed, err := sessions.Get(sess.ID)
	if err != nil {
		return sess
	}
	return refreshed
}

func printScore(score float64, label string, percent float64, hex string) {
	meter := color.New(color.FgBlue)
	switch hex {
	case "#f39c12":
		meter = color.New(color.FgYellow)
	case "#e74c3c":
		meter = color.New(color.FgRed)
	}
	filled := int(percent / 10)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	meter.Printf("Mood meter: %s %.1f (%s)\n", bar, score, label)
}

func printResources(contacts []resources.Contact) {
	alert := color.New(color.FgRed, color.Bold)
	alert.Println("Mental Health Resources")
	fmt.Println("It seems you might be going through a difficult time.")
	for _, c := range contacts {
		fmt.Printf("  %s: %s\n", c.Name, c.Contact)
	}
}
