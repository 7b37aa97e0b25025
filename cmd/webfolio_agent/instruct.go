package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jkoster/webfolio/internal/config"
	"github.com/jkoster/webfolio/internal/observability"
	"github.com/jkoster/webfolio/internal/publish"
	"github.com/jkoster/webfolio/internal/session"
	"github.com/jkoster/webfolio/internal/store"
)

var instructCmd = &cobra.Command{
	Use:   "instruct [instruction]",
	Short: "Apply a natural-language instruction to a site",
	Long:  "Instruct routes a natural-language request to the right site component. With no instruction argument it starts an interactive session reading instructions from stdin.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInstruct,
}

var (
	instructResume   string
	instructSession  string
	instructOutput   string
	instructProvider string
	instructConfig   string
	instructDBURL    string
	instructVerbose  bool
)

func init() {
	instructCmd.Flags().StringVarP(&instructResume, "resume", "r", "", "Path to resume text file (starts a new session)")
	instructCmd.Flags().StringVarP(&instructSession, "session", "s", "", "Session ID to resume (requires a database)")
	instructCmd.Flags().StringVarP(&instructOutput, "out", "o", "./site", "Directory to write updated files to")
	instructCmd.Flags().StringVar(&instructProvider, "provider", "", "Model provider: gemini, openai, or anthropic (default gemini)")
	instructCmd.Flags().StringVarP(&instructConfig, "config", "c", "", "Path to JSON config file")
	instructCmd.Flags().StringVar(&instructDBURL, "db-url", "", "PostgreSQL URL for session persistence (overrides DATABASE_URL)")
	instructCmd.Flags().BoolVarP(&instructVerbose, "verbose", "v", false, "Print facts and files after each instruction")

	rootCmd.AddCommand(instructCmd)
}

func runInstruct(_ *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{
		Resume:      instructResume,
		Output:      instructOutput,
		Provider:    instructProvider,
		DatabaseURL: databaseURL(instructDBURL),
		Verbose:     instructVerbose,
	}, instructConfig)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	a, db, err := newAgent(ctx, client, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	state, err := openSession(ctx, db, instructSession)
	if err != nil {
		return err
	}
	if instructSession == "" {
		if err := ingestResumeFile(ctx, a, state, cfg.Resume); err != nil {
			return err
		}
	}

	printer := observability.NewPrinter(os.Stdout)
	apply := func(instruction string) error {
		result, err := a.HandleInstruction(ctx, state, instruction)
		if err != nil {
			return err
		}
		fmt.Println(result)
		if cfg.Verbose {
			printer.PrintFacts(state.Facts.Facts)
			printer.PrintFiles(state)
		}
		return nil
	}

	if len(args) == 1 {
		if err := apply(args[0]); err != nil {
			return err
		}
	} else if err := interactiveLoop(apply, state.ID); err != nil {
		return err
	}

	if files := state.FileMap(); len(files) > 0 {
		dest := &publish.DirPublisher{Root: cfg.Output}
		if err := dest.Publish(ctx, files, "apply instruction"); err != nil {
			return err
		}
		fmt.Printf("Site written to %s (session %s)\n", cfg.Output, state.ID)
	}
	return saveIfPersistent(ctx, db, state)
}

// openSession resumes a stored session or starts a fresh one.
func openSession(ctx context.Context, db *store.Store, sessionID string) (*session.State, error) {
	if sessionID == "" {
		return session.New(), nil
	}
	if db == nil {
		return nil, fmt.Errorf("--session requires a database (--db-url or DATABASE_URL)")
	}
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID %q: %w", sessionID, err)
	}
	return db.LoadSession(ctx, id)
}

// interactiveLoop reads instructions from stdin until EOF or an exit
// command, applying each one in turn.
func interactiveLoop(apply func(string) error, sessionID uuid.UUID) error {
	fmt.Printf("Session %s. Enter instructions, or \"exit\" to finish.\n", sessionID)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		}
		if err := apply(line); err != nil {
			// keep the session alive across a failed instruction
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}
