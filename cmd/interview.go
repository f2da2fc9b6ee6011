package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/khrees2412/tradecv/internal/app"
	"github.com/khrees2412/tradecv/internal/channel"
	"github.com/khrees2412/tradecv/internal/interview"
	"github.com/khrees2412/tradecv/internal/render"
	"github.com/khrees2412/tradecv/pkg/models"
	"github.com/spf13/cobra"
)

// terminalSpeechPace is how long the terminal "voice" takes per character.
const terminalSpeechPace = 25 * time.Millisecond

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Start a guided resume interview",
	Long: `Ask the interview questions one at a time and build the resume from the answers.
With --voice the questions are paced like a spoken conversation: the prompt is
"spoken", the microphone opens after a short pause, and answers are processed
before the next question.`,
	Example: `  tradecv interview
  tradecv interview --catalog voice --voice
  tradecv interview --format html,pdf --out ./resumes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		catalogName, _ := cmd.Flags().GetString("catalog")
		voice, _ := cmd.Flags().GetBool("voice")
		noSave, _ := cmd.Flags().GetBool("no-save")
		formats, _ := cmd.Flags().GetStringSlice("format")
		outDir, _ := cmd.Flags().GetString("out")

		if catalogName == "" {
			catalogName = a.Config.Catalog
		}
		catalog, err := interview.LookupCatalog(catalogName)
		if err != nil {
			return err
		}
		if len(formats) == 0 {
			formats = a.Config.Formats
		}
		if outDir == "" {
			outDir = a.Config.OutputDir
		}

		engine := interview.New(catalog)
		session := &models.Session{Catalog: catalog.Name(), Record: engine.Record(), Transcript: engine.Transcript()}
		if !noSave {
			if err := a.Sessions.CreateSession(cmd.Context(), session); err != nil {
				return err
			}
		}

		log := a.Logger.With("session", session.ID, "catalog", catalog.Name())
		log.Info("interview started", "voice", voice)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render("Let's build your resume"))

		if voice {
			err = runVoiceInterview(cmd.Context(), a, engine, cmd.InOrStdin(), out)
		} else {
			err = runTextInterview(cmd.Context(), engine, cmd.InOrStdin(), out)
		}
		if err != nil {
			return err
		}

		state := engine.State()
		session.Record = engine.Record()
		session.Transcript = engine.Transcript()
		session.Progress = state.Progress
		session.Complete = state.Complete
		if state.Complete {
			now := time.Now().UTC()
			session.CompletedAt = &now
		}
		if !noSave {
			// The interview may have been interrupted; archive what we have.
			if err := a.Sessions.UpdateSession(context.WithoutCancel(cmd.Context()), session); err != nil {
				return err
			}
		}
		log.Info("interview finished", "complete", state.Complete, "progress", state.Progress)

		fmt.Fprintln(out)
		printPreview(out, session.Record)

		if !state.Complete {
			fmt.Fprintln(out, mutedStyle.Render("Interview not finished."))
			if !noSave {
				fmt.Fprintf(out, "Session saved as %s\n", valueStyle.Render(session.ID))
			}
			return nil
		}

		docs, err := render.All(cmd.Context(), session.Record, formats, a.RenderOptions())
		if err != nil {
			return err
		}
		if err := saveDocuments(cmd, a, session, docs, outDir); err != nil {
			return err
		}
		if !noSave {
			fmt.Fprintf(out, "Session saved as %s\n", valueStyle.Render(session.ID))
		}
		return nil
	},
}

// runTextInterview reads one answer per line from in. It returns when the
// interview completes, the input ends, or ctx is cancelled.
func runTextInterview(ctx context.Context, engine *interview.Engine, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := channel.NewText(engine)
	lines := readLines(ctx, in)

	prompt, _ := engine.CurrentPrompt()
	fmt.Fprintln(out, promptStyle.Render("AI: ")+prompt)

	for {
		fmt.Fprint(out, labelStyle.Render("> "))

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			return nil
		}

		ch.SetInput(line)
		res, submitted := ch.HandleKey("Enter")
		if !submitted {
			continue
		}

		fmt.Fprintln(out, progressBar(res.State.Progress))
		if res.State.Complete {
			fmt.Fprintln(out, promptStyle.Render("AI: ")+successStyle.Render(engine.Catalog().ClosingMessage()))
			return nil
		}
		fmt.Fprintln(out, promptStyle.Render("AI: ")+res.NextPrompt)
	}
}

// runVoiceInterview drives the voice channel with terminal speech
// adapters until it completes, the input runs out, or ctx is cancelled.
func runVoiceInterview(ctx context.Context, a *app.App, engine *interview.Engine, in io.Reader, out io.Writer) error {
	cfg := a.Config.Voice
	speechOut := channel.NewTerminalOutput(out, terminalSpeechPace, nil)
	speechIn := channel.NewTerminalInput(in, out, channel.RecognitionConfig{Language: cfg.Language})

	wake := make(chan struct{}, 1)
	v := channel.NewVoice(engine, speechIn, speechOut,
		channel.WithDelays(cfg.StartDelay, cfg.ListenDelay, cfg.ProcessingDelay),
		channel.WithVoice(cfg.Rate, cfg.Pitch, cfg.Volume),
		channel.WithLogger(a.Logger),
		channel.OnStateChange(func(channel.VoiceState) {
			select {
			case wake <- struct{}{}:
			default:
			}
		}),
	)
	defer v.Close()

	v.Start()
	lastProgress := -1
	for {
		select {
		case <-ctx.Done():
			v.Close()
			return nil
		case <-v.Done():
			if engine.State().Complete {
				fmt.Fprintln(out, progressBar(100))
			}
			return nil
		case <-wake:
		}

		if p := engine.State().Progress; p != lastProgress && lastProgress >= 0 {
			fmt.Fprintln(out, progressBar(p))
		}
		lastProgress = engine.State().Progress

		switch v.State() {
		case channel.VoiceProcessing:
			fmt.Fprintln(out, mutedStyle.Render("(processing...)"))
		case channel.VoiceIdle:
			if speechIn.Exhausted() {
				v.Close()
				continue
			}
			fmt.Fprintln(out, mutedStyle.Render("(didn't catch that, press Enter to listen again)"))
			if err := speechIn.WaitLine(ctx); err != nil {
				v.Close()
				continue
			}
			if err := v.StartListening(); err != nil && !errors.Is(err, channel.ErrNotIdle) {
				return err
			}
		}
	}
}

// readLines feeds the lines of in to a channel that is closed at EOF or
// once ctx is done.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case lines <- strings.TrimRight(line, "\r\n"):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

func init() {
	rootCmd.AddCommand(interviewCmd)
	interviewCmd.Flags().StringP("catalog", "c", "", "question catalog: chat or voice (default from config)")
	interviewCmd.Flags().Bool("voice", false, "pace the interview like a spoken conversation")
	interviewCmd.Flags().Bool("no-save", false, "do not archive the session")
	interviewCmd.Flags().StringSliceP("format", "f", nil, "formats to render when done (default from config)")
	interviewCmd.Flags().StringP("out", "o", "", "output directory (default from config)")
}
