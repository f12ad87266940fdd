package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/agrismart/internal/cli/formatter"
	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/i18n"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	var personaFlag, imagePath string

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with an assistant",
		Long: `Chat with one of the assistants (agriculture, pest, buyer, weather).

With a message or --image, one turn is sent and the reply printed.
Otherwise an interactive chat starts. Type /quit to leave, /image <path>
to attach a photo, /persona and /lang to switch, /new to start over.`,
		Example: `  agrismart chat --persona pest --image leaf.jpg "what is wrong with this leaf?"
  agrismart chat --persona weather --lang hi`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang, err := languageFlag(cmd.Flags())
			if err != nil {
				return err
			}
			profile, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("persona") && app.interactive() && len(args) == 0 && imagePath == "" {
				if err := personaForm(lang, &personaFlag).Run(); err != nil {
					return err
				}
			}
			persona, err := domain.ParsePersona(personaFlag)
			if err != nil {
				return err
			}

			sess := &chatSession{app: app, profile: *profile, persona: persona, lang: lang}
			out := cmd.OutOrStdout()

			message := strings.TrimSpace(strings.Join(args, " "))
			if message != "" || imagePath != "" {
				turn := domain.Turn{Text: message}
				if imagePath != "" {
					if turn.Image, err = loadImage(imagePath); err != nil {
						return err
					}
				}
				stop := func() {}
				if app.interactive() {
					stop = formatter.StartSpinner(cmd.ErrOrStderr(), i18n.T(lang, i18n.Thinking))
				}
				rendered, err := sess.send(ctx, turn)
				stop()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, rendered)
				return nil
			}

			if app.interactive() {
				return runChatView(ctx, sess)
			}
			return runChatREPL(cmd, sess, cmd.InOrStdin(), out)
		},
	}

	cmd.Flags().StringVarP(&personaFlag, "persona", "p", string(domain.PersonaAgriculture), "assistant: agriculture, pest, buyer or weather")
	cmd.Flags().StringVar(&imagePath, "image", "", "attach an image file to the message")
	return cmd
}

// personaForm asks which assistant to talk to.
func personaForm(lang domain.Language, value *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(domain.Personas))
	for _, p := range domain.Personas {
		label := formatter.PersonaIcon(p) + "  " + i18n.AssistantTitle(lang, p)
		options = append(options, huh.NewOption(label, string(p)))
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(i18n.T(lang, i18n.ChooseAssistant)).
			Options(options...).
			Value(value),
	)).WithTheme(agriHuhTheme()).WithShowHelp(false)
}

// runChatREPL reads one line per turn from in. Failures are shown and the
// loop continues. Leaving the chat ends the session.
func runChatREPL(cmd *cobra.Command, sess *chatSession, in io.Reader, out io.Writer) error {
	defer sess.app.Chat.End(sess.profile.Mobile)

	fmt.Fprintln(out, formatter.FormatChatHeader(sess.persona, sess.lang))

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Fprint(out, formatter.PersonaStyle(sess.persona).Render(string(sess.persona))+formatter.Dim("> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		action := sess.interpret(scanner.Text())
		switch {
		case action.quit:
			fmt.Fprintln(out, formatter.Dim(i18n.T(sess.lang, i18n.EndChat)))
			return nil
		case action.turn != nil:
			if action.imageName != "" {
				fmt.Fprintln(out, formatter.FormatNotice("sending "+action.imageName))
			}
			rendered, _ := sess.send(cmd.Context(), *action.turn)
			fmt.Fprintln(out, rendered)
		case action.output != "":
			fmt.Fprintln(out, action.output)
		}
	}
}

func newPromptCmd(app *App) *cobra.Command {
	var personaFlag string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the instruction an assistant starts with",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := languageFlag(cmd.Flags())
			if err != nil {
				return err
			}
			persona, err := domain.ParsePersona(personaFlag)
			if err != nil {
				return err
			}
			profile, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			instruction, err := app.Composer.Compose(persona, *profile, lang)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), instruction)
			return nil
		},
	}
	cmd.Flags().StringVarP(&personaFlag, "persona", "p", string(domain.PersonaAgriculture), "assistant: agriculture, pest, buyer or weather")
	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	var (
		personaFlag string
		limit       int
		clearAll    bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear your chat transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			profile, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if clearAll {
				n, err := app.Chat.ClearHistory(ctx, profile.Mobile)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Deleted %d messages.", n)))
				return nil
			}

			persona, err := domain.ParsePersona(personaFlag)
			if err != nil {
				return err
			}
			msgs, err := app.Chat.History(ctx, profile.Mobile, persona, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatHistory(persona, msgs, app.now()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&personaFlag, "persona", "p", string(domain.PersonaAgriculture), "assistant transcript to show")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "most recent messages to show")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete your whole transcript")
	return cmd
}
