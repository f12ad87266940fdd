package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/agrismart/internal/cli/formatter"
	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/service"
	"github.com/gabriel-vasile/mimetype"
)

// maxImageBytes bounds images read from disk.
const maxImageBytes = 10 << 20

// chatSession is the state of one interactive chat, shared by the line REPL
// and the terminal view.
type chatSession struct {
	app     *App
	profile domain.UserProfile
	persona domain.Persona
	lang    domain.Language
}

// chatAction is what one input line asks for. Exactly one of output, turn or
// quit is meaningful.
type chatAction struct {
	output    string
	turn      *domain.Turn
	imageName string
	quit      bool
}

// interpret turns an input line into an action. Slash commands are handled
// here; anything else becomes a text turn.
func (s *chatSession) interpret(line string) chatAction {
	line = strings.TrimSpace(line)
	if line == "" {
		return chatAction{}
	}
	if !strings.HasPrefix(line, "/") {
		return chatAction{turn: &domain.Turn{Text: line}}
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "/quit", "/exit":
		return chatAction{quit: true}

	case "/new":
		s.app.Chat.End(s.profile.Mobile)
		return chatAction{output: formatter.FormatNotice("Started a new conversation.")}

	case "/persona":
		p, err := domain.ParsePersona(rest)
		if err != nil {
			return chatAction{output: formatter.FormatFailure(err)}
		}
		if p != s.persona {
			s.app.Chat.End(s.profile.Mobile)
			s.persona = p
		}
		return chatAction{output: formatter.FormatChatHeader(s.persona, s.lang)}

	case "/lang":
		l, err := domain.ParseLanguage(rest)
		if err != nil {
			return chatAction{output: formatter.FormatFailure(err)}
		}
		if l != s.lang {
			s.app.Chat.End(s.profile.Mobile)
			s.lang = l
		}
		return chatAction{output: formatter.FormatChatHeader(s.persona, s.lang)}

	case "/image":
		path, text, _ := strings.Cut(rest, " ")
		if path == "" {
			return chatAction{output: formatter.FormatFailure(fmt.Errorf("usage: /image <path> [message]"))}
		}
		img, err := loadImage(path)
		if err != nil {
			return chatAction{output: formatter.FormatFailure(err)}
		}
		return chatAction{
			turn:      &domain.Turn{Text: strings.TrimSpace(text), Image: img},
			imageName: filepath.Base(path),
		}

	case "/help":
		return chatAction{output: formatter.FormatChatHeader(s.persona, s.lang)}

	default:
		return chatAction{output: formatter.FormatFailure(fmt.Errorf("unknown command %s", name))}
	}
}

// send dispatches turn and renders the reply or the user-visible failure.
func (s *chatSession) send(ctx context.Context, turn domain.Turn) (string, error) {
	reply, err := s.app.Chat.Send(ctx, service.SendRequest{
		Profile:  s.profile,
		Persona:  s.persona,
		Language: s.lang,
		Turn:     turn,
	})
	if err != nil {
		return formatter.FormatFailure(err), err
	}
	return formatter.FormatReply(s.persona, reply), nil
}

// loadImage reads an image file and sniffs its MIME type.
func loadImage(path string) (*domain.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if info.Size() > maxImageBytes {
		return nil, fmt.Errorf("image %s is larger than %d MB", filepath.Base(path), maxImageBytes>>20)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image %s is empty", filepath.Base(path))
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%s is not an image (%s)", filepath.Base(path), mt.String())
	}
	return &domain.Image{Data: data, MIMEType: mt.String()}, nil
}
