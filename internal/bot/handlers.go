package bot

import (
	"errors"
	"fmt"
	"strings"

	"prisonjack/internal/catalog"
	"prisonjack/internal/config"
	"prisonjack/internal/game"
	"prisonjack/internal/history"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender is the part of *tgbotapi.BotAPI the handlers use.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot     Sender
	cfg     *config.Config
	matches history.Repository
	games   *game.Manager
	log     *logrus.Logger
}

func NewHandler(bot Sender, cfg *config.Config, repo history.Repository, log *logrus.Logger) *Handler {
	return &Handler{
		bot:     bot,
		cfg:     cfg,
		matches: repo,
		games:   game.NewManager(),
		log:     log,
	}
}

var errUnknownCallback = errors.New("unknown callback")

// ============== HELPERS ==============

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.WithField("chat_id", chatID).Errorf("Failed to send message: %v", err)
	}
}

// sendWithKeyboard returns the sent message's ID, or 0 if sending failed.
func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	sent, err := h.bot.Send(msg)
	if err != nil {
		h.log.WithField("chat_id", chatID).Errorf("Failed to send message: %v", err)
		return 0
	}
	return sent.MessageID
}

func (h *Handler) editBoard(chatID int64, messageID int, s game.State) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, formatBoard(s), BoardKeyboard(s, h.cfg.CardColumns))
	if _, err := h.bot.Request(edit); err != nil {
		h.log.WithField("chat_id", chatID).Errorf("Failed to edit board: %v", err)
	}
}

func (h *Handler) closeBoard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, "🔒 This table is closed. Use /play for a new one.")
	if _, err := h.bot.Request(edit); err != nil {
		h.log.WithField("chat_id", chatID).Errorf("Failed to close board: %v", err)
	}
}

// closeTable drops the chat's table and disarms its board.
func (h *Handler) closeTable(chatID int64) {
	board := h.games.Board(chatID)
	h.games.Delete(chatID)
	if board != 0 {
		h.closeBoard(chatID, board)
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.log.Debugf("Failed to answer callback: %v", err)
	}
}

func (h *Handler) answerAlert(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallbackWithAlert(id, text)); err != nil {
		h.log.Debugf("Failed to answer callback: %v", err)
	}
}

// ============== COMMANDS ==============

func (h *Handler) HandleStart(chatID int64) {
	h.send(chatID,
		"⚖️ Welcome to Prison Blackjack!\n\n"+
			"Two players take turns revealing crimes. Every crime adds to your sentence.\n\n"+
			"/play — deal a new table\n"+
			"/stats — this table's record\n"+
			"/help — rules")
}

func (h *Handler) HandleHelp(chatID int64) {
	h.send(chatID, fmt.Sprintf(
		"📖 Prison Blackjack rules:\n\n"+
			"🎯 Goal: get as close to %s as you can without going over\n\n"+
			"🎮 On your turn:\n"+
			"• Tap a crime to reveal it and add its sentence\n"+
			"• Reveal as many as you like\n"+
			"• Tap \"Next player\" to stand\n\n"+
			"💥 Over %s is a bust and ends the game at once\n"+
			"🏁 When both players are done, the longer sentence wins",
		formatYears(game.TargetScore), formatYears(game.TargetScore)))
}

// HandlePlay deals a fresh table for the chat. When messageID is set, the
// existing board message is reused; otherwise a new board is sent and the
// previous one is closed. A failed redeal from a board closes its table.
func (h *Handler) HandlePlay(chatID int64, messageID int) {
	logger := h.log.WithField("chat_id", chatID)

	entries, err := catalog.Load(h.cfg.CatalogPath)
	if err != nil {
		logger.Errorf("Failed to load catalog: %v", err)
		if messageID != 0 {
			h.closeTable(chatID)
		}
		switch {
		case errors.Is(err, catalog.ErrUnavailable):
			h.send(chatID, "❌ The crime catalog could not be found. The game cannot start.")
		case errors.Is(err, catalog.ErrMalformed):
			h.send(chatID, "❌ The crime catalog is malformed. The game cannot start.")
		default:
			h.send(chatID, "❌ Error. Try again later.")
		}
		return
	}
	if len(entries) > maxBoardCards {
		logger.Errorf("Catalog has %d cards, the board holds %d", len(entries), maxBoardCards)
		if messageID != 0 {
			h.closeTable(chatID)
		}
		h.send(chatID, fmt.Sprintf("❌ The crime catalog is too large for one board (max %d).", maxBoardCards))
		return
	}

	g, _, err := game.NewGame(entries, nil)
	if err != nil {
		logger.Errorf("Failed to start game: %v", err)
		if messageID != 0 {
			h.closeTable(chatID)
		}
		h.send(chatID, "❌ The crime catalog is empty. The game cannot start.")
		return
	}

	s := g.State()
	board := messageID
	if board != 0 {
		h.editBoard(chatID, board, s)
	} else if board = h.sendWithKeyboard(chatID, formatBoard(s), BoardKeyboard(s, h.cfg.CardColumns)); board == 0 {
		return
	}

	if prev := h.games.Set(chatID, g, board); prev != 0 && prev != board {
		h.closeBoard(chatID, prev)
	}
	logger.WithFields(logrus.Fields{"cards": len(s.Cards), "board": board}).Info("Game started")
}

func (h *Handler) HandleStats(chatID int64) {
	summary, err := h.matches.Summary(chatID)
	if err != nil {
		h.log.WithField("chat_id", chatID).Errorf("Failed to load summary: %v", err)
		h.send(chatID, "❌ Error")
		return
	}

	recent, err := h.matches.Recent(chatID, h.cfg.RecentLimit)
	if err != nil {
		h.log.WithField("chat_id", chatID).Errorf("Failed to load recent matches: %v", err)
		h.send(chatID, "❌ Error")
		return
	}

	h.send(chatID, formatStats(summary, recent))
}

// ============== CALLBACKS ==============

func (h *Handler) HandleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		h.answerCallback(callback.ID, "")
		return
	}
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	data := callback.Data

	switch data {
	case CallbackReset:
		h.answerCallback(callback.ID, "")
		if board := h.games.Board(chatID); board != 0 && board != messageID {
			h.log.WithField("chat_id", chatID).Debug("Ignored reset from a closed board")
			return
		}
		h.HandlePlay(chatID, messageID)
		return

	case CallbackStats:
		h.answerCallback(callback.ID, "")
		h.HandleStats(chatID)
		return
	}

	var (
		evs   []game.Event
		state game.State
	)
	err := h.games.Do(chatID, messageID, func(g *game.Game) error {
		var err error
		if data == CallbackEndTurn {
			evs, err = g.EndTurn()
		} else if index, ok := ParseCardData(data); ok {
			evs, err = g.RevealCard(index)
		} else {
			err = errUnknownCallback
		}
		if err != nil {
			return err
		}
		state = g.State()
		return nil
	})

	logger := h.log.WithFields(logrus.Fields{"chat_id": chatID, "action": data})
	switch {
	case errors.Is(err, game.ErrNoGame):
		h.answerCallback(callback.ID, "No game at this table. Use /play")
		return
	case errors.Is(err, game.ErrInvalidAction):
		logger.Debugf("Ignored action: %v", err)
		h.answerCallback(callback.ID, "")
		return
	case err != nil:
		logger.Warnf("Rejected callback: %v", err)
		h.answerCallback(callback.ID, "")
		return
	}

	h.render(chatID, messageID, callback.ID, evs, state)
}

// render answers the callback, redraws the board, then announces busts and
// the result in separate messages.
func (h *Handler) render(chatID int64, messageID int, callbackID string, evs []game.Event, s game.State) {
	logger := h.log.WithField("chat_id", chatID)

	alert := ""
	var notices []string
	for _, ev := range evs {
		switch p := ev.Payload.(type) {
		case game.CardRevealedPayload:
			alert = formatReveal(p)
			logger.WithFields(logrus.Fields{
				"player": p.Player, "card": p.Entry.Name, "score": p.Score,
			}).Debug("Card revealed")
		case game.PlayerBustedPayload:
			notices = append(notices, formatBust(p))
		case game.TurnEndedPayload:
			logger.WithFields(logrus.Fields{"player": p.Player, "next": p.Next}).Debug("Turn ended")
		case game.Result:
			h.recordMatch(chatID, p, s)
			notices = append(notices, formatResult(p))
			logger.WithFields(logrus.Fields{
				"winner": p.Winner, "p1": p.Scores[0], "p2": p.Scores[1], "both_busted": p.BothBusted,
			}).Info("Game finished")
		}
	}

	if alert != "" {
		h.answerAlert(callbackID, alert)
	} else {
		h.answerCallback(callbackID, "")
	}

	h.editBoard(chatID, messageID, s)
	for _, text := range notices {
		h.send(chatID, text)
	}
}

func (h *Handler) recordMatch(chatID int64, r game.Result, s game.State) {
	if err := h.matches.Record(history.FromResult(chatID, r, s)); err != nil {
		h.log.WithField("chat_id", chatID).Errorf("Failed to record match: %v", err)
	}
}

// ============== MESSAGES ==============

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID
	parts := strings.Fields(msg.Text)

	if len(parts) == 0 {
		return
	}

	// Group chats address commands as /play@botname.
	cmd, _, _ := strings.Cut(strings.ToLower(parts[0]), "@")

	switch cmd {
	case "/start":
		h.HandleStart(chatID)
	case "/help":
		h.HandleHelp(chatID)
	case "/play", "/new":
		h.HandlePlay(chatID, 0)
	case "/stats":
		h.HandleStats(chatID)
	}
}
