package bot

import (
	"strconv"
	"strings"

	"prisonjack/internal/game"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	CallbackCardPrefix = "card:"
	CallbackEndTurn    = "end_turn"
	CallbackReset      = "reset"
	CallbackStats      = "stats"
)

// Telegram accepts at most 100 inline buttons per message; two are
// reserved for the control row.
const maxBoardCards = 98

const revealedMark = "✖ "

func CardData(index int) string {
	return CallbackCardPrefix + strconv.Itoa(index)
}

// ParseCardData extracts the deck index from a card button's data.
func ParseCardData(data string) (int, bool) {
	rest, ok := strings.CutPrefix(data, CallbackCardPrefix)
	if !ok {
		return 0, false
	}
	index, err := strconv.Atoi(rest)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

func cardLabel(c game.Card) string {
	if c.Revealed {
		return revealedMark + c.Name
	}
	return c.Name
}

// BoardKeyboard lays the deck out in rows of columns buttons, followed by
// the control row. Revealed cards keep their button so the grid does not
// shift.
func BoardKeyboard(s game.State, columns int) tgbotapi.InlineKeyboardMarkup {
	if columns < 1 {
		columns = 1
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, c := range s.Cards {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(cardLabel(c), CardData(i)))
		if len(row) == columns {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, controlRow(s))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func controlRow(s game.State) []tgbotapi.InlineKeyboardButton {
	if s.Phase == game.PhaseFinished {
		return tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Reset", CallbackReset),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Record", CallbackStats),
		)
	}
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("👉 Next player", CallbackEndTurn),
		tgbotapi.NewInlineKeyboardButtonData("🔄 Reset", CallbackReset),
	)
}
