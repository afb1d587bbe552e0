package keyboard

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard creates the initial start button
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚀 Build a prompt", EncodeCallback(ActionControl, ControlStart)),
		),
	)
}

// CategoryKeyboard creates the idea category selection buttons
func (b *Builder) CategoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛠 Software project", EncodeCallback(ActionCategory, string(entity.CategorySoftwareBuild))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎓 Academic work", EncodeCallback(ActionCategory, string(entity.CategoryAcademic))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✨ Something else", EncodeCallback(ActionCategory, string(entity.CategoryGeneral))),
		),
	)
}

// QuestionKeyboard creates the keyboard for one question: choice buttons
// where the type has them, then the suggest and skip controls. Choices are
// referenced by index to stay inside Telegram's callback data limit.
func (b *Builder) QuestionKeyboard(q *entity.Question) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	switch q.Type {
	case entity.QuestionTypeSingleSelect:
		for i, choice := range q.Choices {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(choice, EncodeCallback(ActionAnswer, strconv.Itoa(i))),
			))
		}
	case entity.QuestionTypeBoolean:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes", EncodeCallback(ActionAnswer, "yes")),
			tgbotapi.NewInlineKeyboardButtonData("❌ No", EncodeCallback(ActionAnswer, "no")),
		))
	}

	controls := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("💡 Suggest an answer", EncodeCallback(ActionControl, ControlSuggest)),
	}
	if !q.Required {
		controls = append(controls,
			tgbotapi.NewInlineKeyboardButtonData("⏭ Skip", EncodeCallback(ActionControl, ControlSkip)))
	}
	rows = append(rows, controls)

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ResultKeyboard creates the download and restart buttons shown with the
// generated prompt.
func (b *Builder) ResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Download .md", EncodeCallback(ActionDownload, string(entity.ExportFormatMarkdown))),
			tgbotapi.NewInlineKeyboardButtonData("📕 Download .pdf", EncodeCallback(ActionDownload, string(entity.ExportFormatPDF))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📘 Download .docx", EncodeCallback(ActionDownload, string(entity.ExportFormatDocx))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Build another prompt", EncodeCallback(ActionControl, ControlRestart)),
		),
	)
}

// CancelConfirmKeyboard creates the /cancel confirmation buttons
func (b *Builder) CancelConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, discard", EncodeCallback(ActionConfirm, "cancel")),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Keep going", EncodeCallback(ActionConfirm, "continue")),
		),
	)
}
