package formatter

import (
	"fmt"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// DefaultTitle heads exported documents when the client supplies none.
const DefaultTitle = "Generated Prompt"

type Formatter interface {
	Format(title, text string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.ExportFormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.ExportFormatDocx:
		return NewDOCXFormatter(), nil
	case entity.ExportFormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}
