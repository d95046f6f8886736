package formatter

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/mpetrov/lifeline/internal/core/model"
)

// JSONFormatter prints the full derived timeline tree as indented JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(data *model.TimelineData) error {
	out, err := sonic.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
