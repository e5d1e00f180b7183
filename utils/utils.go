package utils

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
)

func NewBar(size int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(size,
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// Redirects the default logger to a run-specific file so the whole log can be
// attached to the summary email afterwards. Returns the log file name.
func SetLogFile(name, procedure string) string {
	filename := fmt.Sprintf("%s_%s_log.txt", name, procedure)
	fh, err := os.Create(filename)
	if err != nil {
		slog.Error(fmt.Sprintf("Could not create log '%s': %s", filename, err))
		return ""
	}
	log.SetOutput(fh)
	return filename
}
