package output

import (
	"io"
	"os"
	"time"
)

const reportDateTimeLayout = "2006-01-02T15:04:05"

func formatGeneratedAt(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format(reportDateTimeLayout)
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func closeOutput(file *os.File) {
	if file != nil {
		_ = file.Close()
	}
}
