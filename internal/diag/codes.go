package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Reflow core
	RflInfo         Code = 1000
	RflOverlongWord Code = 1001
	RflNoEffect     Code = 1002
	RflEmptyInput   Code = 1003

	// I/O
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002
	IOWriteError    Code = 4003
	IOInvalidPath   Code = 4004

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:     "Unknown error",
		RflInfo:         "Reflow information",
		RflOverlongWord: "Word is wider than the target width",
		RflNoEffect:     "Reflow may have no effect",
		RflEmptyInput:   "Input has no lines",
		IOLoadFileError: "I/O load file error",
		IODecodeError:   "Cannot decode input",
		IOWriteError:    "I/O write file error",
		IOInvalidPath:   "Invalid input path",
		ObsInfo:         "Observability information",
		ObsTimings:      "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("RFL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
