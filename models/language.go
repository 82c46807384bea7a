package models

// Language identifies the source language of a vocabulary item or video.
type Language string

const (
	Japanese Language = "ja"
	Chinese  Language = "zh"
	Korean   Language = "ko"
	English  Language = "en"
)

// Valid reports whether l is one of the supported language codes.
func (l Language) Valid() bool {
	switch l {
	case Japanese, Chinese, Korean, English:
		return true
	}
	return false
}

// Level is the learning stage assigned to a vocabulary item.
type Level string

const (
	LevelNew      Level = "new"
	LevelLearning Level = "learning"
	LevelKnown    Level = "known"
	LevelIgnored  Level = "ignored"
)

// Valid reports whether lv is one of the supported learning levels.
func (lv Level) Valid() bool {
	switch lv {
	case LevelNew, LevelLearning, LevelKnown, LevelIgnored:
		return true
	}
	return false
}
