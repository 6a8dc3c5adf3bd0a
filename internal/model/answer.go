package model

type SourceType string

const (
	SourceSavedReply SourceType = "saved_reply"
	SourceDocument   SourceType = "document"
	SourceNumerical  SourceType = "numerical"
)

// Answer is one ranked candidate produced by the responder for a question.
// Immutable once received. Offsets are absolute document positions; the
// context carries its own start offset so spans can be sliced locally.
type Answer struct {
	AnswerText         string     `json:"answerText"`
	SourceType         SourceType `json:"sourceType"`
	SourceID           string     `json:"sourceId"`
	MatchedQuestion    string     `json:"matchedQuestion"`
	AnswerContext      string     `json:"answerContext,omitempty"`
	Confidence         float64    `json:"confidence"`
	TextStartOffset    int        `json:"answerTextStartOffset,omitempty"`
	TextEndOffset      int        `json:"answerTextEndOffset,omitempty"`
	ContextStartOffset int        `json:"answerContextStartOffset,omitempty"`
}
