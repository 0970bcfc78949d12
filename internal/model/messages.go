package model

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Task is one (bill, question) unit of work produced by the controller.
type Task struct {
	BillID       string `json:"bill_id" validate:"required"`
	Congress     int    `json:"congress" validate:"required"`
	BillType     string `json:"bill_type" validate:"required"`
	Number       int    `json:"number" validate:"required"`
	QuestionID   int    `json:"question_id" validate:"required,min=1,max=7"`
	QuestionText string `json:"question_text" validate:"required"`
	TraceID      string `json:"trace_id"`
}

// Fact is a single statement about a bill, optionally backed by a link.
type Fact struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// EnrichedFact carries everything the fetcher collected for one question.
type EnrichedFact struct {
	BillID       string         `json:"bill_id" validate:"required"`
	Congress     int            `json:"congress"`
	BillType     string         `json:"bill_type"`
	Number       int            `json:"number"`
	QuestionID   int            `json:"question_id" validate:"required,min=1,max=7"`
	QuestionText string         `json:"question_text"`
	FetchedAt    string         `json:"fetched_at"`
	Facts        []Fact         `json:"facts"`
	Links        []string       `json:"links"`
	Metadata     map[string]any `json:"metadata"`
	TraceID      string         `json:"trace_id"`
}

// PartialResult is the summarizer's answer to one (bill, question) pair.
type PartialResult struct {
	BillID       string         `json:"bill_id" validate:"required"`
	QuestionID   int            `json:"question_id" validate:"required,min=1,max=7"`
	QuestionText string         `json:"question_text"`
	Summary      string         `json:"summary"`
	Links        []string       `json:"links"`
	Metadata     map[string]any `json:"metadata"`
	TraceID      string         `json:"trace_id"`
}

func DecodeTask(data []byte) (Task, error) {
	var t Task
	if err := json.Unmarshal(data, &t); err != nil {
		return Task{}, fmt.Errorf("task decode: %w", err)
	}
	if err := validate.Struct(t); err != nil {
		return Task{}, fmt.Errorf("task validate: %w", err)
	}
	return t, nil
}

func DecodeEnrichedFact(data []byte) (EnrichedFact, error) {
	var f EnrichedFact
	if err := json.Unmarshal(data, &f); err != nil {
		return EnrichedFact{}, fmt.Errorf("enriched fact decode: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return EnrichedFact{}, fmt.Errorf("enriched fact validate: %w", err)
	}
	return f, nil
}

func DecodePartialResult(data []byte) (PartialResult, error) {
	var r PartialResult
	if err := json.Unmarshal(data, &r); err != nil {
		return PartialResult{}, fmt.Errorf("partial result decode: %w", err)
	}
	if err := validate.Struct(r); err != nil {
		return PartialResult{}, fmt.Errorf("partial result validate: %w", err)
	}
	return r, nil
}
