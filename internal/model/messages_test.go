package model

import (
	"fmt"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestDecodeTask(t *testing.T) {
	data := []byte(`{
		"bill_id": "HR.1",
		"congress": 119,
		"bill_type": "hr",
		"number": 1,
		"question_id": 3,
		"question_text": "Who is the sponsor?",
		"trace_id": "abc-123"
	}`)

	task, err := DecodeTask(data)

	assert.Equal(t, nil, err)
	assert.Equal(t, "HR.1", task.BillID)
	assert.Equal(t, 119, task.Congress)
	assert.Equal(t, 3, task.QuestionID)
	assert.Equal(t, "abc-123", task.TraceID)
}

func TestDecodeTask_InvalidJSON(t *testing.T) {
	_, err := DecodeTask([]byte("{broken"))
	assert.NotEqual(t, nil, err)
}

func TestDecodeTask_MissingBillID(t *testing.T) {
	data := []byte(`{"congress": 119, "bill_type": "hr", "number": 1, "question_id": 1, "question_text": "q"}`)
	_, err := DecodeTask(data)
	assert.NotEqual(t, nil, err)
}

func TestDecodeTask_QuestionIDOutOfRange(t *testing.T) {
	for _, qid := range []int{0, 8, -1} {
		data := fmt.Sprintf(
			`{"bill_id": "HR.1", "congress": 119, "bill_type": "hr", "number": 1, "question_id": %d, "question_text": "q"}`,
			qid)

		_, err := DecodeTask([]byte(data))
		assert.NotEqual(t, nil, err)
	}
}

func TestDecodePartialResult(t *testing.T) {
	data := []byte(`{
		"bill_id": "S.24",
		"question_id": 7,
		"question_text": "Have any votes happened?",
		"summary": "One roll call vote passed 218-214.",
		"links": ["https://www.congress.gov/bill/119th-congress/senate-bill/24"],
		"metadata": {"bill_title": "Example Act"},
		"trace_id": "t-1"
	}`)

	res, err := DecodePartialResult(data)

	assert.Equal(t, nil, err)
	assert.Equal(t, "S.24", res.BillID)
	assert.Equal(t, 7, res.QuestionID)
	assert.Equal(t, "One roll call vote passed 218-214.", res.Summary)
	assert.Equal(t, "Example Act", res.Metadata["bill_title"])
}

func TestDecodePartialResult_NonIntegerQuestionID(t *testing.T) {
	data := []byte(`{"bill_id": "S.24", "question_id": "seven", "summary": "x"}`)
	_, err := DecodePartialResult(data)
	assert.NotEqual(t, nil, err)
}

func TestDecodeEnrichedFact(t *testing.T) {
	data := []byte(`{
		"bill_id": "HR.1",
		"question_id": 2,
		"question_text": "What committees is this bill in?",
		"facts": [{"text": "Committee: House Budget", "link": ""}],
		"links": [],
		"metadata": {"bill_committee_ids": ["HSBU00"]},
		"trace_id": "t-2"
	}`)

	fact, err := DecodeEnrichedFact(data)

	assert.Equal(t, nil, err)
	assert.Equal(t, "HR.1", fact.BillID)
	assert.Equal(t, 1, len(fact.Facts))
	assert.Equal(t, "Committee: House Budget", fact.Facts[0].Text)
}

func TestDecodeEnrichedFact_MissingBillID(t *testing.T) {
	_, err := DecodeEnrichedFact([]byte(`{"question_id": 2}`))
	assert.NotEqual(t, nil, err)
}
