package congress

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestCleanHTML(t *testing.T) {
	input := "<p>This bill  establishes <b>a program</b>.</p>\n\n<p>It   also funds it.</p>"

	got := cleanHTML(input)

	assert.Equal(t, "This bill establishes a program. It also funds it.", got)
}

func TestCleanHTML_Empty(t *testing.T) {
	assert.Equal(t, "", cleanHTML(""))
	assert.Equal(t, "", cleanHTML("  \n "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("a", 30)
	got := truncate(long, 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.Equal(t, true, strings.HasSuffix(got, "…"))
}

func TestCommitteeURL(t *testing.T) {
	committee := map[string]any{
		"systemCode": "HSBU00",
		"name":       "Budget Committee",
	}

	url := committeeURL(committee)

	assert.Equal(t, "https://www.congress.gov/committee/house-budget-committee/hsbu00", url)
}

func TestCommitteeURL_SenateChamber(t *testing.T) {
	committee := map[string]any{
		"systemCode": "SSFI00",
		"name":       "Senate Finance Committee",
	}

	url := committeeURL(committee)

	assert.Equal(t, "https://www.congress.gov/committee/senate-senate-finance-committee/ssfi00", url)
}

func TestCommitteeURL_MissingFields(t *testing.T) {
	assert.Equal(t, "", committeeURL(map[string]any{"name": "Budget Committee"}))
	assert.Equal(t, "", committeeURL(map[string]any{"systemCode": "HSBU00"}))
}

func TestMemberURL(t *testing.T) {
	member := map[string]any{
		"bioguideId": "A000375",
		"fullName":   "Rep. Arrington, Jodey C. [R-TX-19]",
	}

	url := memberURL(member)

	assert.Equal(t, "https://www.congress.gov/member/rep-arrington-jodey-c/A000375", url)
}

func TestMemberURL_MissingFields(t *testing.T) {
	assert.Equal(t, "", memberURL(map[string]any{"fullName": "Rep. Example"}))
	assert.Equal(t, "", memberURL(map[string]any{"bioguideId": "A000000"}))
}

func TestIsVoteAction(t *testing.T) {
	assert.Equal(t, true, isVoteAction("On passage Passed by the Yeas and Nays: 218 - 214"))
	assert.Equal(t, true, isVoteAction("Roll Call 145"))
	assert.Equal(t, false, isVoteAction("Referred to the Committee on the Budget"))
}

func TestListAt(t *testing.T) {
	doc := map[string]any{
		"cosponsors": map[string]any{
			"cosponsors": []any{
				map[string]any{"fullName": "Rep. A"},
				"not-an-object",
				map[string]any{"fullName": "Rep. B"},
			},
		},
	}

	nested := listAt(doc, "cosponsors", "cosponsors")
	assert.Equal(t, 2, len(nested))
	assert.Equal(t, "Rep. A", str(nested[0], "fullName"))

	assert.Equal(t, 0, len(listAt(doc, "missing")))
	assert.Equal(t, 0, len(listAt(doc, "cosponsors", "missing")))
}
