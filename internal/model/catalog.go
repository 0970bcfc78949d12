package model

import (
	"fmt"
	"strings"
)

// Bill identifies one bill by its congress.gov coordinates.
type Bill struct {
	Congress int
	BillType string
	Number   int
}

// ID renders the stable bill key, e.g. "HR.1".
func (b Bill) ID() string {
	return strings.ToUpper(fmt.Sprintf("%s.%d", b.BillType, b.Number))
}

// Bills is the fixed catalog the controller dispatches tasks for.
var Bills = []Bill{
	{Congress: 119, BillType: "hr", Number: 1},
	{Congress: 119, BillType: "hr", Number: 5371},
	{Congress: 119, BillType: "hr", Number: 5401},
	{Congress: 119, BillType: "s", Number: 2296},
	{Congress: 119, BillType: "s", Number: 24},
	{Congress: 119, BillType: "s", Number: 2882},
	{Congress: 119, BillType: "s", Number: 499},
	{Congress: 119, BillType: "sres", Number: 412},
	{Congress: 119, BillType: "hres", Number: 353},
	{Congress: 119, BillType: "hr", Number: 1968},
}

// Questions maps each required question id to its question text.
var Questions = map[int]string{
	1: "What does this bill do? Where is it in the process?",
	2: "What committees is this bill in?",
	3: "Who is the sponsor?",
	4: "Who cosponsored this bill? Are any of the cosponsors on the committee that the bill is in?",
	5: "Have any hearings happened on the bill? If so, what were the findings?",
	6: "Have any amendments been proposed on the bill? If so, who proposed them and what do they do?",
	7: "Have any votes happened on the bill? If so, was it a party-line vote or a bipartisan one?",
}
