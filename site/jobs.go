// Package site holds the portfolio's content and its server-rendered HTML
// shell.
package site

// Job is one entry of the employment history timeline.
type Job struct {
	Title   string
	Company string
	// Start and End are display dates such as "May 23".
	Start string
	End   string
	// Description is optional prose shown under the heading.
	Description string
}

// ID returns the heading id of the entry. Titles repeat across the timeline,
// so the company is part of the id.
func (j Job) ID() string {
	return SafeID(j.Title + " " + j.Company)
}

// HasDates reports whether either date is set.
func (j Job) HasDates() bool {
	return j.Start != "" || j.End != ""
}

// EmploymentHistory is the timeline, newest first.
var EmploymentHistory = []Job{
	{Title: "Principal Engineer", Company: "Dare", Start: "May 23", End: "Apr 25"},
	{Title: "Principal Engineer", Company: "Trustpilot", Start: "Mar 21", End: "May 23"},
	{Title: "Senior Principal Engineer", Company: "Wood Mackenzie", Start: "Mar 18", End: "Mar 21"},
	{Title: "Engineer", Company: "Peoples Postcode Lottery", Start: "Mar 17", End: "Dec 17"},
	{Title: "Principal Engineer", Company: "Signal / Blonde Digital", Start: "Mar 12", End: "Mar 17"},
	{Title: "Engineer", Company: "Line Digital", Start: "Mar 10", End: "Mar 12"},
}

// Intro is the "what I do" copy of the middle section.
var Intro = []string{
	"I build software that works and lasts. I've led teams, shipped cloud platforms, and improved code, all with one goal: make things run well.",
	"No fluff, no endless meetings. Just focused effort. I care about results, clear process, and making sure the work stands up to real-world use.",
	"Every project needs honest feedback and strong execution. If you want straight answers, real progress, and a transparent approach, let's talk.",
}
