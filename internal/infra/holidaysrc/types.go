package holidaysrc

// timorResponse is the year-calendar payload of the timor.tech holiday API.
// The holiday map is keyed by "MM-DD"; each entry carries the full date and
// whether the day is an actual rest day (as opposed to a shifted workday).
type timorResponse struct {
	Code    int                   `json:"code"`
	Holiday map[string]timorEntry `json:"holiday"`
}

type timorEntry struct {
	Holiday bool   `json:"holiday"`
	Name    string `json:"name"`
	Date    string `json:"date"`
}

// nagerEntry is one public holiday in the Nager.Date API response array.
type nagerEntry struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}
